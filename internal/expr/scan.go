package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokLParen
	tokRParen
	tokComma
	tokOp // one of + - * /
)

type token struct {
	kind tokenKind
	text string
	pos  int // byte offset in the source
}

// scan tokenizes the whole expression up front. Any rune outside the grammar
// is an error; the lexer never skips what it does not understand.
func scan(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			i += size

		case r == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case r == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case r == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		case r == '+' || r == '-' || r == '*' || r == '/':
			toks = append(toks, token{tokOp, string(r), i})
			i++

		case r == '\'' || r == '"':
			text, next, err := scanString(src, i, byte(r))
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{tokString, text, i})
			i = next

		case r >= '0' && r <= '9':
			start := i
			for i < len(src) && src[i] >= '0' && src[i] <= '9' {
				i++
			}
			if i < len(src) && src[i] == '.' {
				i++
				for i < len(src) && src[i] >= '0' && src[i] <= '9' {
					i++
				}
			}
			toks = append(toks, token{tokNumber, src[start:i], start})

		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(src) {
				r, size := utf8.DecodeRuneInString(src[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += size
			}
			toks = append(toks, token{tokIdent, src[start:i], start})

		default:
			return nil, fmt.Errorf("offset %d: unexpected character %q", i, r)
		}
	}
	toks = append(toks, token{tokEOF, "", len(src)})
	return toks, nil
}

// scanString reads a quoted literal starting at the opening quote and returns
// the unescaped text plus the offset just past the closing quote. Backslash
// escapes the quote character and itself.
func scanString(src string, start int, quote byte) (string, int, error) {
	var b strings.Builder
	i := start + 1
	for i < len(src) {
		c := src[i]
		switch c {
		case quote:
			return b.String(), i + 1, nil
		case '\\':
			if i+1 >= len(src) {
				return "", 0, fmt.Errorf("offset %d: unterminated escape", i)
			}
			next := src[i+1]
			if next != quote && next != '\\' {
				return "", 0, fmt.Errorf("offset %d: unsupported escape %q", i, string(next))
			}
			b.WriteByte(next)
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, fmt.Errorf("offset %d: unterminated string literal", start)
}

func parseNumber(text string, pos int) (float64, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("offset %d: bad number %q", pos, text)
	}
	return f, nil
}
