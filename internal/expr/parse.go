package expr

import "fmt"

// Expression tree. Nodes are interpreted by eval in expr.go; there is no
// compilation beyond this tree, and nothing outside it is reachable.
type node interface{ isNode() }

type literal struct {
	val Value // string or float64
}

type ident struct {
	name string
	pos  int
}

type call struct {
	name string
	pos  int
	args []node
}

type unary struct {
	op byte // '-'
	x  node
}

type binary struct {
	op   byte // one of + - * /
	x, y node
}

func (*literal) isNode() {}
func (*ident) isNode()   {}
func (*call) isNode()    {}
func (*unary) isNode()   {}
func (*binary) isNode()  {}

// parser is a tiny recursive-descent parser with the usual two precedence
// levels: additive over multiplicative.
type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) parseExpr() (node, error) {
	x, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return x, nil
		}
		p.next()
		y, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		x = &binary{op: t.text[0], x: x, y: y}
	}
}

func (p *parser) parseTerm() (node, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "*" && t.text != "/") {
			return x, nil
		}
		p.next()
		y, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		x = &binary{op: t.text[0], x: x, y: y}
	}
}

func (p *parser) parseUnary() (node, error) {
	if t := p.peek(); t.kind == tokOp && t.text == "-" {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unary{op: '-', x: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		f, err := parseNumber(t.text, t.pos)
		if err != nil {
			return nil, err
		}
		return &literal{val: f}, nil

	case tokString:
		return &literal{val: t.text}, nil

	case tokIdent:
		if p.peek().kind != tokLParen {
			return &ident{name: t.text, pos: t.pos}, nil
		}
		p.next() // consume '('
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &call{name: t.text, pos: t.pos, args: args}, nil

	case tokLParen:
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, fmt.Errorf("offset %d: expected ')', got %q", c.pos, c.text)
		}
		return x, nil

	case tokEOF:
		return nil, fmt.Errorf("offset %d: unexpected end of expression", t.pos)
	}
	return nil, fmt.Errorf("offset %d: unexpected %q", t.pos, t.text)
}

// parseArgs parses a possibly empty, comma-separated argument list and
// consumes the closing parenthesis.
func (p *parser) parseArgs() ([]node, error) {
	var args []node
	if p.peek().kind == tokRParen {
		p.next()
		return args, nil
	}
	for {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		t := p.next()
		switch t.kind {
		case tokComma:
			continue
		case tokRParen:
			return args, nil
		default:
			return nil, fmt.Errorf("offset %d: expected ',' or ')', got %q", t.pos, t.text)
		}
	}
}
