// Package expr implements the restricted expression language used for
// computed columns. Supplier configurations are a trust boundary, so this is
// deliberately not a general-purpose evaluator: a small hand-written lexer and
// recursive-descent parser produce an expression tree over a fixed grammar
// (string/number literals, identifiers, calls, unary minus, + - * /,
// parentheses) which is interpreted directly. The only names an expression can
// resolve are the row's current columns and the helper functions registered in
// its Env. There is no attribute access, no indexing, and no way to reach the
// host process.
//
// Programs are compiled once per configured column and evaluated once per row.
package expr

import (
	"fmt"
	"strconv"
)

// Value is an expression value: either a string or a float64. Row columns
// always bind as strings; numbers only arise from numeric literals and
// arithmetic.
type Value any

// Env supplies the names an expression may resolve: Lookup for row columns
// and Funcs for the helper allow-list. Anything else is an evaluation error.
type Env struct {
	Funcs  map[string]Func
	Lookup func(name string) (string, bool)
}

// Func is a pure helper callable from expressions.
type Func func(args []Value) (Value, error)

// Program is a compiled expression, reusable across rows.
type Program struct {
	src  string
	root node
}

// Source returns the original expression text.
func (p *Program) Source() string { return p.src }

// Parse compiles src into a Program. The returned error describes the first
// syntax problem with its byte offset.
func Parse(src string) (*Program, error) {
	toks, err := scan(src)
	if err != nil {
		return nil, err
	}
	ps := &parser{toks: toks}
	root, err := ps.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := ps.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("offset %d: unexpected %q after expression", t.pos, t.text)
	}
	return &Program{src: src, root: root}, nil
}

// Eval interprets the program against env.
func (p *Program) Eval(env Env) (Value, error) {
	return eval(p.root, env)
}

func eval(n node, env Env) (Value, error) {
	switch n := n.(type) {
	case *literal:
		return n.val, nil

	case *ident:
		v, ok := env.Lookup(n.name)
		if !ok {
			return nil, fmt.Errorf("unknown identifier %q (not a column of this table)", n.name)
		}
		return v, nil

	case *call:
		fn, ok := env.Funcs[n.name]
		if !ok {
			return nil, fmt.Errorf("unknown function %q", n.name)
		}
		args := make([]Value, len(n.args))
		for i, a := range n.args {
			v, err := eval(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		out, err := fn(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.name, err)
		}
		return out, nil

	case *unary:
		v, err := eval(n.x, env)
		if err != nil {
			return nil, err
		}
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("cannot negate %s", typeName(v))
		}
		return -f, nil

	case *binary:
		x, err := eval(n.x, env)
		if err != nil {
			return nil, err
		}
		y, err := eval(n.y, env)
		if err != nil {
			return nil, err
		}
		return applyBinary(n.op, x, y)
	}
	return nil, fmt.Errorf("internal: unknown node %T", n)
}

func applyBinary(op byte, x, y Value) (Value, error) {
	if xs, ok := x.(string); ok {
		if ys, ok := y.(string); ok {
			if op == '+' {
				return xs + ys, nil
			}
			return nil, fmt.Errorf("cannot apply %q to strings", string(op))
		}
	}
	xf, xok := x.(float64)
	yf, yok := y.(float64)
	if !xok || !yok {
		return nil, fmt.Errorf("cannot apply %q to %s and %s", string(op), typeName(x), typeName(y))
	}
	switch op {
	case '+':
		return xf + yf, nil
	case '-':
		return xf - yf, nil
	case '*':
		return xf * yf, nil
	case '/':
		if yf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return xf / yf, nil
	}
	return nil, fmt.Errorf("internal: unknown operator %q", string(op))
}

func typeName(v Value) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

// Text renders a value as cell text: strings pass through, numbers drop any
// redundant fractional part (5.0 -> "5").
func Text(v Value) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
