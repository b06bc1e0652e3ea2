package xfexpr

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Expr is a sequence of operations applied left to right.
type Expr struct {
	Pos lexer.Position

	Ops []*Op `parser:"( @@ ';'? )+"`
}

// Op is one call such as rotate(z, 90, about=(1, 0, 0)).
type Op struct {
	Pos lexer.Position

	Name string `parser:"@Ident '('"`
	Args []*Arg `parser:"( @@ ( ',' @@ )* )? ')'"`
}

// Arg is a positional or named argument.
type Arg struct {
	Pos lexer.Position

	Key   string `parser:"( @Ident '=' )?"`
	Value *Value `parser:"@@"`
}

// Value is a number, an axis name or a tuple of numbers.
type Value struct {
	Pos lexer.Position

	Number *float64  `parser:"  @Number"`
	Tuple  []float64 `parser:"| '(' @Number ( ',' @Number )* ')'"`
	Ident  *string   `parser:"| @Ident"`
}

func (e *Expr) String() string {
	parts := make([]string, len(e.Ops))
	for i, op := range e.Ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}

func (o *Op) String() string {
	args := make([]string, len(o.Args))
	for i, a := range o.Args {
		args[i] = a.String()
	}
	return o.Name + "(" + strings.Join(args, ", ") + ")"
}

func (a *Arg) String() string {
	if a.Key != "" {
		return a.Key + "=" + a.Value.String()
	}
	return a.Value.String()
}

func (v *Value) String() string {
	switch {
	case v.Number != nil:
		return num(*v.Number)
	case v.Ident != nil:
		return *v.Ident
	default:
		parts := make([]string, len(v.Tuple))
		for i, f := range v.Tuple {
			parts[i] = num(f)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
}

func num(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
