// Package xfexpr parses and compiles transform expressions, a compact
// notation for chains of rigid motions and scales:
//
//	translate((1, 0, 0)) rotate(z, 90, about=(1, 1, 0)) scale(2)
//
// Operations run left to right. Angles are in degrees.
package xfexpr

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var parser = participle.MustBuild[Expr](
	participle.Lexer(Lexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses src into an expression tree.
func Parse(src string) (*Expr, error) {
	e, err := parser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("xfexpr: %w", err)
	}
	return e, nil
}

// Error is a semantic failure at a position in the source.
type Error struct {
	Pos lexer.Position
	Op  string
	Msg string
	Err error // underlying geometry failure, if any
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}
	return fmt.Sprintf("xfexpr:%d:%d: %s: %s", e.Pos.Line, e.Pos.Column, e.Op, msg)
}

func (e *Error) Unwrap() error { return e.Err }
