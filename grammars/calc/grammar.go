package calc

import (
	"sync"

	"github.com/dhamidi/combinator/pc"
)

func isIdentifier(i int, ch byte) bool {
	return ch >= 'A' && ch <= 'Z' ||
		ch >= 'a' && ch <= 'z' ||
		i > 0 && ch >= '0' && ch <= '9'
}

// Grammar returns the parser for a complete expression, surrounding whitespace
// included. The parser is built once and shared.
var Grammar = sync.OnceValue(func() pc.Parser[*Expr] {
	ws := pc.SkipWS()

	ident := pc.Map(pc.Satisfy("identifier", 1, pc.Unbounded, isIdentifier), func(s pc.SubString) *Expr {
		return Ident(s.String())
	})
	integer := pc.Map(pc.Int(), Int)

	expr := pc.NewTrampoline[*Expr]()
	sub := pc.Between(pc.Left(pc.SkipChar('('), ws), expr.Parser(), pc.SkipChar(')'))

	value := pc.Left(pc.Label("operand", pc.Choice(integer, ident, sub)), ws)

	mulOp := pc.Left(pc.AnyOf("*/%"), ws)
	mul := pc.Sep(value, mulOp, Binary)

	addOp := pc.Left(pc.AnyOf("+-"), ws)
	add := pc.Sep(mul, addOp, Binary)

	expr.Set(add)

	return pc.Left(pc.Right(ws, expr.Parser()), pc.End())
})

// Parse parses input as a single expression.
func Parse(input string) (*Expr, error) {
	return pc.Run(Grammar(), input)
}
