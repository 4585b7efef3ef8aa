// Package pc is a parser-combinator engine for building recursive-descent parsers
// directly over raw input bytes.
//
// # Overview
//
// A Parser[T] is a plain function from a Cursor and a start position to a
// Result[T]. Parsers hold no state; larger parsers are built by wrapping smaller
// ones, and a built grammar can be shared freely between goroutines.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Cursor    │────▶│  Primitives │────▶│ Combinators │
//	│ (read-only) │     │  (leaves)   │     │ (composite) │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	                                        ┌─────────────┐
//	                                        │    Parse    │
//	                                        └─────────────┘
//
// # Results and positions
//
// A Result carries a position and an optional value. A present value means
// success and the position is where the parse ended. An absent value means
// failure and the position is where the failure is reported:
//
//   - leaves (SkipChar, SkipString, Satisfy, Int, ...) fail at the exact offset
//     where matching stopped;
//   - a sequence (Bind, Left, Right, TupleN) whose later step fails reports the
//     position at which that step started, never an offset inside it;
//   - Choice, Many below its floor and Sep report their own start.
//
// Because positions are passed explicitly, a failed alternative never leaves the
// input advanced and Choice retries every branch from the same start.
//
// # Recursion
//
// Grammar rules that refer to themselves go through a Trampoline:
//
//	expr := pc.NewTrampoline[int]()
//	atom := pc.Choice(pc.Int(), pc.Between(pc.SkipChar('('), expr.Parser(), pc.SkipChar(')')))
//	expr.Set(pc.Sep(atom, pc.SkipChar('+'), func(a int, _ pc.Unit, b int) int { return a + b }))
//
// # Diagnostics
//
// Parse reports only positions. Diagnose and Run additionally record the furthest
// offset any leaf failed at, together with what was expected there, and Run turns
// that into a *SyntaxError.
package pc
