package jsonvalue

import (
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf16"

	"github.com/dhamidi/combinator/pc"
)

func isPlain(_ int, ch byte) bool {
	return ch != '"' && ch != '\\' && ch >= 0x20
}

func isHex(_ int, ch byte) bool {
	return ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}

func unescape(ch byte) string {
	switch ch {
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'n':
		return "\n"
	case 'r':
		return "\r"
	case 't':
		return "\t"
	default:
		return string(ch)
	}
}

func digits(name string) pc.Parser[pc.SubString] {
	return pc.Satisfy(name, 1, pc.Unbounded, pc.IsDigit)
}

func isNonZero(ch byte) bool {
	return ch >= '1' && ch <= '9'
}

// number recognizes an optional minus, an integer part without leading zeros,
// an optional fraction and an optional exponent. Literals too large for a
// float64 are rejected.
func number() pc.Parser[float64] {
	integer := pc.Choice(
		pc.SkipChar('0'),
		pc.Right(pc.SatisfyChar("digit", isNonZero), pc.SkipSatisfy("digits", 0, pc.Unbounded, pc.IsDigit)),
	)
	frac := pc.Optional(pc.Right(pc.SkipChar('.'), digits("fraction digits")))
	sign := pc.Optional(pc.AnyOf("+-"))
	exp := pc.Optional(pc.Right(pc.AnyOf("eE"), pc.Right(sign, digits("exponent digits"))))
	shape := pc.Tuple4(pc.Optional(pc.SkipChar('-')), integer, frac, exp)

	return pc.Bind(pc.Recognize(pc.Label("number", shape)), func(s pc.SubString) pc.Parser[float64] {
		f, err := strconv.ParseFloat(s.String(), 64)
		if err != nil {
			// Well-formed literals only fail with ErrRange, when f is ±Inf.
			return pc.Fail[float64]("number within float64 range")
		}
		return pc.Return(f)
	})
}

func hex4() pc.Parser[rune] {
	return pc.Map(pc.Satisfy("hex digit", 4, 4, isHex), func(s pc.SubString) rune {
		v, _ := strconv.ParseUint(s.String(), 16, 32)
		return rune(v)
	})
}

func str() pc.Parser[string] {
	plain := pc.Map(pc.Satisfy("character", 1, pc.Unbounded, isPlain), pc.SubString.String)

	simple := pc.Map(pc.AnyOf(`"\/bfnrt`), unescape)
	unicodeEscape := pc.Bind(pc.Right(pc.SkipChar('u'), hex4()), func(r1 rune) pc.Parser[string] {
		switch {
		case !utf16.IsSurrogate(r1):
			return pc.Return(string(r1))
		case r1 >= 0xdc00:
			return pc.Return(string(unicode.ReplacementChar))
		}
		pair := pc.Bind(pc.Right(pc.SkipString(`\u`), hex4()), func(r2 rune) pc.Parser[string] {
			if r2 < 0xdc00 || r2 > 0xdfff {
				return pc.Fail[string]("low surrogate")
			}
			return pc.Return(string(utf16.DecodeRune(r1, r2)))
		})
		// An unpaired high surrogate leaves the escape after it alone.
		return pc.Choice(pair, pc.Return(string(unicode.ReplacementChar)))
	})
	escaped := pc.Right(pc.SkipChar('\\'), pc.Choice(simple, unicodeEscape))

	chars := pc.Many(0, pc.Unbounded, pc.Choice(plain, escaped))
	return pc.Map(pc.Between(pc.SkipChar('"'), chars, pc.SkipChar('"')), func(parts []string) string {
		return strings.Join(parts, "")
	})
}

func list[T any](item pc.Parser[T]) pc.Parser[[]T] {
	one := pc.Map(item, func(v T) []T { return []T{v} })
	sep := pc.Left(pc.SkipChar(','), pc.SkipWS())
	items := pc.Sep(one, sep, func(acc []T, _ pc.Unit, next []T) []T {
		return append(acc, next...)
	})
	return pc.Map(pc.Optional(items), func(o pc.Opt[[]T]) []T {
		return o.Coalesce(nil)
	})
}

func token(ch byte) pc.Parser[pc.Unit] {
	return pc.Left(pc.SkipChar(ch), pc.SkipWS())
}

func keyword[T any](word string, v T) pc.Parser[T] {
	return pc.Right(pc.SkipString(word), pc.Return(v))
}

type grammar struct {
	number pc.Parser[float64]
	value  pc.Parser[Value]
}

var grammars = sync.OnceValue(func() grammar {
	ws := pc.SkipWS()
	num := number()
	s := str()

	value := pc.NewTrampoline[Value]()

	array := pc.Map(pc.Between(token('['), list(value.Parser()), pc.SkipChar(']')), func(vs []Value) Value {
		return Array(vs...)
	})

	member := pc.Map(pc.Tuple2(pc.Left(pc.Left(s, ws), token(':')), value.Parser()), func(p pc.Pair[string, Value]) Member {
		return Member{Key: p.First, Value: p.Second}
	})
	object := pc.Map(pc.Between(token('{'), list(member), pc.SkipChar('}')), func(ms []Member) Value {
		return Object(ms...)
	})

	scalar := pc.Choice(
		keyword("null", Null()),
		keyword("true", Bool(true)),
		keyword("false", Bool(false)),
		pc.Map(num, Number),
		pc.Map(s, String),
	)
	value.Set(pc.Left(pc.Label("value", pc.Choice(scalar, array, object)), ws))

	return grammar{
		number: pc.Left(num, pc.End()),
		value:  pc.Left(pc.Right(ws, value.Parser()), pc.End()),
	}
})

// ParseNumber parses input as a single JSON number with nothing around it.
func ParseNumber(input string) (float64, error) {
	return pc.Run(grammars().number, input)
}

// Parse parses input as one JSON value, optionally surrounded by whitespace.
func Parse(input string) (Value, error) {
	return pc.Run(grammars().value, input)
}
