package pc

import (
	"strconv"
	"strings"
)

// Digits is an unsigned decimal literal together with the number of digits it
// was written with, so that leading zeros of a fraction are not lost.
type Digits struct {
	Value uint64
	Count int
}

// IsDigit accepts '0' to '9'.
func IsDigit(_ int, ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// IsWhitespace accepts space, tab, newline, carriage return and form feed.
func IsWhitespace(_ int, ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	default:
		return false
	}
}

func quoteChar(ch byte) string {
	return strconv.QuoteRune(rune(ch))
}

// SkipChar matches the single byte ch.
func SkipChar(ch byte) Parser[Unit] {
	label := quoteChar(ch)
	return func(c *Cursor, pos int) Result[Unit] {
		if c.Peek(pos) == int(ch) {
			return Success(pos+1, Unit{})
		}
		c.expect(pos, label)
		return Failure[Unit](pos)
	}
}

// SkipString matches s. On a mismatch it fails at the first differing offset.
func SkipString(s string) Parser[Unit] {
	label := strconv.Quote(s)
	return func(c *Cursor, pos int) Result[Unit] {
		for i := 0; i < len(s); i++ {
			if c.Peek(pos+i) != int(s[i]) {
				c.expect(pos+i, label)
				return Failure[Unit](pos + i)
			}
		}
		return Success(pos+len(s), Unit{})
	}
}

// AnyOf matches one byte out of chars and returns it.
func AnyOf(chars string) Parser[byte] {
	return SatisfyChar("one of "+strconv.Quote(chars), func(ch byte) bool {
		return strings.IndexByte(chars, ch) >= 0
	})
}

// SatisfyChar matches one byte accepted by fn. name describes it in diagnostics.
func SatisfyChar(name string, fn func(ch byte) bool) Parser[byte] {
	return func(c *Cursor, pos int) Result[byte] {
		ch := c.Peek(pos)
		if ch != EOS && fn(byte(ch)) {
			return Success(pos+1, byte(ch))
		}
		c.expect(pos, name)
		return Failure[byte](pos)
	}
}

// Satisfy matches a run of at least atLeast and at most atMost bytes accepted by
// fn, which receives the offset within the run and the byte. A run shorter than
// atLeast fails where the run stopped.
func Satisfy(name string, atLeast, atMost int, fn func(i int, ch byte) bool) Parser[SubString] {
	return func(c *Cursor, pos int) Result[SubString] {
		ss := c.Scan(pos, atMost, fn)
		if ss.Len() < atLeast {
			c.expect(ss.End, name)
			return Failure[SubString](ss.End)
		}
		return Success(ss.End, ss)
	}
}

// SkipSatisfy is Satisfy without the matched text.
func SkipSatisfy(name string, atLeast, atMost int, fn func(i int, ch byte) bool) Parser[Unit] {
	return func(c *Cursor, pos int) Result[Unit] {
		ss := c.Scan(pos, atMost, fn)
		if ss.Len() < atLeast {
			c.expect(ss.End, name)
			return Failure[Unit](ss.End)
		}
		return Success(ss.End, Unit{})
	}
}

// SkipWS skips any amount of whitespace, including none.
func SkipWS() Parser[Unit] {
	return SkipSatisfy("whitespace", 0, Unbounded, IsWhitespace)
}

// End succeeds only at the end of the input, where Peek returns EOS.
func End() Parser[Unit] {
	return func(c *Cursor, pos int) Result[Unit] {
		if c.Peek(pos) == EOS {
			return Success(pos, Unit{})
		}
		c.expect(pos, "end of input")
		return Failure[Unit](pos)
	}
}

func scanDigits(c *Cursor, pos, atMost int) (uint64, SubString) {
	ss := c.Scan(pos, atMost, IsDigit)
	var v uint64
	for i := ss.Begin; i < ss.End; i++ {
		v = 10*v + uint64(c.input[i]-'0')
	}
	return v, ss
}

// Fail always fails at pos and reports label as what was expected there.
func Fail[T any](label string) Parser[T] {
	return func(c *Cursor, pos int) Result[T] {
		c.expect(pos, label)
		return Failure[T](pos)
	}
}

// intDigits is the longest literal Int reads: ten digits where int has 64
// bits, nine where it has 32, so the value never overflows.
const intDigits = 9 + strconv.IntSize/64

// Int matches an unsigned decimal literal of up to intDigits digits.
func Int() Parser[int] {
	return func(c *Cursor, pos int) Result[int] {
		v, ss := scanDigits(c, pos, intDigits)
		if ss.Len() == 0 {
			c.expect(pos, "integer")
			return Failure[int](pos)
		}
		return Success(ss.End, int(v))
	}
}

// Uint64 matches an unsigned decimal literal of up to 19 digits.
func Uint64() Parser[uint64] {
	return func(c *Cursor, pos int) Result[uint64] {
		v, ss := scanDigits(c, pos, 19)
		if ss.Len() == 0 {
			c.expect(pos, "integer")
			return Failure[uint64](pos)
		}
		return Success(ss.End, v)
	}
}

// RawUint64 is Uint64 that also reports how many digits were written.
func RawUint64() Parser[Digits] {
	return func(c *Cursor, pos int) Result[Digits] {
		v, ss := scanDigits(c, pos, 19)
		if ss.Len() == 0 {
			c.expect(pos, "digits")
			return Failure[Digits](pos)
		}
		return Success(ss.End, Digits{Value: v, Count: ss.Len()})
	}
}

// Int64 matches an optionally signed decimal literal of up to 18 digits.
func Int64() Parser[int64] {
	return func(c *Cursor, pos int) Result[int64] {
		start := pos
		negative := false
		switch c.Peek(pos) {
		case '-':
			negative = true
			start++
		case '+':
			start++
		}
		v, ss := scanDigits(c, start, 18)
		if ss.Len() == 0 {
			c.expect(start, "integer")
			return Failure[int64](start)
		}
		n := int64(v)
		if negative {
			n = -n
		}
		return Success(ss.End, n)
	}
}
