package pc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Diagnostics records the furthest offset at which a leaf parser failed during
// one parse, and what was expected there.
type Diagnostics struct {
	Offset   int
	Expected []string
}

type diagState struct {
	offset   int
	expected []string
}

func (d *Diagnostics) expect(pos int, label string) {
	switch {
	case pos > d.Offset:
		d.Offset = pos
		d.Expected = append(d.Expected[:0], label)
	case pos == d.Offset && !slices.Contains(d.Expected, label):
		d.Expected = append(d.Expected, label)
	}
}

func (d *Diagnostics) save() diagState {
	return diagState{offset: d.Offset, expected: slices.Clone(d.Expected)}
}

func (d *Diagnostics) restore(s diagState) {
	d.Offset = s.offset
	d.Expected = s.expected
}

// Diagnose runs p like Parse and also returns the diagnostics of the run.
func Diagnose[T any](p Parser[T], input string) (Result[T], *Diagnostics) {
	d := &Diagnostics{Offset: -1}
	c := &Cursor{input: input, diag: d}
	return p(c, 0), d
}

// SyntaxError describes where and why input was rejected.
type SyntaxError struct {
	Offset   int
	Line     int
	Column   int
	Expected []string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message())
}

// Message describes the error without its location.
func (e *SyntaxError) Message() string {
	var b strings.Builder
	b.WriteString("syntax error")
	if len(e.Expected) > 0 {
		b.WriteString(": expected ")
		b.WriteString(joinAlternatives(e.Expected))
	}
	if e.Found != "" {
		b.WriteString(", found ")
		b.WriteString(e.Found)
	}
	return b.String()
}

func joinAlternatives(items []string) string {
	switch len(items) {
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
	}
}

// Run parses input with p and returns the value, or a *SyntaxError located at
// the furthest point the parse reached.
func Run[T any](p Parser[T], input string) (T, error) {
	r, d := Diagnose(p, input)
	if r.Ok() {
		return r.Value.Get(), nil
	}
	var zero T
	return zero, newSyntaxError(NewCursor(input), r.Position, d)
}

func newSyntaxError(c *Cursor, pos int, d *Diagnostics) *SyntaxError {
	e := &SyntaxError{Offset: pos}
	if d != nil && d.Offset >= pos {
		e.Offset = d.Offset
		e.Expected = slices.Clone(d.Expected)
	}
	e.Line, e.Column = c.Location(e.Offset)
	if ch := c.Peek(e.Offset); ch == EOS {
		e.Found = "end of input"
	} else {
		e.Found = strconv.QuoteRune(rune(ch))
	}
	return e
}
