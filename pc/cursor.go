package pc

import "fmt"

// EOS is returned by Peek at the end of the input. It is outside the byte range,
// so it never equals an input character.
const EOS = 0xFF000001

// Cursor is a read-only view over the input of a single parse.
type Cursor struct {
	input string
	diag  *Diagnostics
}

// NewCursor creates a cursor over the whole of input.
func NewCursor(input string) *Cursor {
	return &Cursor{input: input}
}

// Len returns the end position of the cursor.
func (c *Cursor) Len() int {
	return len(c.input)
}

func (c *Cursor) check(pos int) {
	if pos < 0 || pos > len(c.input) {
		panic(fmt.Sprintf("pc: position %d out of range [0, %d]", pos, len(c.input)))
	}
}

// Peek returns the byte at pos, or EOS when pos is the end of the input.
// It panics if pos is outside [0, Len()].
func (c *Cursor) Peek(pos int) int {
	c.check(pos)
	if pos == len(c.input) {
		return EOS
	}
	return int(c.input[pos])
}

// Remaining returns the number of bytes between pos and the end of the input.
func (c *Cursor) Remaining(pos int) int {
	c.check(pos)
	return len(c.input) - pos
}

// Scan returns the longest run starting at pos, at most atMost bytes long, whose
// bytes all satisfy fn. fn receives the offset within the run and the byte.
// Scan never fails; callers decide whether the run is long enough.
func (c *Cursor) Scan(pos, atMost int, fn func(i int, ch byte) bool) SubString {
	n := min(atMost, c.Remaining(pos))
	i := 0
	for i < n && fn(i, c.input[pos+i]) {
		i++
	}
	return SubString{input: c.input, Begin: pos, End: pos + i}
}

// Slice returns the span [begin, end) of the input.
func (c *Cursor) Slice(begin, end int) SubString {
	c.check(begin)
	c.check(end)
	if begin > end {
		panic(fmt.Sprintf("pc: invalid span [%d, %d)", begin, end))
	}
	return SubString{input: c.input, Begin: begin, End: end}
}

// Location converts an offset into a 1-based line and column.
func (c *Cursor) Location(offset int) (line, column int) {
	c.check(offset)
	line, column = 1, 1
	for i := 0; i < offset; i++ {
		if c.input[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

func (c *Cursor) expect(pos int, label string) {
	if c.diag != nil {
		c.diag.expect(pos, label)
	}
}

// SubString is a view of the input between Begin and End. It does not copy.
type SubString struct {
	input      string
	Begin, End int
}

// Len returns the number of bytes in the span.
func (s SubString) Len() int {
	return s.End - s.Begin
}

// String materializes the span.
func (s SubString) String() string {
	return s.input[s.Begin:s.End]
}
