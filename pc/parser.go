package pc

// Parser parses the input visible through c, starting at pos.
type Parser[T any] func(c *Cursor, pos int) Result[T]

// Unit is the value of parsers that only recognize input.
type Unit struct{}

func (Unit) String() string {
	return "unit"
}

// Parse runs p over the whole of input, starting at position 0.
func Parse[T any](p Parser[T], input string) Result[T] {
	return p(NewCursor(input), 0)
}

// Return succeeds with v without consuming input.
func Return[T any](v T) Parser[T] {
	return func(c *Cursor, pos int) Result[T] {
		return Success(pos, v)
	}
}

// Bind runs p and passes its value to f, then runs the parser f returns from
// where p ended.
func Bind[T, U any](p Parser[T], f func(T) Parser[U]) Parser[U] {
	return func(c *Cursor, pos int) Result[U] {
		tv := p(c, pos)
		if !tv.Ok() {
			return FailAs[U](tv)
		}
		return f(tv.Value.Get())(c, tv.Position).RollbackTo(tv.Position)
	}
}

// Left runs p then q and keeps the value of p.
func Left[T, U any](p Parser[T], q Parser[U]) Parser[T] {
	return func(c *Cursor, pos int) Result[T] {
		tv := p(c, pos)
		if !tv.Ok() {
			return tv
		}
		tu := q(c, tv.Position)
		if !tu.Ok() {
			return FailAs[T](tu).RollbackTo(tv.Position)
		}
		return tv.Reposition(tu.Position)
	}
}

// Right runs p then q and keeps the value of q.
func Right[T, U any](p Parser[T], q Parser[U]) Parser[U] {
	return func(c *Cursor, pos int) Result[U] {
		tv := p(c, pos)
		if !tv.Ok() {
			return FailAs[U](tv)
		}
		return q(c, tv.Position).RollbackTo(tv.Position)
	}
}

// Map transforms the value of p.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(c *Cursor, pos int) Result[U] {
		tv := p(c, pos)
		if !tv.Ok() {
			return FailAs[U](tv)
		}
		return Success(tv.Position, f(tv.Value.Get()))
	}
}

// Between parses open, p and close in order and keeps the value of p.
func Between[O, T, C any](open Parser[O], p Parser[T], close Parser[C]) Parser[T] {
	return Right(open, Left(p, close))
}
