package pc

import (
	"fmt"
	"math"
)

// Unbounded is the atMost of repetitions without a ceiling.
const Unbounded = math.MaxInt

type Pair[A, B any] struct {
	First  A
	Second B
}

type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

type Quad[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}

func (t Triple[A, B, C]) String() string {
	return fmt.Sprintf("(%v, %v, %v)", t.First, t.Second, t.Third)
}

func (q Quad[A, B, C, D]) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", q.First, q.Second, q.Third, q.Fourth)
}

// Tuple2 runs pa then pb and collects both values.
func Tuple2[A, B any](pa Parser[A], pb Parser[B]) Parser[Pair[A, B]] {
	return func(c *Cursor, pos int) Result[Pair[A, B]] {
		ra := pa(c, pos)
		if !ra.Ok() {
			return FailAs[Pair[A, B]](ra)
		}
		rb := pb(c, ra.Position)
		if !rb.Ok() {
			return FailAs[Pair[A, B]](rb).RollbackTo(ra.Position)
		}
		return Success(rb.Position, Pair[A, B]{First: ra.Value.Get(), Second: rb.Value.Get()})
	}
}

func Tuple3[A, B, C any](pa Parser[A], pb Parser[B], pc Parser[C]) Parser[Triple[A, B, C]] {
	return Map(Tuple2(Tuple2(pa, pb), pc), func(v Pair[Pair[A, B], C]) Triple[A, B, C] {
		return Triple[A, B, C]{First: v.First.First, Second: v.First.Second, Third: v.Second}
	})
}

func Tuple4[A, B, C, D any](pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D]) Parser[Quad[A, B, C, D]] {
	return Map(Tuple2(Tuple3(pa, pb, pc), pd), func(v Pair[Triple[A, B, C], D]) Quad[A, B, C, D] {
		return Quad[A, B, C, D]{First: v.First.First, Second: v.First.Second, Third: v.First.Third, Fourth: v.Second}
	})
}

// Choice tries each parser from the same position and returns the first success.
func Choice[T any](first, second Parser[T], rest ...Parser[T]) Parser[T] {
	ps := append([]Parser[T]{first, second}, rest...)
	return func(c *Cursor, pos int) Result[T] {
		for _, p := range ps {
			if r := p(c, pos); r.Ok() {
				return r
			}
		}
		return Failure[T](pos)
	}
}

// Many applies p until it fails or atMost values were collected. Fewer than
// atLeast values fail the whole repetition at its start.
//
// p must consume input on success when atMost is Unbounded, otherwise Many
// does not terminate.
func Many[T any](atLeast, atMost int, p Parser[T]) Parser[[]T] {
	if atLeast < 0 || atLeast > atMost {
		panic(fmt.Sprintf("pc: invalid repetition bounds [%d, %d]", atLeast, atMost))
	}
	return func(c *Cursor, pos int) Result[[]T] {
		values := []T{}
		cur := pos
		for len(values) < atMost {
			r := p(c, cur)
			if !r.Ok() {
				break
			}
			values = append(values, r.Value.Get())
			cur = r.Position
		}
		if len(values) < atLeast {
			return Failure[[]T](pos)
		}
		return Success(cur, values)
	}
}

// Optional never fails: it yields Some value when p succeeds and None, without
// consuming input, when p fails.
func Optional[T any](p Parser[T]) Parser[Opt[T]] {
	return func(c *Cursor, pos int) Result[Opt[T]] {
		r := p(c, pos)
		if r.Ok() {
			return Success(r.Position, r.Value)
		}
		return Success(pos, None[T]())
	}
}

// Sep parses p followed by any number of sep p pairs and folds them from the
// left with combine. Build one Sep per precedence level, each layered over the
// tighter-binding one.
func Sep[T, S any](p Parser[T], sep Parser[S], combine func(acc T, s S, next T) T) Parser[T] {
	tail := Tuple2(sep, p)
	return func(c *Cursor, pos int) Result[T] {
		r := p(c, pos)
		if !r.Ok() {
			return Failure[T](pos)
		}
		acc, cur := r.Value.Get(), r.Position
		for {
			n := tail(c, cur)
			if !n.Ok() {
				break
			}
			v := n.Value.Get()
			acc = combine(acc, v.First, v.Second)
			cur = n.Position
		}
		return Success(cur, acc)
	}
}

// Recognize yields the span of input p consumed instead of its value.
func Recognize[T any](p Parser[T]) Parser[SubString] {
	return func(c *Cursor, pos int) Result[SubString] {
		r := p(c, pos)
		if !r.Ok() {
			return FailAs[SubString](r)
		}
		return Success(r.Position, c.Slice(pos, r.Position))
	}
}

// Label replaces what p reports as expected with name when p fails without
// getting past pos.
func Label[T any](name string, p Parser[T]) Parser[T] {
	return func(c *Cursor, pos int) Result[T] {
		if c.diag == nil {
			return p(c, pos)
		}
		saved := c.diag.save()
		r := p(c, pos)
		if !r.Ok() && c.diag.Offset <= pos {
			c.diag.restore(saved)
			c.diag.expect(pos, name)
		}
		return r
	}
}
