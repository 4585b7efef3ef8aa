package pc

import "fmt"

// Result is the outcome of running a parser. A present Value means success and
// Position is where the parse ended; an absent Value means failure and Position
// is where the failure is reported.
type Result[T any] struct {
	Position int
	Value    Opt[T]
}

func Success[T any](pos int, v T) Result[T] {
	return Result[T]{Position: pos, Value: Some(v)}
}

func Failure[T any](pos int) Result[T] {
	return Result[T]{Position: pos}
}

// Ok reports whether the parse succeeded.
func (r Result[T]) Ok() bool {
	return r.Value.HasValue()
}

// Reposition returns r with its position replaced.
func (r Result[T]) Reposition(pos int) Result[T] {
	r.Position = pos
	return r
}

// RollbackTo moves a failed result to pos. Successful results are returned as is.
func (r Result[T]) RollbackTo(pos int) Result[T] {
	if !r.Ok() {
		r.Position = pos
	}
	return r
}

// FailAs turns a failure of one value type into a failure of another at the same
// position. It must not be called on a successful result.
func FailAs[U, T any](r Result[T]) Result[U] {
	if r.Ok() {
		panic("pc: FailAs called on a successful result")
	}
	return Failure[U](r.Position)
}

func (r Result[T]) String() string {
	return fmt.Sprintf("{result: %d, %v}", r.Position, r.Value)
}
