package pc

import "sync/atomic"

// Trampoline is a forward reference to a parser that is assigned later, which
// lets a rule refer to itself or to rules defined after it.
//
// Create the trampoline, build the grammar using Parser() wherever the rule is
// needed, then Set the finished rule once before parsing.
type Trampoline[T any] struct {
	target atomic.Pointer[Parser[T]]
}

func NewTrampoline[T any]() *Trampoline[T] {
	return &Trampoline[T]{}
}

// Set assigns the rule. It panics if called twice or with a nil parser.
func (t *Trampoline[T]) Set(p Parser[T]) {
	if p == nil {
		panic("pc: trampoline set to a nil parser")
	}
	if !t.target.CompareAndSwap(nil, &p) {
		panic("pc: trampoline already set")
	}
}

func (t *Trampoline[T]) IsSet() bool {
	return t.target.Load() != nil
}

// Parser returns a parser that delegates to whatever rule the trampoline holds
// when it runs. Running it before Set panics.
func (t *Trampoline[T]) Parser() Parser[T] {
	return func(c *Cursor, pos int) Result[T] {
		p := t.target.Load()
		if p == nil {
			panic("pc: trampoline invoked before Set")
		}
		return (*p)(c, pos)
	}
}
