package pc

import "fmt"

// Opt holds either a value or nothing.
//
// Assigning an Opt copies it and leaves the source untouched; Take moves the
// value out and leaves the source empty.
type Opt[T any] struct {
	value   T
	present bool
}

func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, present: true}
}

func None[T any]() Opt[T] {
	return Opt[T]{}
}

func (o Opt[T]) IsEmpty() bool {
	return !o.present
}

func (o Opt[T]) HasValue() bool {
	return o.present
}

// Get returns the value. It panics if o is empty.
func (o Opt[T]) Get() T {
	if !o.present {
		panic("pc: Get called on an empty Opt")
	}
	return o.value
}

// Coalesce returns the value, or def if o is empty.
func (o Opt[T]) Coalesce(def T) T {
	if !o.present {
		return def
	}
	return o.value
}

// Take returns the current contents and empties o.
func (o *Opt[T]) Take() Opt[T] {
	taken := *o
	*o = Opt[T]{}
	return taken
}

func (o Opt[T]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some %v", o.value)
}

// OptEqual compares presence first and, if both hold a value, the values.
func OptEqual[T comparable](a, b Opt[T]) bool {
	if a.present != b.present {
		return false
	}
	return !a.present || a.value == b.value
}
