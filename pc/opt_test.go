package pc

import "testing"

func testOpt[T comparable](t *testing.T, one T) {
	t.Helper()

	var empty Opt[T]
	if !empty.IsEmpty() {
		t.Error("zero Opt is not empty")
	}
	if !None[T]().IsEmpty() {
		t.Error("None() is not empty")
	}

	o := Some(one)
	if o.IsEmpty() || o.Get() != one {
		t.Errorf("Some(%v) = %v", one, o)
	}

	c := empty
	if !c.IsEmpty() || !OptEqual(c, empty) {
		t.Error("copy of empty Opt is not empty")
	}

	moved := empty.Take()
	if !moved.IsEmpty() || !empty.IsEmpty() || !OptEqual(moved, empty) {
		t.Error("moving an empty Opt produced a value")
	}

	c = o
	if c.Get() != one || o.Get() != one || !OptEqual(o, c) {
		t.Errorf("copy = %v, source = %v, want both Some %v", c, o, one)
	}

	moved = o.Take()
	if !o.IsEmpty() {
		t.Errorf("source after Take = %v, want None", o)
	}
	if moved.IsEmpty() || moved.Get() != one {
		t.Errorf("Take() = %v, want Some %v", moved, one)
	}
	if OptEqual(o, moved) {
		t.Error("moved-from Opt equals moved-to Opt")
	}
}

func TestOptString(t *testing.T) {
	testOpt(t, "1234")
}

func TestOptInt(t *testing.T) {
	testOpt(t, 1)
}

func TestOptEqual(t *testing.T) {
	tests := []struct {
		a, b Opt[int]
		want bool
	}{
		{None[int](), None[int](), true},
		{Some(1), Some(1), true},
		{Some(1), Some(3), false},
		{Some(0), None[int](), false},
	}
	for _, tt := range tests {
		if got := OptEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("OptEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestOptCoalesce(t *testing.T) {
	if got := None[byte]().Coalesce('+'); got != '+' {
		t.Errorf("Coalesce = %c, want +", got)
	}
	if got := Some[byte]('-').Coalesce('+'); got != '-' {
		t.Errorf("Coalesce = %c, want -", got)
	}
}

func TestOptGetPanicsWhenEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	None[int]().Get()
}

func TestResultHelpers(t *testing.T) {
	f := Failure[int](7)
	if got := f.RollbackTo(2).Position; got != 2 {
		t.Errorf("RollbackTo on failure = %d, want 2", got)
	}
	s := Success(7, 1)
	if got := s.RollbackTo(2).Position; got != 7 {
		t.Errorf("RollbackTo on success = %d, want 7", got)
	}
	if got := FailAs[string](f); got.Ok() || got.Position != 7 {
		t.Errorf("FailAs = %v, want failure at 7", got)
	}
	if got, want := s.String(), "{result: 7, Some 1}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
