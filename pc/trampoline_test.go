package pc

import (
	"sync"
	"testing"
)

func nestedDepth() Parser[int] {
	expr := NewTrampoline[int]()
	nested := Map(Between(SkipChar('('), expr.Parser(), SkipChar(')')), func(d int) int { return d + 1 })
	expr.Set(Choice(nested, Return(0)))
	return Left(expr.Parser(), End())
}

func TestTrampolineRecursion(t *testing.T) {
	p := nestedDepth()
	tests := []struct {
		input string
		ok    bool
		depth int
	}{
		{"", true, 0},
		{"()", true, 1},
		{"((()))", true, 3},
		{"(()", false, 0},
	}
	for _, tt := range tests {
		r := Parse(p, tt.input)
		if r.Ok() != tt.ok {
			t.Errorf("Parse(%q) ok = %v, want %v", tt.input, r.Ok(), tt.ok)
			continue
		}
		if tt.ok && r.Value.Get() != tt.depth {
			t.Errorf("Parse(%q) = %d, want %d", tt.input, r.Value.Get(), tt.depth)
		}
	}
}

func TestTrampolineResolvesAtCallTime(t *testing.T) {
	tr := NewTrampoline[string]()
	p := tr.Parser()
	if tr.IsSet() {
		t.Fatal("IsSet() = true before Set")
	}
	tr.Set(Right(SkipChar('a'), Return("late")))

	r := Parse(p, "a")
	if !r.Ok() || r.Value.Get() != "late" {
		t.Errorf("Parse = %v, want Some late", r)
	}

	direct := Parse(Right(SkipChar('a'), Return("late")), "b")
	viaTrampoline := Parse(p, "b")
	if direct != viaTrampoline {
		t.Errorf("trampoline = %v, direct = %v", viaTrampoline, direct)
	}
}

func TestTrampolineUnsetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Parse(NewTrampoline[int]().Parser(), "")
}

func TestTrampolineSetTwicePanics(t *testing.T) {
	tr := NewTrampoline[int]()
	tr.Set(Return(1))
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	tr.Set(Return(2))
}

func TestConcurrentParses(t *testing.T) {
	p := nestedDepth()
	inputs := []string{"", "()", "(())", "((()))", "(((())))"}

	var wg sync.WaitGroup
	errs := make(chan string, 100)
	for i := 0; i < 20; i++ {
		for depth, input := range inputs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				r := Parse(p, input)
				if !r.Ok() || r.Value.Get() != depth {
					errs <- input
				}
			}()
		}
	}
	wg.Wait()
	close(errs)
	for input := range errs {
		t.Errorf("concurrent Parse(%q) returned a wrong result", input)
	}
}
