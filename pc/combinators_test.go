package pc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMany(t *testing.T) {
	tests := []struct {
		name            string
		atLeast, atMost int
		chars           string
		ok              bool
		pos             int
		want            []byte
	}{
		{"one to five", 1, 5, "123", true, 3, []byte("123")},
		{"no match", 1, 5, "456", false, 0, nil},
		{"capped", 1, 2, "123", true, 2, []byte("12")},
		{"below floor", 5, 5, "123", false, 0, nil},
		{"zero allowed", 0, Unbounded, "9", true, 0, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Parse(Many(tt.atLeast, tt.atMost, AnyOf(tt.chars)), calcInput)
			if r.Ok() != tt.ok || r.Position != tt.pos {
				t.Fatalf("Parse = %v, want ok=%v at %d", r, tt.ok, tt.pos)
			}
			if !tt.ok {
				return
			}
			if diff := cmp.Diff(tt.want, r.Value.Get()); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestManyLengthWithinBounds(t *testing.T) {
	inputs := []string{"", "a", "aaa", "aaaaaaa", "ab"}
	bounds := [][2]int{{0, 0}, {0, 2}, {1, 3}, {2, 2}, {3, Unbounded}}
	for _, input := range inputs {
		for _, b := range bounds {
			r := Parse(Many(b[0], b[1], SkipChar('a')), input)
			if !r.Ok() {
				if r.Position != 0 {
					t.Errorf("Many(%d, %d) on %q failed at %d, want 0", b[0], b[1], input, r.Position)
				}
				continue
			}
			if n := len(r.Value.Get()); n < b[0] || n > b[1] {
				t.Errorf("Many(%d, %d) on %q returned %d values", b[0], b[1], input, n)
			}
			if r.Position != len(r.Value.Get()) {
				t.Errorf("Many(%d, %d) on %q ended at %d", b[0], b[1], input, r.Position)
			}
		}
	}
}

func TestManyInvalidBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Many(3, 2, SkipChar('a'))
}

func TestTuple(t *testing.T) {
	r := Parse(Tuple2(SkipChar('1'), Right(SkipChar('2'), Return(1))), calcInput)
	if !r.Ok() || r.Position != 2 {
		t.Fatalf("Parse = %v, want success at 2", r)
	}
	if got, want := r.Value.Get(), (Pair[Unit, int]{Unit{}, 1}); got != want {
		t.Errorf("value = %v, want %v", got, want)
	}

	r = Parse(Tuple2(SkipChar('2'), Right(SkipChar('1'), Return(1))), calcInput)
	if r.Ok() || r.Position != 0 {
		t.Errorf("Parse = %v, want failure at 0", r)
	}

	r = Parse(Tuple2(SkipChar('1'), Right(SkipChar('1'), Return(1))), calcInput)
	if r.Ok() || r.Position != 1 {
		t.Errorf("Parse = %v, want failure at 1", r)
	}
}

func TestTupleOrder(t *testing.T) {
	digit := AnyOf("0123456789")
	r := Parse(Tuple4(digit, digit, digit, digit), calcInput)
	if !r.Ok() || r.Position != 4 {
		t.Fatalf("Parse = %v, want success at 4", r)
	}
	want := Quad[byte, byte, byte, byte]{'1', '2', '3', '4'}
	if got := r.Value.Get(); got != want {
		t.Errorf("value = %v, want %v", got, want)
	}

	r3 := Parse(Tuple3(digit, digit, SkipChar('x')), calcInput)
	if r3.Ok() || r3.Position != 2 {
		t.Errorf("Parse = %v, want failure at 2", r3)
	}
}

func TestChoice(t *testing.T) {
	p := Choice(
		Right(SkipString("12"), Return("twelve")),
		Right(SkipString("1234"), Return("longer")),
		Return("fallback"),
	)
	r := Parse(p, calcInput)
	if !r.Ok() || r.Value.Get() != "twelve" || r.Position != 2 {
		t.Errorf("Parse = %v, want first branch at 2", r)
	}

	r = Parse(p, "x")
	if !r.Ok() || r.Value.Get() != "fallback" || r.Position != 0 {
		t.Errorf("Parse = %v, want fallback at 0", r)
	}

	q := Choice(SkipString("125"), SkipString("13"))
	rq := Parse(q, calcInput)
	if rq.Ok() || rq.Position != 0 {
		t.Errorf("Parse = %v, want failure at 0", rq)
	}
}

func TestOptional(t *testing.T) {
	r := Parse(Optional(SkipChar('1')), calcInput)
	if !r.Ok() || r.Position != 1 || !OptEqual(r.Value.Get(), Some(Unit{})) {
		t.Errorf("Parse = %v, want {result: 1, Some Some unit}", r)
	}

	r = Parse(Optional(SkipChar('2')), calcInput)
	if !r.Ok() || r.Position != 0 || !r.Value.Get().IsEmpty() {
		t.Errorf("Parse = %v, want {result: 0, Some None}", r)
	}
}

func TestOptionalNeverFails(t *testing.T) {
	ps := []Parser[Unit]{SkipChar('1'), SkipString("124"), End(), SkipWS(), Left(SkipChar('1'), SkipChar('x'))}
	for i, p := range ps {
		inner := Parse(p, calcInput)
		r := Parse(Optional(p), calcInput)
		if !r.Ok() {
			t.Fatalf("%d: Optional failed: %v", i, r)
		}
		if inner.Ok() != r.Value.Get().HasValue() {
			t.Errorf("%d: present = %v, want %v", i, r.Value.Get().HasValue(), inner.Ok())
		}
		if !inner.Ok() && r.Position != 0 {
			t.Errorf("%d: Position = %d, want 0", i, r.Position)
		}
	}
}

func TestSep(t *testing.T) {
	sum := Sep(Left(Int(), SkipWS()), Left(AnyOf("+-"), SkipWS()), func(acc int, op byte, next int) int {
		if op == '+' {
			return acc + next
		}
		return acc - next
	})

	tests := []struct {
		input string
		ok    bool
		pos   int
		want  int
	}{
		{"1", true, 1, 1},
		{"10 - 3 - 2", true, 10, 5},
		{"1 + 2 +", true, 6, 3},
		{"+ 1", false, 0, 0},
		{calcInput, true, 11, 6912},
	}
	for _, tt := range tests {
		r := Parse(sum, tt.input)
		if r.Ok() != tt.ok || r.Position != tt.pos {
			t.Errorf("Parse(%q) = %v, want ok=%v at %d", tt.input, r, tt.ok, tt.pos)
			continue
		}
		if tt.ok && r.Value.Get() != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.input, r.Value.Get(), tt.want)
		}
	}
}

func TestSepFirstFailureReportsStart(t *testing.T) {
	p := Sep(SkipString("ab"), SkipChar(','), func(Unit, Unit, Unit) Unit { return Unit{} })
	r := Parse(p, "ax")
	if r.Ok() || r.Position != 0 {
		t.Errorf("Parse = %v, want failure at 0", r)
	}
}

func TestRecognize(t *testing.T) {
	p := Recognize(Tuple2(Int(), Optional(Right(SkipChar('.'), Int()))))
	r := Parse(p, "3.14 rest")
	if !r.Ok() || r.Position != 4 || r.Value.Get().String() != "3.14" {
		t.Errorf("Parse = %v, want 3.14 at 4", r)
	}
}
