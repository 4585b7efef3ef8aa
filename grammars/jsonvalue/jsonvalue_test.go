package jsonvalue

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/combinator/pc"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"-2", -2},
		{"2.171828", 2.171828},
		{"1.32E3", 1320},
		{"2e-2", 0.02},
		{"3.1415e10", 3.1415e10},
		{"0", 0},
		{"12345678901234567890", 12345678901234567890},
		{"1e+2", 100},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNumber(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNumberRejects(t *testing.T) {
	for _, input := range []string{"1.0g32", "", "-", "1.", ".5", "1e", "+1", "01", "-007", "00.5"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseNumber(input)
			var se *pc.SyntaxError
			assert.True(t, errors.As(err, &se), "err = %v", err)
		})
	}
}

func TestParseNumberErrorLocation(t *testing.T) {
	_, err := ParseNumber("1.0g32")
	var se *pc.SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 3, se.Offset)
	assert.Equal(t, "'g'", se.Found)
}

func TestParseNumberLeadingZero(t *testing.T) {
	_, err := ParseNumber("-007")
	var se *pc.SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Offset)
	assert.Equal(t, "'0'", se.Found)

	got, err := ParseNumber("-0.07")
	require.NoError(t, err)
	assert.Equal(t, -0.07, got)
}

func TestParseNumberOutOfRange(t *testing.T) {
	for _, input := range []string{"1e999", "-1e999"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseNumber(input)
			var se *pc.SyntaxError
			require.True(t, errors.As(err, &se), "err = %v", err)
			assert.Equal(t, len(input), se.Offset)
			assert.Equal(t, []string{"number within float64 range"}, se.Expected)
		})
	}

	_, err := Parse("[1, 1e999]")
	assert.Error(t, err)

	got, err := ParseNumber("1e-999")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = ParseNumber("1e000000000000000000002")
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{"null", Null()},
		{" true ", Bool(true)},
		{"false", Bool(false)},
		{`"Hello"`, String("Hello")},
		{`"Hello\r\n\tThere"`, String("Hello\r\n\tThere")},
		{`"é\/\"\\"`, String("é/\"\\")},
		{`"😀"`, String("😀")},
		{`"\ud83d\ude00 \u00e9"`, String("😀 é")},
		{"[]", Array()},
		{"[ 1 , [2], {} ]", Array(Number(1), Array(Number(2)), Object())},
		{`{"a": 1, "b": [true, null]}`, Object(
			Member{Key: "a", Value: Number(1)},
			Member{Key: "b", Value: Array(Bool(true), Null())},
		)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Format(), got.Format())
			assert.Equal(t, tt.want.Kind, got.Kind)
		})
	}
}

func TestParseMatchesEncodingJSON(t *testing.T) {
	inputs := []string{
		`{"name": "pc", "tags": ["parser", "combinator"], "depth": 3.5, "ok": true, "none": null}`,
		`[[[]], {"x": {"y": {"z": -1e-3}}}]`,
		`"tab\there"`,
		`"\ud800\u0041"`,
		`"\udc00\udc00"`,
		`"\ud83d\ud83d\ude00"`,
		`"\ud83d"`,
	}
	for _, input := range inputs {
		var want any
		require.NoError(t, json.Unmarshal([]byte(input), &want))

		got, err := Parse(input)
		require.NoError(t, err)
		assert.Equal(t, want, got.Interface())
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		input  string
		offset int
	}{
		{"[1,]", 3},
		{`{"a" 1}`, 5},
		{`"unterminated`, 13},
		{"nul", 3},
		{"[1] 2", 4},
		{"[00]", 2},
		{`{"n": 01}`, 7},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			var se *pc.SyntaxError
			require.True(t, errors.As(err, &se), "err = %v", err)
			assert.Equal(t, tt.offset, se.Offset)
		})
	}
}

func TestFormatIsJSON(t *testing.T) {
	inputs := []string{
		`"\u0001"`,
		`"\u007f"`,
		`{"k\u0002": ["\u001f", "<&>", "\ud800x"]}`,
		`[1e21, -0.5, 1e-7, 123456789012345678901234567890, 0]`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			v, err := Parse(input)
			require.NoError(t, err)

			out := v.Format()
			require.True(t, json.Valid([]byte(out)), "Format() = %s", out)

			var want, got any
			require.NoError(t, json.Unmarshal([]byte(input), &want))
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, want, got)

			again, err := Parse(out)
			require.NoError(t, err)
			assert.Equal(t, out, again.Format())
		})
	}

	assert.Equal(t, "[null,null]", Array(Number(math.Inf(1)), Number(math.NaN())).Format())
}

func TestGet(t *testing.T) {
	v, err := Parse(`{"a": 1, "a": 2}`)
	require.NoError(t, err)
	got, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2.0, got.Number)

	_, ok = v.Get("b")
	assert.False(t, ok)
}
