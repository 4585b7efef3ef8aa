// Package jsonvalue parses JSON text with parser combinators.
package jsonvalue

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a JSON value. Kind selects which of the other fields is set.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	String string
	Array  []Value
	Object []Member
}

// Member is one key/value pair of an object, kept in source order.
type Member struct {
	Key   string
	Value Value
}

func Null() Value { return Value{Kind: KindNull} }
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func Number(f float64) Value { return Value{Kind: KindNumber, Number: f} }
func String(s string) Value { return Value{Kind: KindString, String: s} }
func Array(vs ...Value) Value { return Value{Kind: KindArray, Array: vs} }
func Object(ms ...Member) Value { return Value{Kind: KindObject, Object: ms} }

// Get returns the value of the last member named key.
func (v Value) Get(key string) (Value, bool) {
	for i := len(v.Object) - 1; i >= 0; i-- {
		if v.Object[i].Key == key {
			return v.Object[i].Value, true
		}
	}
	return Value{}, false
}

// Interface converts v to the types encoding/json decodes into: nil, bool,
// float64, string, []any and map[string]any.
func (v Value) Interface() any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Number
	case KindString:
		return v.String
	case KindArray:
		out := make([]any, len(v.Array))
		for i, e := range v.Array {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.Object))
		for _, m := range v.Object {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// Format writes v back as compact JSON. Strings are escaped and numbers are
// spelled the way encoding/json does it; infinite or NaN numbers, which no
// parsed value holds, are written as null.
func (v Value) Format() string {
	var b strings.Builder
	v.format(&b)
	return b.String()
}

func (v Value) format(b *strings.Builder) {
	switch v.Kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.Bool))
	case KindNumber:
		if math.IsInf(v.Number, 0) || math.IsNaN(v.Number) {
			b.WriteString("null")
			return
		}
		writeJSON(b, v.Number)
	case KindString:
		writeJSON(b, v.String)
	case KindArray:
		b.WriteByte('[')
		for i, e := range v.Array {
			if i > 0 {
				b.WriteByte(',')
			}
			e.format(b)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, m := range v.Object {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSON(b, m.Key)
			b.WriteByte(':')
			m.Value.format(b)
		}
		b.WriteByte('}')
	}
}

// writeJSON encodes a string or a finite float64, neither of which can fail.
func writeJSON(b *strings.Builder, v any) {
	out, _ := json.Marshal(v)
	b.Write(out)
}
