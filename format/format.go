// Package format renders parse results for the command line and editors.
package format

import (
	"encoding"
	"io"

	"github.com/dhamidi/combinator/ebnf/parse"
)

// Encoder writes a concrete syntax tree in some output format.
type Encoder interface {
	encoding.TextMarshaler
	Encode(root *parse.Node) error
}

// NewEncoder returns the encoder registered under name ("json" or "tree"), or nil.
func NewEncoder(name string, w io.Writer) Encoder {
	switch name {
	case "json":
		return NewCSTJSONEncoder(w)
	case "tree":
		return NewLineEncoder(w)
	default:
		return nil
	}
}
