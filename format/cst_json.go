package format

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dhamidi/combinator/ebnf/parse"
	"github.com/dhamidi/combinator/pc"
)

type CSTJSONEncoder struct {
	w    io.Writer
	root *parse.Node
}

func NewCSTJSONEncoder(w io.Writer) *CSTJSONEncoder {
	return &CSTJSONEncoder{w: w}
}

func (e *CSTJSONEncoder) Encode(root *parse.Node) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *CSTJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(e.root), "", "  ")
}

type cstJSONNode struct {
	Kind     string         `json:"kind"`
	Span     *cstJSONSpan   `json:"span,omitempty"`
	Text     string         `json:"text,omitempty"`
	Children []*cstJSONNode `json:"children,omitempty"`
}

type cstJSONSpan struct {
	Start cstJSONPosition `json:"start"`
	End   cstJSONPosition `json:"end"`
}

type cstJSONPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func nodeToJSON(n *parse.Node) *cstJSONNode {
	if n == nil {
		return nil
	}
	jn := &cstJSONNode{
		Kind: n.Kind,
		Text: n.Text,
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		jn.Span = &cstJSONSpan{
			Start: cstJSONPosition{Offset: n.Span.Start.Offset, Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   cstJSONPosition{Offset: n.Span.End.Offset, Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*cstJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
	}

	return jn
}

// ErrorJSON is the JSON form of a failed parse.
type ErrorJSON struct {
	File     string   `json:"file,omitempty"`
	Message  string   `json:"message"`
	Offset   int      `json:"offset,omitempty"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Expected []string `json:"expected,omitempty"`
	Found    string   `json:"found,omitempty"`
}

// NewErrorJSON describes err, filling in the location when err wraps a
// *pc.SyntaxError.
func NewErrorJSON(file string, err error) *ErrorJSON {
	ej := &ErrorJSON{File: file, Message: err.Error()}
	var se *pc.SyntaxError
	if errors.As(err, &se) {
		ej.Offset = se.Offset
		ej.Line = se.Line
		ej.Column = se.Column
		ej.Expected = se.Expected
		ej.Found = se.Found
	}
	return ej
}

// EncodeError writes err as indented JSON.
func EncodeError(w io.Writer, file string, err error) error {
	text, merr := json.MarshalIndent(NewErrorJSON(file, err), "", "  ")
	if merr != nil {
		return merr
	}
	_, werr := w.Write(append(text, '\n'))
	return werr
}
