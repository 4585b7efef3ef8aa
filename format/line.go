package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/combinator/ebnf/parse"
)

// LineEncoder prints one tab-separated line per node: depth-indented kind,
// start and end position, and the quoted text of leaves.
type LineEncoder struct {
	w    io.Writer
	root *parse.Node
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(root *parse.Node) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.root != nil {
		e.writeNode(&sb, e.root, 0)
	}
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeNode(sb *strings.Builder, n *parse.Node, depth int) {
	fmt.Fprintf(sb, "%s%s\t%s\t%s\t%s\n",
		strings.Repeat("  ", depth),
		n.Kind,
		positionStr(n.Span.Start),
		positionStr(n.Span.End),
		e.textStr(n),
	)
	for _, child := range n.Children {
		e.writeNode(sb, child, depth+1)
	}
}

func positionStr(p parse.Position) string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (e *LineEncoder) textStr(n *parse.Node) string {
	if !n.IsTerminal() {
		return "-"
	}
	return strconv.Quote(n.Text)
}
