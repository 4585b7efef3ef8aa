// Package parse compiles EBNF grammars into pc parsers producing concrete syntax trees.
package parse

import (
	"fmt"
	"sort"
	"strings"
)

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

// Node represents a node in the concrete syntax tree.
// Leaf nodes carry Text; interior nodes have Children.
type Node struct {
	Kind     string  // Production name, or TokenKind for literals
	Children []*Node // Child nodes (nil for leaves)
	Text     string  // Matched source text (leaves only)
	Span     Span    // Source span covering this node
}

// TokenKind is the kind of leaves produced by literal tokens in syntactic productions.
const TokenKind = "token"

// IsTerminal returns true if this is a leaf node.
func (n *Node) IsTerminal() bool {
	return n.Children == nil
}

// AddChild appends a child node and updates the span.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
	if len(n.Children) == 1 {
		n.Span.Start = child.Span.Start
	}
	n.Span.End = child.Span.End
}

// Find returns the first node in depth-first order with the given kind, or nil.
func (n *Node) Find(kind string) *Node {
	if n.Kind == kind {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(kind); found != nil {
			return found
		}
	}
	return nil
}

// Dump renders the tree with one node per line, indented by depth.
func (n *Node) Dump() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if n.IsTerminal() {
		fmt.Fprintf(sb, "%s %q @%s\n", n.Kind, n.Text, n.Span.Start)
		return
	}
	fmt.Fprintf(sb, "%s @%s\n", n.Kind, n.Span.Start)
	for _, child := range n.Children {
		child.dump(sb, depth+1)
	}
}

// NewTerminal creates a leaf node covering input[begin:end].
func NewTerminal(kind, text string, begin, end int) *Node {
	return &Node{
		Kind: kind,
		Text: text,
		Span: Span{
			Start: Position{Offset: begin},
			End:   Position{Offset: end},
		},
	}
}

// NewNonTerminal creates a non-terminal node.
func NewNonTerminal(kind string) *Node {
	return &Node{
		Kind:     kind,
		Children: make([]*Node, 0),
	}
}

// lineIndex maps byte offsets to 1-based lines and columns.
type lineIndex struct {
	filename string
	starts   []int
}

func newLineIndex(filename, input string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{filename: filename, starts: starts}
}

func (li *lineIndex) resolve(p *Position) {
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > p.Offset }) - 1
	p.Filename = li.filename
	p.Line = line + 1
	p.Column = p.Offset - li.starts[line] + 1
}

// locate fills in Filename, Line and Column of every span in the tree.
func (li *lineIndex) locate(n *Node) {
	li.resolve(&n.Span.Start)
	li.resolve(&n.Span.End)
	for _, child := range n.Children {
		li.locate(child)
	}
}
