package parse

import (
	"fmt"

	"github.com/dhamidi/combinator/pc"
)

// Parser parses input according to a compiled grammar. A Parser holds no
// per-parse state and may be used from several goroutines at once.
type Parser struct {
	start string
	root  pc.Parser[[]*Node]
}

// Start returns the name of the production the parser begins with.
func (p *Parser) Start() string {
	return p.start
}

// Parse parses input and returns its concrete syntax tree. Syntax errors wrap
// a *pc.SyntaxError and are prefixed with filename unless it is empty.
func (p *Parser) Parse(filename string, input []byte) (*Node, error) {
	src := string(input)
	nodes, err := pc.Run(p.root, src)
	if err != nil {
		if filename == "" {
			return nil, err
		}
		return nil, fmt.Errorf("%s:%w", filename, err)
	}
	root := nodes[0]
	newLineIndex(filename, src).locate(root)
	return root, nil
}

// ParseFile is a convenience function that compiles grammar from start and parses input.
func ParseFile(grammarFile, start, filename string, input []byte) (*Node, error) {
	g, err := LoadGrammar(grammarFile)
	if err != nil {
		return nil, err
	}
	p, err := Compile(g, start)
	if err != nil {
		return nil, err
	}
	return p.Parse(filename, input)
}
