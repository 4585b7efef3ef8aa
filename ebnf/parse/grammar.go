package parse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

var (
	// ErrLeftRecursion is returned for grammars in which a production can reach
	// itself without consuming input.
	ErrLeftRecursion = errors.New("left recursion")
	// ErrNullableRepetition is returned for repetitions whose body matches the empty string.
	ErrNullableRepetition = errors.New("repetition of a nullable expression")
	// ErrUnsupported is returned for grammar constructs the compiler cannot express.
	ErrUnsupported = errors.New("unsupported construct")
)

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ParseGrammar(filename, f)
}

// ParseGrammar reads an EBNF grammar from r.
func ParseGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// isLexical reports whether the production name denotes a lexical production,
// using the same rule as ebnf.Verify.
func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

// analysis holds per-production facts needed before compiling a grammar.
type analysis struct {
	grammar  ebnf.Grammar
	nullable map[string]bool
}

func analyze(g ebnf.Grammar) *analysis {
	a := &analysis{grammar: g, nullable: make(map[string]bool)}
	// Fixpoint: nullability only ever flips from false to true.
	for changed := true; changed; {
		changed = false
		for name, prod := range g {
			if !a.nullable[name] && a.isNullable(prod.Expr) {
				a.nullable[name] = true
				changed = true
			}
		}
	}
	return a
}

// isNullable reports whether expr can match the empty string.
func (a *analysis) isNullable(expr ebnf.Expression) bool {
	switch x := expr.(type) {
	case nil:
		return true
	case *ebnf.Token:
		return x.String == ""
	case *ebnf.Name:
		return a.nullable[x.String]
	case ebnf.Sequence:
		for _, e := range x {
			if !a.isNullable(e) {
				return false
			}
		}
		return true
	case ebnf.Alternative:
		for _, e := range x {
			if a.isNullable(e) {
				return true
			}
		}
		return false
	case *ebnf.Group:
		return a.isNullable(x.Body)
	case *ebnf.Option, *ebnf.Repetition:
		return true
	default:
		return false
	}
}

// leftmost collects the names expr may invoke before consuming any input.
func (a *analysis) leftmost(expr ebnf.Expression, out map[string]bool) {
	switch x := expr.(type) {
	case *ebnf.Name:
		out[x.String] = true
	case ebnf.Sequence:
		for _, e := range x {
			a.leftmost(e, out)
			if !a.isNullable(e) {
				return
			}
		}
	case ebnf.Alternative:
		for _, e := range x {
			a.leftmost(e, out)
		}
	case *ebnf.Group:
		a.leftmost(x.Body, out)
	case *ebnf.Option:
		a.leftmost(x.Body, out)
	case *ebnf.Repetition:
		a.leftmost(x.Body, out)
	}
}

// checkLeftRecursion reports the first cycle in the leftmost-call graph.
func (a *analysis) checkLeftRecursion() error {
	names := make([]string, 0, len(a.grammar))
	for name := range a.grammar {
		names = append(names, name)
	}
	sort.Strings(names)

	edges := make(map[string][]string, len(names))
	for _, name := range names {
		out := make(map[string]bool)
		a.leftmost(a.grammar[name].Expr, out)
		for callee := range out {
			edges[name] = append(edges[name], callee)
		}
		sort.Strings(edges[name])
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(names))
	var path []string
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			i := len(path) - 1
			for path[i] != name {
				i--
			}
			cycle := append(append([]string{}, path[i:]...), name)
			return fmt.Errorf("%w: %s", ErrLeftRecursion, strings.Join(cycle, " -> "))
		case done:
			return nil
		}
		state[name] = visiting
		path = append(path, name)
		for _, callee := range edges[name] {
			if err := visit(callee); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		return nil
	}
	for _, name := range names {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// Check verifies g from start and reports constructs Compile would reject.
func Check(g ebnf.Grammar, start string) error {
	if err := ebnf.Verify(g, start); err != nil {
		return err
	}
	return analyze(g).checkLeftRecursion()
}
