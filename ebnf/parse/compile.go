package parse

import (
	"fmt"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/combinator/pc"
)

// Option configures Compile.
type Option func(*compiler)

// WithoutWhitespace disables skipping whitespace between the elements of
// syntactic productions.
func WithoutWhitespace() Option {
	return func(c *compiler) {
		c.skipWS = false
	}
}

// compiler turns productions into parsers. Syntactic productions build CST
// nodes; lexical productions only recognize input and are turned into leaves
// by whoever references them.
type compiler struct {
	analysis  *analysis
	skipWS    bool
	syntactic map[string]*pc.Trampoline[[]*Node]
	lexical   map[string]*pc.Trampoline[pc.Unit]
}

// Compile verifies g from start and builds a parser for it. Every production
// is reachable through its own trampoline, so productions may refer to each
// other in any order.
func Compile(g ebnf.Grammar, start string, opts ...Option) (*Parser, error) {
	if err := ebnf.Verify(g, start); err != nil {
		return nil, err
	}
	a := analyze(g)
	if err := a.checkLeftRecursion(); err != nil {
		return nil, err
	}

	c := &compiler{
		analysis:  a,
		skipWS:    true,
		syntactic: make(map[string]*pc.Trampoline[[]*Node]),
		lexical:   make(map[string]*pc.Trampoline[pc.Unit]),
	}
	for _, opt := range opts {
		opt(c)
	}

	for name := range g {
		if isLexical(name) {
			c.lexical[name] = pc.NewTrampoline[pc.Unit]()
		} else {
			c.syntactic[name] = pc.NewTrampoline[[]*Node]()
		}
	}
	for name, prod := range g {
		if isLexical(name) {
			p, err := c.recognizer(prod.Expr)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			c.lexical[name].Set(p)
			continue
		}
		p, err := c.builder(prod.Expr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		c.syntactic[name].Set(production(name, p))
	}

	var root pc.Parser[[]*Node]
	if isLexical(start) {
		root = c.leaf(start)
	} else {
		root = c.syntactic[start].Parser()
	}
	root = pc.Left(pc.Left(root, c.ws()), pc.End())
	return &Parser{start: start, root: root}, nil
}

func (c *compiler) ws() pc.Parser[pc.Unit] {
	if !c.skipWS {
		return pc.Return(pc.Unit{})
	}
	return pc.SkipWS()
}

// production wraps the children built by body into a single node named name.
func production(name string, body pc.Parser[[]*Node]) pc.Parser[[]*Node] {
	body = pc.Label(name, body)
	return func(cur *pc.Cursor, pos int) pc.Result[[]*Node] {
		r := body(cur, pos)
		if !r.Ok() {
			return r
		}
		n := NewNonTerminal(name)
		for _, child := range r.Value.Get() {
			n.AddChild(child)
		}
		if len(n.Children) == 0 {
			n.Span = Span{Start: Position{Offset: r.Position}, End: Position{Offset: r.Position}}
		}
		return pc.Success(r.Position, []*Node{n})
	}
}

// leaf recognizes the lexical production name and yields one node with its text.
func (c *compiler) leaf(name string) pc.Parser[[]*Node] {
	p := pc.Label(name, pc.Recognize(c.lexical[name].Parser()))
	return pc.Map(p, func(s pc.SubString) []*Node {
		return []*Node{NewTerminal(name, s.String(), s.Begin, s.End)}
	})
}

// builder compiles an expression of a syntactic production.
func (c *compiler) builder(expr ebnf.Expression) (pc.Parser[[]*Node], error) {
	switch x := expr.(type) {
	case nil:
		return pc.Return[[]*Node](nil), nil
	case *ebnf.Token:
		tok := pc.Recognize(pc.SkipString(x.String))
		return pc.Right(c.ws(), pc.Map(tok, func(s pc.SubString) []*Node {
			return []*Node{NewTerminal(TokenKind, s.String(), s.Begin, s.End)}
		})), nil
	case *ebnf.Range:
		r, err := c.class(x)
		if err != nil {
			return nil, err
		}
		return pc.Right(c.ws(), pc.Map(pc.Recognize(r), func(s pc.SubString) []*Node {
			return []*Node{NewTerminal(TokenKind, s.String(), s.Begin, s.End)}
		})), nil
	case *ebnf.Name:
		if isLexical(x.String) {
			return pc.Right(c.ws(), c.leaf(x.String)), nil
		}
		return c.syntactic[x.String].Parser(), nil
	case ebnf.Sequence:
		parts, err := c.builders(x)
		if err != nil {
			return nil, err
		}
		seq := parts[0]
		for _, next := range parts[1:] {
			seq = pc.Map(pc.Tuple2(seq, next), func(p pc.Pair[[]*Node, []*Node]) []*Node {
				return append(p.First[:len(p.First):len(p.First)], p.Second...)
			})
		}
		return seq, nil
	case ebnf.Alternative:
		parts, err := c.builders(x)
		if err != nil {
			return nil, err
		}
		if len(parts) == 1 {
			return parts[0], nil
		}
		return pc.Choice(parts[0], parts[1], parts[2:]...), nil
	case *ebnf.Group:
		return c.builder(x.Body)
	case *ebnf.Option:
		body, err := c.builder(x.Body)
		if err != nil {
			return nil, err
		}
		return pc.Map(pc.Optional(body), func(o pc.Opt[[]*Node]) []*Node {
			return o.Coalesce(nil)
		}), nil
	case *ebnf.Repetition:
		if c.analysis.isNullable(x.Body) {
			return nil, fmt.Errorf("%w at %s", ErrNullableRepetition, x.Pos())
		}
		body, err := c.builder(x.Body)
		if err != nil {
			return nil, err
		}
		return pc.Map(pc.Many(0, pc.Unbounded, body), func(items [][]*Node) []*Node {
			var out []*Node
			for _, item := range items {
				out = append(out, item...)
			}
			return out
		}), nil
	default:
		return nil, fmt.Errorf("%w: %T at %s", ErrUnsupported, expr, expr.Pos())
	}
}

func (c *compiler) builders(exprs []ebnf.Expression) ([]pc.Parser[[]*Node], error) {
	parts := make([]pc.Parser[[]*Node], len(exprs))
	for i, e := range exprs {
		p, err := c.builder(e)
		if err != nil {
			return nil, err
		}
		parts[i] = p
	}
	return parts, nil
}

// recognizer compiles an expression of a lexical production. Lexical
// productions match characters exactly, without skipping whitespace.
func (c *compiler) recognizer(expr ebnf.Expression) (pc.Parser[pc.Unit], error) {
	switch x := expr.(type) {
	case nil:
		return pc.Return(pc.Unit{}), nil
	case *ebnf.Token:
		return pc.SkipString(x.String), nil
	case *ebnf.Range:
		r, err := c.class(x)
		if err != nil {
			return nil, err
		}
		return pc.Map(r, func(byte) pc.Unit { return pc.Unit{} }), nil
	case *ebnf.Name:
		return c.lexical[x.String].Parser(), nil
	case ebnf.Sequence:
		parts, err := c.recognizers(x)
		if err != nil {
			return nil, err
		}
		seq := parts[0]
		for _, next := range parts[1:] {
			seq = pc.Left(seq, next)
		}
		return seq, nil
	case ebnf.Alternative:
		parts, err := c.recognizers(x)
		if err != nil {
			return nil, err
		}
		if len(parts) == 1 {
			return parts[0], nil
		}
		return pc.Choice(parts[0], parts[1], parts[2:]...), nil
	case *ebnf.Group:
		return c.recognizer(x.Body)
	case *ebnf.Option:
		body, err := c.recognizer(x.Body)
		if err != nil {
			return nil, err
		}
		return pc.Map(pc.Optional(body), func(pc.Opt[pc.Unit]) pc.Unit { return pc.Unit{} }), nil
	case *ebnf.Repetition:
		if c.analysis.isNullable(x.Body) {
			return nil, fmt.Errorf("%w at %s", ErrNullableRepetition, x.Pos())
		}
		body, err := c.recognizer(x.Body)
		if err != nil {
			return nil, err
		}
		return pc.Map(pc.Many(0, pc.Unbounded, body), func([]pc.Unit) pc.Unit { return pc.Unit{} }), nil
	default:
		return nil, fmt.Errorf("%w: %T at %s", ErrUnsupported, expr, expr.Pos())
	}
}

func (c *compiler) recognizers(exprs []ebnf.Expression) ([]pc.Parser[pc.Unit], error) {
	parts := make([]pc.Parser[pc.Unit], len(exprs))
	for i, e := range exprs {
		p, err := c.recognizer(e)
		if err != nil {
			return nil, err
		}
		parts[i] = p
	}
	return parts, nil
}

// class matches one byte in the inclusive range of r.
func (c *compiler) class(r *ebnf.Range) (pc.Parser[byte], error) {
	lo, hi := r.Begin.String, r.End.String
	if len(lo) != 1 || len(hi) != 1 {
		return nil, fmt.Errorf("%w: non-ASCII range %q … %q at %s", ErrUnsupported, lo, hi, r.Pos())
	}
	name := fmt.Sprintf("%q … %q", lo, hi)
	return pc.SatisfyChar(name, func(ch byte) bool {
		return ch >= lo[0] && ch <= hi[0]
	}), nil
}
