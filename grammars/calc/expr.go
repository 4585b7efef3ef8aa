// Package calc parses and evaluates integer arithmetic expressions over named
// variables.
package calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownVariable = errors.New("unknown variable")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrUnknownOperator = errors.New("unknown operator")
)

// Variables maps identifiers to their values.
type Variables map[string]int

type Kind int

const (
	KindInt Kind = iota
	KindIdent
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindIdent:
		return "identifier"
	case KindBinary:
		return "binary"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Expr is an expression tree node. Which fields are meaningful depends on Kind:
// Value for KindInt, Name for KindIdent, Op, Left and Right for KindBinary.
type Expr struct {
	Kind  Kind
	Value int
	Name  string
	Op    byte
	Left  *Expr
	Right *Expr
}

func Int(v int) *Expr {
	return &Expr{Kind: KindInt, Value: v}
}

func Ident(name string) *Expr {
	return &Expr{Kind: KindIdent, Name: name}
}

func Binary(left *Expr, op byte, right *Expr) *Expr {
	return &Expr{Kind: KindBinary, Op: op, Left: left, Right: right}
}

// String prints the expression with every binary operation parenthesized.
func (e *Expr) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Expr) write(b *strings.Builder) {
	switch e.Kind {
	case KindInt:
		b.WriteString(strconv.Itoa(e.Value))
	case KindIdent:
		b.WriteString(e.Name)
	case KindBinary:
		b.WriteByte('(')
		e.Left.write(b)
		b.WriteByte(' ')
		b.WriteByte(e.Op)
		b.WriteByte(' ')
		e.Right.write(b)
		b.WriteByte(')')
	}
}

// Eval computes the value of the expression.
func (e *Expr) Eval(vars Variables) (int, error) {
	switch e.Kind {
	case KindInt:
		return e.Value, nil
	case KindIdent:
		v, ok := vars[e.Name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownVariable, e.Name)
		}
		return v, nil
	case KindBinary:
		l, err := e.Left.Eval(vars)
		if err != nil {
			return 0, err
		}
		r, err := e.Right.Eval(vars)
		if err != nil {
			return 0, err
		}
		return apply(e.Op, l, r)
	default:
		return 0, fmt.Errorf("eval: unexpected %s node", e.Kind)
	}
}

func apply(op byte, l, r int) (int, error) {
	switch op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/', '%':
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		if op == '/' {
			return l / r, nil
		}
		return l % r, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
}

// Identifiers returns the distinct variable names used by e, in order of first use.
func (e *Expr) Identifiers() []string {
	var names []string
	seen := map[string]bool{}
	var walk func(*Expr)
	walk = func(e *Expr) {
		switch e.Kind {
		case KindIdent:
			if !seen[e.Name] {
				seen[e.Name] = true
				names = append(names, e.Name)
			}
		case KindBinary:
			walk(e.Left)
			walk(e.Right)
		}
	}
	walk(e)
	return names
}
