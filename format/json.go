package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/combinator/grammars/calc"
)

// ExprJSONEncoder writes calculator expression trees as JSON.
type ExprJSONEncoder struct {
	w    io.Writer
	expr *calc.Expr
}

func NewExprJSONEncoder(w io.Writer) *ExprJSONEncoder {
	return &ExprJSONEncoder{w: w}
}

func (e *ExprJSONEncoder) Encode(expr *calc.Expr) error {
	e.expr = expr
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ExprJSONEncoder) MarshalText() ([]byte, error) {
	return json.Marshal(exprToJSON(e.expr))
}

type jsonExpr struct {
	Kind  string    `json:"kind"`
	Value *int      `json:"value,omitempty"`
	Name  string    `json:"name,omitempty"`
	Op    string    `json:"op,omitempty"`
	Left  *jsonExpr `json:"left,omitempty"`
	Right *jsonExpr `json:"right,omitempty"`
}

func exprToJSON(x *calc.Expr) *jsonExpr {
	if x == nil {
		return nil
	}
	je := &jsonExpr{Kind: x.Kind.String()}
	switch x.Kind {
	case calc.KindInt:
		v := x.Value
		je.Value = &v
	case calc.KindIdent:
		je.Name = x.Name
	case calc.KindBinary:
		je.Op = string(x.Op)
		je.Left = exprToJSON(x.Left)
		je.Right = exprToJSON(x.Right)
	}
	return je
}
