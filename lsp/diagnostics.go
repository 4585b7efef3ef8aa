package lsp

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/combinator/ebnf/parse"
	"github.com/dhamidi/combinator/grammars/calc"
	"github.com/dhamidi/combinator/grammars/jsonvalue"
	"github.com/dhamidi/combinator/pc"
)

// grammarName is the filename grammars are parsed under, so that locations
// can be recovered from error messages.
const grammarName = "input.ebnf"

// Diagnose checks text according to the kind of document at path. Documents of
// unknown kinds produce no diagnostics.
func Diagnose(path, text string, vars calc.Variables) []protocol.Diagnostic {
	switch filepath.Ext(path) {
	case ".calc":
		return diagnoseCalc(text, vars)
	case ".json":
		return diagnoseJSON(text)
	case ".ebnf":
		return diagnoseGrammar(text)
	default:
		return []protocol.Diagnostic{}
	}
}

// diagnoseCalc treats every non-blank line as one expression.
func diagnoseCalc(text string, vars calc.Variables) []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		expr, err := calc.Parse(line)
		if err != nil {
			diags = append(diags, syntaxDiagnostic(i, err))
			continue
		}

		unknown := false
		for _, name := range expr.Identifiers() {
			if _, ok := vars[name]; !ok {
				unknown = true
				diags = append(diags, lineDiagnostic(i, line, protocol.DiagnosticSeverityWarning,
					fmt.Sprintf("unknown variable %q", name)))
			}
		}
		if unknown {
			continue
		}
		if _, err := expr.Eval(vars); err != nil {
			diags = append(diags, lineDiagnostic(i, line, protocol.DiagnosticSeverityWarning, err.Error()))
		}
	}
	return diags
}

func diagnoseJSON(text string) []protocol.Diagnostic {
	if _, err := jsonvalue.Parse(text); err != nil {
		return []protocol.Diagnostic{syntaxDiagnostic(0, err)}
	}
	return []protocol.Diagnostic{}
}

// diagnoseGrammar parses and compiles a grammar, starting from its first production.
func diagnoseGrammar(text string) []protocol.Diagnostic {
	g, err := parse.ParseGrammar(grammarName, strings.NewReader(text))
	if err != nil {
		return []protocol.Diagnostic{grammarDiagnostic(err, 0, 0)}
	}
	start := firstProduction(g)
	if start == "" {
		return []protocol.Diagnostic{}
	}
	if _, err := parse.Compile(g, start); err != nil {
		pos := g[start].Pos()
		return []protocol.Diagnostic{grammarDiagnostic(err, pos.Line-1, pos.Column-1)}
	}
	return []protocol.Diagnostic{}
}

func firstProduction(g ebnf.Grammar) string {
	start := ""
	offset := -1
	for name, prod := range g {
		if off := prod.Pos().Offset; offset < 0 || off < offset {
			start, offset = name, off
		}
	}
	return start
}

// errorLocation matches the "name:line:column:" prefix the ebnf package puts
// on its messages.
var errorLocation = pc.Right(
	pc.SkipString(grammarName+":"),
	pc.Tuple2(pc.Left(pc.Int(), pc.SkipChar(':')), pc.Left(pc.Int(), pc.SkipChar(':'))),
)

// grammarDiagnostic reports err at the first location mentioned in its
// message, or at line and col when there is none.
func grammarDiagnostic(err error, line, col int) protocol.Diagnostic {
	msg := err.Error()
	if i := strings.Index(msg, grammarName+":"); i >= 0 {
		if r := pc.Parse(errorLocation, msg[i:]); r.Ok() {
			loc := r.Value.Get()
			line, col = loc.First-1, loc.Second-1
		}
	}
	return pointDiagnostic(line, col, protocol.DiagnosticSeverityError, msg)
}

// syntaxDiagnostic reports err at its location, offset by lineBase lines.
func syntaxDiagnostic(lineBase int, err error) protocol.Diagnostic {
	var se *pc.SyntaxError
	if !errors.As(err, &se) {
		return pointDiagnostic(lineBase, 0, protocol.DiagnosticSeverityError, err.Error())
	}
	return pointDiagnostic(lineBase+se.Line-1, se.Column-1, protocol.DiagnosticSeverityError, se.Message())
}

func pointDiagnostic(line, col int, severity protocol.DiagnosticSeverity, msg string) protocol.Diagnostic {
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return newDiagnostic(line, col, col+1, severity, msg)
}

func lineDiagnostic(line int, text string, severity protocol.DiagnosticSeverity, msg string) protocol.Diagnostic {
	return newDiagnostic(line, 0, len(text), severity, msg)
}

func newDiagnostic(line, startCol, endCol int, severity protocol.DiagnosticSeverity, msg string) protocol.Diagnostic {
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(startCol)},
			End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(endCol)},
		},
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}
}
