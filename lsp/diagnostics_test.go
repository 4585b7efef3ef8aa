package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/combinator/grammars/calc"
)

type diagSummary struct {
	Line, Start, End int
	Severity         protocol.DiagnosticSeverity
	Message          string
}

func summarize(diags []protocol.Diagnostic) []diagSummary {
	out := make([]diagSummary, len(diags))
	for i, d := range diags {
		out[i] = diagSummary{
			Line:     int(d.Range.Start.Line),
			Start:    int(d.Range.Start.Character),
			End:      int(d.Range.End.Character),
			Severity: *d.Severity,
			Message:  d.Message,
		}
	}
	return out
}

func TestDiagnoseCalc(t *testing.T) {
	text := "1 + 2\n\n(1 +\nx * 2\n4 / 0\ny + 1\n"
	diags := Diagnose("/tmp/sheet.calc", text, calc.Variables{"x": 3})

	want := []diagSummary{
		{Line: 2, Start: 4, End: 5, Severity: protocol.DiagnosticSeverityError,
			Message: "syntax error: expected operand, found end of input"},
		{Line: 4, Start: 0, End: 5, Severity: protocol.DiagnosticSeverityWarning,
			Message: "division by zero"},
		{Line: 5, Start: 0, End: 5, Severity: protocol.DiagnosticSeverityWarning,
			Message: `unknown variable "y"`},
	}
	assert.Equal(t, want, summarize(diags))
	for _, d := range diags {
		require.NotNil(t, d.Source)
		assert.Equal(t, "pc", *d.Source)
	}
}

func TestDiagnoseJSON(t *testing.T) {
	assert.Empty(t, Diagnose("a.json", `{"a": [1, 2]}`, nil))

	diags := Diagnose("a.json", "{\n  \"a\": [1,]\n}", nil)
	require.Len(t, diags, 1)
	got := summarize(diags)[0]
	assert.Equal(t, 1, got.Line)
	assert.Equal(t, 10, got.Start)
	assert.Equal(t, protocol.DiagnosticSeverityError, got.Severity)
	assert.Contains(t, got.Message, "found ']'")
}

func TestDiagnoseGrammar(t *testing.T) {
	assert.Empty(t, Diagnose("g.ebnf", "Expr = \"x\" { \"+\" \"x\" } .\n", nil))

	diags := Diagnose("g.ebnf", "Expr = Expr \"+\" | \"x\" .\n", nil)
	require.Len(t, diags, 1)
	assert.Equal(t, diagSummary{Line: 0, Start: 0, End: 1, Severity: protocol.DiagnosticSeverityError,
		Message: "left recursion: Expr -> Expr"}, summarize(diags)[0])

	diags = Diagnose("g.ebnf", "A = B .\n", nil)
	require.Len(t, diags, 1)
	got := summarize(diags)[0]
	assert.Equal(t, 0, got.Line)
	assert.Equal(t, 4, got.Start)
	assert.Contains(t, got.Message, "missing production B")

	diags = Diagnose("g.ebnf", `A = "a"`, nil)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "parse grammar")
}

func TestDiagnoseUnknownKind(t *testing.T) {
	diags := Diagnose("README.md", "anything (", nil)
	assert.NotNil(t, diags)
	assert.Empty(t, diags)
}

func TestCompletions(t *testing.T) {
	items := Completions(calc.Variables{"x": 1, "xy": 2, "y": 3}, "x")
	require.Len(t, items, 2)
	assert.Equal(t, "x", items[0].Label)
	assert.Equal(t, "xy", items[1].Label)
	require.NotNil(t, items[0].Detail)
	assert.Equal(t, "= 1", *items[0].Detail)
	assert.Equal(t, protocol.CompletionItemKindVariable, *items[0].Kind)

	assert.Len(t, Completions(calc.Variables{"x": 1, "y": 3}, ""), 2)
}

func TestWordBefore(t *testing.T) {
	tests := []struct {
		content   string
		line, col int
		want      string
	}{
		{"a + xy", 0, 6, "xy"},
		{"foo\nab c", 1, 2, "ab"},
		{"foo\nab c", 1, 3, ""},
		{"foo", 0, 99, "foo"},
		{"foo", 3, 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wordBefore(tt.content, tt.line, tt.col), "%q at %d:%d", tt.content, tt.line, tt.col)
	}
}
