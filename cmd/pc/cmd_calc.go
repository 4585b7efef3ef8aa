package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/combinator/format"
	"github.com/dhamidi/combinator/grammars/calc"
)

func newCalcCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "calc [expr...]",
		Short: "Parse and evaluate arithmetic expressions",
		Long: "Parse and evaluate arithmetic expressions over the configured variables.\n" +
			"Without arguments, expressions are read from stdin one per line until a blank line.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := loadVariables()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			jsonOut := outputFormat == "json"
			if outputFormat != "text" && !jsonOut {
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if len(args) == 0 {
				printVariables(out, vars)
				return calcLoop(cmd.InOrStdin(), out, vars, jsonOut)
			}

			failed := 0
			for _, input := range args {
				if err := calcOne(out, input, vars, jsonOut); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d expressions failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")

	return cmd
}

func printVariables(w io.Writer, vars calc.Variables) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Variables:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s = %d\n", name, vars[name])
	}
}

// calcLoop evaluates one expression per line until a blank line or EOF.
// Failures are printed and do not stop the loop.
func calcLoop(r io.Reader, w io.Writer, vars calc.Variables, jsonOut bool) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		if err := calcOne(w, line, vars, jsonOut); err != nil {
			fmt.Fprintln(w, err)
		}
	}
	return scanner.Err()
}

func calcOne(w io.Writer, input string, vars calc.Variables, jsonOut bool) error {
	expr, err := calc.Parse(input)
	if err != nil {
		return err
	}
	log.Debugf("parsed %q as %s", input, expr)

	if jsonOut {
		return format.NewExprJSONEncoder(w).Encode(expr)
	}

	v, err := expr.Eval(vars)
	if err != nil {
		return fmt.Errorf("eval %s: %w", input, err)
	}
	fmt.Fprintf(w, "Parsed: %s\n", input)
	fmt.Fprintf(w, "  as  : %s\n", expr)
	fmt.Fprintf(w, "  eval: %d\n", v)
	return nil
}
