package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/combinator/ebnf/parse"
	"github.com/dhamidi/combinator/format"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfParseCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Parse and verify an EBNF grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := parse.LoadGrammar(args[0])
			if err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}

			if startProduction == "" {
				return nil
			}
			if _, err := parse.Compile(g, startProduction); err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

// parsed is the outcome of parsing one input file.
type parsed struct {
	file string
	root *parse.Node
	err  error
}

func newEbnfParseCmd() *cobra.Command {
	var startProduction string
	var outputFormat string
	var jobs int
	var noWhitespace bool

	cmd := &cobra.Command{
		Use:          "parse <grammar> <file>...",
		Short:        "Parse files with an EBNF grammar and print their syntax trees",
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if format.NewEncoder(outputFormat, out) == nil {
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			g, err := parse.LoadGrammar(args[0])
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			var opts []parse.Option
			if noWhitespace {
				opts = append(opts, parse.WithoutWhitespace())
			}
			p, err := parse.Compile(g, startProduction, opts...)
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			results, err := parseFiles(cmd, p, args[1:], jobs)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.err != nil {
					failed++
					if outputFormat == "json" {
						_ = format.EncodeError(out, r.file, r.err)
					} else {
						fmt.Fprintln(cmd.ErrOrStderr(), r.err)
					}
					continue
				}
				if err := format.NewEncoder(outputFormat, out).Encode(r.root); err != nil {
					return fmt.Errorf("encode %s: %w", r.file, err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to parse", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of files parsed concurrently")
	cmd.Flags().BoolVar(&noWhitespace, "no-whitespace", false, "do not skip whitespace between tokens")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

// parseFiles parses files concurrently and returns their results in input
// order. Syntax errors are recorded per file; only read errors abort.
func parseFiles(cmd *cobra.Command, p *parse.Parser, files []string, jobs int) ([]parsed, error) {
	results := make([]parsed, len(files))

	g, ctx := errgroup.WithContext(cmd.Context())
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			root, err := p.Parse(file, data)
			log.Debugf("parsed %s (%d bytes): ok=%t", file, len(data), err == nil)
			results[i] = parsed{file: file, root: root, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// printErrors prints one line per error when err wraps an error list, as the
// ebnf package returns.
func printErrors(w io.Writer, err error) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			return
		}
	}
	fmt.Fprintln(w, err)
}
