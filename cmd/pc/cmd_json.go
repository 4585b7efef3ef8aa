package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/combinator/format"
	"github.com/dhamidi/combinator/grammars/jsonvalue"
)

func newJSONCmd() *cobra.Command {
	var files []string
	var errorFormat string

	cmd := &cobra.Command{
		Use:          "json [document...]",
		Short:        "Parse JSON documents and print them compactly",
		Long:         "Parse JSON documents given as arguments, as files (--file), or on stdin.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			type doc struct{ name, text string }
			var docs []doc
			for i, arg := range args {
				docs = append(docs, doc{fmt.Sprintf("arg%d", i+1), arg})
			}
			for _, file := range files {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				docs = append(docs, doc{file, string(data)})
			}
			if len(docs) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				docs = append(docs, doc{"stdin", string(data)})
			}

			failed := 0
			for _, d := range docs {
				v, err := jsonvalue.Parse(d.text)
				if err != nil {
					failed++
					if errorFormat == "json" {
						_ = format.EncodeError(cmd.ErrOrStderr(), d.name, err)
					} else {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s:%s\n", d.name, err)
					}
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), v.Format())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed to parse", failed, len(docs))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&files, "file", nil, "read a document from this file (repeatable)")
	cmd.Flags().StringVar(&errorFormat, "errors", "text", "error output format (text, json)")

	return cmd
}
