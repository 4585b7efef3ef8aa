package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/combinator/lsp"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := loadVariables()
			if err != nil {
				return err
			}
			server := lsp.NewLSPServer(version, vars)
			return server.RunStdio()
		},
	}
}
