package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/hocon/workspace"
)

func newLSPCmd() *cobra.Command {
	var verbosity int
	var watch bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)

			var opts []workspace.ServerOption
			if watch {
				opts = append(opts, workspace.WithFileWatcher())
			}

			server := workspace.NewLSPServer("0.1.0", opts...)
			return server.RunStdio()
		},
	}

	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 1, "logging verbosity")
	cmd.Flags().BoolVar(&watch, "watch", false, "poll the workspace for configuration files changing on disk")

	return cmd
}
