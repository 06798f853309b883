package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/dhamidi/hocon"
	"github.com/dhamidi/hocon/format"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively parse configuration snippets",
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "hocon> ",
				HistoryFile:     filepath.Join(os.TempDir(), "hocon_history"),
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return fmt.Errorf("initialize readline: %w", err)
			}
			defer rl.Close()

			encoder := format.NewJSONEncoder(os.Stdout)

			for {
				input, err := rl.Readline()
				if err == readline.ErrInterrupt {
					if len(input) == 0 {
						break
					}
					continue
				}
				if err == io.EOF {
					break
				}
				if err != nil {
					return fmt.Errorf("read line: %w", err)
				}

				line := strings.TrimSpace(input)
				if line == "" {
					continue
				}
				if line == "exit" {
					break
				}

				tree, err := hocon.Parse(line)
				if err != nil {
					var parseErr *hocon.ParseError
					if errors.As(err, &parseErr) {
						fmt.Println(parseErr.Detail())
					} else {
						fmt.Println(err)
					}
					continue
				}
				if err := encoder.Encode(tree); err != nil {
					fmt.Println(err)
				}
			}

			return nil
		},
	}
}
