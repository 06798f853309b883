package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dhamidi/hocon"
)

func newCheckCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse configuration files and report errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			useColor := !noColor && isatty.IsTerminal(os.Stdout.Fd())

			okMark := "OK  "
			failMark := "FAIL"
			if useColor {
				okMark = color.GreenString(okMark)
				failMark = color.RedString(failMark)
			}

			failed := 0
			for _, filename := range args {
				err := checkFile(filename)
				if err == nil {
					fmt.Printf("%s %s\n", okMark, filename)
					continue
				}
				failed++
				fmt.Printf("%s %s\n", failMark, filename)

				var parseErr *hocon.ParseError
				if errors.As(err, &parseErr) {
					fmt.Println(indent(parseErr.Detail(), "     "))
				} else {
					fmt.Println(indent(err.Error(), "     "))
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

func checkFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	_, err = hocon.Parse(string(data))
	return err
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
