package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/msto63/smython/foundation/smython/ast"
	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/foundation/smython/printer"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse a file and print its syntax tree",
	Long: `Parse a file, or standard input, and print the result.

Formats:
  dump    - compact constructor notation, e.g. Suite[Pass]
  source  - the tree printed back as canonical source

A syntax error is reported with its position and the exit status is 1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "dump", "output format (dump, source)")
}

func runParse(cmd *cobra.Command, args []string) error {
	if parseFormat != "dump" && parseFormat != "source" {
		return errors.Newf("unknown format %q (use dump or source)", parseFormat)
	}
	env, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	name, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	suite, err := env.engine.Parse(source)
	if serr, ok := parser.AsSyntaxError(err); ok {
		printSyntaxError(cmd.ErrOrStderr(), name, source, serr)
		return errReported
	} else if err != nil {
		return err
	}

	out := ast.Dump(suite) + "\n"
	if parseFormat == "source" {
		if out, err = printer.Source(suite); err != nil {
			return err
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
