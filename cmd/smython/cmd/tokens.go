package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/smython/foundation/smython/parser"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file|-]",
	Short: "Print the token stream of a file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	name, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	toks, err := env.engine.Tokens(source)
	if serr, ok := parser.AsSyntaxError(err); ok {
		printSyntaxError(cmd.ErrOrStderr(), name, source, serr)
		return errReported
	} else if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, tok := range toks {
		fmt.Fprintf(w, "%-7s %s\n", tok.Pos, tok)
	}
	return nil
}
