package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/smython/internal/tui/explorer"
)

var exploreCmd = &cobra.Command{
	Use:     "explore <file>",
	Aliases: []string{"tui"},
	Short:   "Browse the syntax tree, source and tokens of a file",
	Long: `Start the interactive explorer for one file.

Keys:
  Tab / 1-3     switch between Tree, Source and Tokens
  Up/Down       scroll
  PgUp/PgDn     scroll by page
  g / G         jump to top / bottom
  r             reload the file
  q / Ctrl+C    quit

When the file has a syntax error the explorer opens on the Source tab
with the failing line marked.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	// log lines would corrupt the screen
	env, err := setup(cmd, io.Discard)
	if err != nil {
		return err
	}
	return explorer.Run(explorer.Config{Path: args[0], Engine: env.engine})
}
