package cmd

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/smython/foundation/core/log"
	"github.com/msto63/smython/foundation/smython"
	"github.com/msto63/smython/pkg/core/config"
)

var (
	cfgFile string
	verbose bool
)

// errReported marks failures whose diagnostics were already printed
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "smython",
	Short: "Smython - parser front end for an indentation-structured language",
	Long: `smython parses Python-like source into a syntax tree.

Commands:
  parse    - print the syntax tree or canonical source of a file
  tokens   - print the token stream of a file
  check    - report syntax errors in files and directories
  watch    - re-check files as they change
  explore  - browse tree, source and tokens in the terminal
  serve    - run the WebSocket and gRPC parse service
  remote   - parse a file through a running service
  status   - check a running service`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./smython.toml or ./configs/smython.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("error:"), err)
}

// environment bundles what most commands need
type environment struct {
	cfg    *config.Config
	logger *mdwlog.Logger
	engine *smython.Engine
}

// setup loads the configuration and builds logger and engine. Logs go to
// logOutput, or stderr when nil.
func setup(cmd *cobra.Command, logOutput io.Writer) (*environment, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logOutput == nil {
		logOutput = cmd.ErrOrStderr()
	}
	logger, err := cfg.NewLogger(logOutput, verbose)
	if err != nil {
		return nil, err
	}
	if path := cfg.FilePath(); path != "" {
		logger.Debug("configuration loaded", mdwlog.Fields{"path": path})
	}
	engine, err := smython.New(smython.Options{Logger: logger, Parser: cfg.ParserOptions(logger)})
	if err != nil {
		return nil, err
	}
	return &environment{cfg: cfg, logger: logger, engine: engine}, nil
}

// readInput reads the named file, or standard input for "-" or no name
func readInput(cmd *cobra.Command, args []string) (name, source string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", errors.Wrap(err, "reading standard input")
		}
		return "<stdin>", string(data), nil
	}
	source, err = smython.ReadSource(args[0])
	return args[0], source, err
}
