package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/smython/internal/check"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-check files whenever they change",
	Long: `Watch directories recursively and check every file with a configured
extension when it is written or created. Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&checkCache, "cache", "", "result cache database (default: cache.path from the config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	checker, closeFn, err := newChecker(cmd, env, checkCache)
	if err != nil {
		return err
	}
	defer closeFn()

	if len(args) == 0 {
		args = []string{"."}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("watching %v (Ctrl+C to stop)", args)))
	return checker.Watch(ctx, args, func(r check.Result) {
		printResult(w, r)
	})
}
