// File: check.go
// Title: Check Command
// Description: Reports syntax errors in files and directory trees, with an
//              optional SQLite result cache keyed by content hash.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-29
// Modified: 2025-03-30
//
// Change History:
// - 2025-03-29 v0.1.0: Initial command
// - 2025-03-30 v0.1.0: Cache pruning and the quiet flag

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/smython/foundation/core/log"
	"github.com/msto63/smython/internal/cache"
	"github.com/msto63/smython/internal/check"
)

var (
	checkCache   string
	checkPrune   time.Duration
	checkQuiet   bool
	checkWorkers int
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report syntax errors in files and directories",
	Long: `Check files for syntax errors. Directories are searched recursively for
files with a configured extension (default .py); hidden directories are
skipped. Without arguments the current directory is checked.

With --cache, results are stored in a SQLite database and files whose
content has not changed are not parsed again.

The exit status is 1 when any file fails.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkCache, "cache", "", "result cache database (default: cache.path from the config)")
	checkCmd.Flags().DurationVar(&checkPrune, "prune", 0, "drop cache entries older than this before checking")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "only print failures")
	checkCmd.Flags().IntVarP(&checkWorkers, "workers", "j", 0, "parallel parses (default: check.workers from the config)")
}

// newChecker builds a checker from the configuration and flags. The
// returned close function releases the cache.
func newChecker(cmd *cobra.Command, env *environment, cachePath string) (*check.Checker, func(), error) {
	if cachePath == "" {
		cachePath = env.cfg.Cache.Path
	}
	var store *cache.Store
	closeFn := func() {}
	if cachePath != "" {
		var err error
		if store, err = cache.Open(cachePath); err != nil {
			return nil, nil, err
		}
		closeFn = func() {
			if err := store.Close(); err != nil {
				env.logger.LogError(err)
			}
		}
		if checkPrune > 0 {
			n, err := store.Prune(cmd.Context(), checkPrune)
			if err != nil {
				closeFn()
				return nil, nil, err
			}
			env.logger.Debug("cache pruned", mdwlog.Fields{"removed": n})
		}
	}

	workers := env.cfg.Check.Workers
	if checkWorkers > 0 {
		workers = checkWorkers
	}
	checker := check.New(check.Options{
		Engine:     env.engine,
		Cache:      store,
		Workers:    workers,
		Extensions: env.cfg.Check.Extensions,
		Debounce:   env.cfg.Check.Debounce,
		Logger:     env.logger,
	})
	return checker, closeFn, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
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
	results, err := checker.CheckFiles(cmd.Context(), args)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	cached := 0
	for _, r := range results {
		if r.Cached {
			cached++
		}
		if !r.OK() || !checkQuiet {
			printResult(w, r)
		}
	}

	failed := check.Failed(results)
	summary := fmt.Sprintf("%d files checked, %d failed", len(results), failed)
	if cached > 0 {
		summary += fmt.Sprintf(" (%d from cache)", cached)
	}
	if failed > 0 {
		fmt.Fprintln(w, errorStyle.Render(summary))
		return errReported
	}
	fmt.Fprintln(w, mutedStyle.Render(summary))
	return nil
}
