// File: check.go
// Title: Concurrent Syntax Checker
// Description: Checks many source files for syntax errors in parallel,
//              skipping files whose content hash is already in the result
//              cache, and re-checks files as they change on disk.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-29
// Modified: 2025-03-31
//
// Change History:
// - 2025-03-29 v0.1.0: Initial checker
// - 2025-03-31 v0.1.0: Watch with debounce

package check

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	mdwerror "github.com/msto63/smython/foundation/core/error"
	mdwlog "github.com/msto63/smython/foundation/core/log"
	"github.com/msto63/smython/foundation/smython"
	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/internal/cache"
)

// Result is the outcome of checking one file. Err is set for malformed
// source, Fault when the file could not be checked at all.
type Result struct {
	Path   string
	Err    *parser.SyntaxError
	Fault  error
	Cached bool
}

// OK reports whether the file was checked and is well formed
func (r Result) OK() bool {
	return r.Err == nil && r.Fault == nil
}

// Options configures a Checker
type Options struct {
	Engine     *smython.Engine
	Cache      *cache.Store // optional
	Workers    int
	Extensions []string
	Debounce   time.Duration
	Logger     *mdwlog.Logger
}

// Checker checks source files for syntax errors
type Checker struct {
	engine     *smython.Engine
	cache      *cache.Store
	workers    int
	extensions []string
	debounce   time.Duration
	logger     *mdwlog.Logger
}

// New creates a checker, filling unset options with defaults
func New(opts Options) *Checker {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Engine == nil {
		opts.Engine = smython.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".py"}
	}
	return &Checker{
		engine:     opts.Engine,
		cache:      opts.Cache,
		workers:    opts.Workers,
		extensions: opts.Extensions,
		debounce:   opts.Debounce,
		logger:     opts.Logger.WithField("component", "smython-check"),
	}
}

// CheckFiles checks the given files, and every file with a known extension
// below the given directories. Results are sorted by path.
func (c *Checker) CheckFiles(ctx context.Context, paths []string) ([]Result, error) {
	files, err := c.expand(paths)
	if err != nil {
		return nil, err
	}

	timer := c.logger.StartTimer("check files").WithField("files", len(files))
	results := make([]Result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c.CheckFile(ctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		timer.StopWithError(err)
		return nil, err
	}
	timer.WithField("failed", Failed(results)).Stop()
	return results, nil
}

// CheckFile checks a single file
func (c *Checker) CheckFile(ctx context.Context, path string) Result {
	res := Result{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		res.Fault = mdwerror.Wrap(err, "cannot read source file").
			WithCode(mdwerror.CodeIO).
			WithOperation("check.CheckFile").
			WithDetail("path", path)
		return res
	}
	hash := Hash(data)

	if c.cache != nil {
		entry, ok, err := c.cache.Lookup(ctx, path, hash)
		if err != nil {
			c.logger.LogError(err)
		} else if ok {
			res.Err = entry.SyntaxError()
			res.Cached = true
			return res
		}
	}

	if _, err := c.engine.Parse(string(data)); err != nil {
		se, ok := parser.AsSyntaxError(err)
		if !ok {
			res.Fault = err
			return res
		}
		res.Err = se
	}

	if c.cache != nil {
		if err := c.cache.Record(ctx, cache.NewEntry(path, hash, res.Err)); err != nil {
			c.logger.LogError(err)
		}
	}
	return res
}

// expand resolves directories into the matching files below them
func (c *Checker) expand(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			code := mdwerror.CodeIO
			if errors.Is(err, fs.ErrNotExist) {
				code = mdwerror.CodeNotFound
			}
			return nil, mdwerror.Wrap(err, "cannot check path").
				WithCode(code).
				WithOperation("check.CheckFiles").
				WithDetail("path", root)
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(root))
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && isHidden(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if c.Matches(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, mdwerror.Wrap(err, "cannot walk directory").
				WithCode(mdwerror.CodeIO).
				WithOperation("check.CheckFiles").
				WithDetail("path", root)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// Matches reports whether path has one of the checked extensions
func (c *Checker) Matches(path string) bool {
	return slices.Contains(c.extensions, filepath.Ext(path))
}

// Watch checks files below dirs whenever they are written or created,
// waiting for the debounce interval to pass without further changes.
// It blocks until ctx is done.
func (c *Checker) Watch(ctx context.Context, dirs []string, onResult func(Result)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer w.Close()

	for _, dir := range dirs {
		if err := addTree(w, dir); err != nil {
			return mdwerror.Wrap(err, "cannot watch directory").
				WithCode(mdwerror.CodeIO).
				WithOperation("check.Watch").
				WithDetail("path", dir)
		}
	}
	c.logger.Info("Watching for changes", mdwlog.Fields{"dirs": strings.Join(dirs, ",")})

	var (
		pending = make(map[string]struct{})
		timer   *time.Timer
		fire    <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(w, event.Name); err != nil {
						c.logger.Warn("Cannot watch new directory", mdwlog.Fields{"path": event.Name, "error": err.Error()})
					}
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) || !c.Matches(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(c.debounce)
			} else {
				timer.Reset(c.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)
			for _, p := range paths {
				onResult(c.CheckFile(ctx, p))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("File watcher error", mdwlog.Fields{"error": err.Error()})
		}
	}
}

// addTree watches dir and every non-hidden directory below it
func addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// Hash returns the hex SHA-256 digest used as cache key
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Failed counts the results that are not OK
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}
