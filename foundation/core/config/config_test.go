// File: config_test.go
// Title: Configuration Loader Tests
// Description: Tests for loading TOML and YAML files, typed getters,
//              environment overrides, defaults, discovery and reloading.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-11
// Modified: 2025-04-03
//
// Change History:
// - 2025-03-11 v0.1.0: Initial tests
// - 2025-04-03 v0.1.0: Watch test

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/smython/foundation/core/error"
)

const sampleTOML = `
[parser]
max_input_length = 2048
tab_size = 4
validate_tree = false

[check]
extensions = [".py", ".smy"]
debounce = "150ms"
`

const sampleYAML = `
parser:
  max_input_length: 2048
  tab_size: 4
check:
  extensions: [".py"]
  debounce: 250
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOML(t *testing.T) {
	cfg, err := Load(writeFile(t, "smython.toml", sampleTOML))
	require.NoError(t, err)

	require.Equal(t, FormatTOML, cfg.Format())
	require.Equal(t, 2048, cfg.GetInt("parser.max_input_length"))
	require.Equal(t, 4, cfg.GetInt("parser.tab_size", 8))
	require.False(t, cfg.GetBool("parser.validate_tree", true))
	require.Equal(t, []string{".py", ".smy"}, cfg.GetStringSlice("check.extensions"))
	require.Equal(t, 150*time.Millisecond, cfg.GetDuration("check.debounce"))
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "smython.yaml", sampleYAML))
	require.NoError(t, err)

	require.Equal(t, FormatYAML, cfg.Format())
	require.Equal(t, 4, cfg.GetInt("parser.tab_size"))
	require.Equal(t, 250*time.Millisecond, cfg.GetDuration("check.debounce"))
	require.Equal(t, []string{".py"}, cfg.GetStringSlice("check.extensions"))
}

func TestGetterDefaults(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML, FormatTOML, "")
	require.NoError(t, err)

	require.Equal(t, 8, cfg.GetInt("parser.missing", 8))
	require.Equal(t, "text", cfg.GetString("log.format", "text"))
	require.True(t, cfg.GetBool("parser.missing", true))
	require.Equal(t, time.Second, cfg.GetDuration("server.read_timeout", time.Second))
	require.Zero(t, cfg.GetInt("parser.tab_size.deeper"))
	require.False(t, cfg.Has("server"))
	require.True(t, cfg.Has("parser.tab_size"))
}

func TestWrongTypeFallsBackToDefault(t *testing.T) {
	cfg, err := LoadFromString("[parser]\ntab_size = \"wide\"\n", FormatTOML, "")
	require.NoError(t, err)
	require.Equal(t, 8, cfg.GetInt("parser.tab_size", 8))
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("SMYTHON_PARSER_TAB_SIZE", "2")
	t.Setenv("SMYTHON_CHECK_EXTENSIONS", ".py, .pyi")
	t.Setenv("SMYTHON_LOG_LEVEL", "debug")

	cfg, err := LoadFromString(sampleTOML, FormatTOML, "smython")
	require.NoError(t, err)

	require.Equal(t, 2, cfg.GetInt("parser.tab_size"))
	require.Equal(t, []string{".py", ".pyi"}, cfg.GetStringSlice("check.extensions"))
	require.Equal(t, "debug", cfg.GetString("log.level", "info"))
	require.True(t, cfg.Has("log.level"))
}

func TestEnvKey(t *testing.T) {
	require.Equal(t, "SMYTHON_PARSER_MAX_INPUT_LENGTH", EnvKey("smython", "parser.max_input_length"))
	require.Equal(t, "CACHE_PATH", EnvKey("", "cache.path"))
}

func TestDefaultsAreMergedPerTable(t *testing.T) {
	path := writeFile(t, "smython.toml", "[parser]\ntab_size = 4\n")
	cfg, err := LoadWithOptions(path, LoadOptions{Defaults: map[string]interface{}{
		"parser": map[string]interface{}{"tab_size": 8, "validate_tree": true},
	}})
	require.NoError(t, err)

	require.Equal(t, 4, cfg.GetInt("parser.tab_size"))
	require.True(t, cfg.GetBool("parser.validate_tree"))
}

func TestSet(t *testing.T) {
	cfg := Empty("")
	cfg.Set("server.http_addr", "127.0.0.1:9000")
	require.Equal(t, "127.0.0.1:9000", cfg.GetString("server.http_addr"))

	all := cfg.GetAll()
	all["server"].(map[string]interface{})["http_addr"] = "changed"
	require.Equal(t, "127.0.0.1:9000", cfg.GetString("server.http_addr"))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	require.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))

	_, err = Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))

	_, err = Load(writeFile(t, "broken.toml", "[parser\n"))
	require.True(t, mdwerror.HasCode(err, mdwerror.CodeConfigError))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "smython.yml"), []byte(sampleYAML), 0o644))

	opts := DiscoveryOptions{
		Paths:      []string{filepath.Join(dir, "missing"), dir},
		Filenames:  []string{"smython"},
		Extensions: []string{".toml", ".yml"},
	}
	cfg, err := Discover(opts)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "smython.yml"), cfg.FilePath())

	opts.Paths = []string{filepath.Join(dir, "missing")}
	cfg, err = Discover(opts)
	require.NoError(t, err)
	require.Empty(t, cfg.FilePath())

	opts.Required = true
	_, err = Discover(opts)
	require.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))
}

func TestWatchReloads(t *testing.T) {
	path := writeFile(t, "smython.toml", "[parser]\ntab_size = 4\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reloaded := make(chan error, 8)
	done := make(chan error, 1)
	go func() {
		done <- cfg.Watch(ctx, func(_ *Config, err error) {
			select {
			case reloaded <- err:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("[parser]\ntab_size = 2\n"), 0o644)
		select {
		case err := <-reloaded:
			return err == nil && cfg.GetInt("parser.tab_size") == 2
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatchRequiresFile(t *testing.T) {
	err := Empty("").Watch(context.Background(), nil)
	require.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))
}
