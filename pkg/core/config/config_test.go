package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	coreconfig "github.com/msto63/smython/foundation/core/config"
	mdwerror "github.com/msto63/smython/foundation/core/error"
	mdwlog "github.com/msto63/smython/foundation/core/log"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, 1<<20, cfg.Parser.MaxInputLength)
	require.Equal(t, 8, cfg.Parser.TabSize)
	require.True(t, cfg.Parser.ValidateTree)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, runtime.GOMAXPROCS(0), cfg.Check.Workers)
	require.Equal(t, []string{".py"}, cfg.Check.Extensions)
	require.Equal(t, 300*time.Millisecond, cfg.Check.Debounce)
	require.Empty(t, cfg.Cache.Path)
	require.Equal(t, "127.0.0.1:8765", cfg.Server.HTTPAddr)
	require.Equal(t, "127.0.0.1:8766", cfg.Server.GRPCAddr)
	require.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, 1024, cfg.Server.ResultCache)
	require.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "smython.toml", `
[parser]
tab_size = 4
validate_tree = false

[log]
level = "debug"
format = "json"

[check]
workers = 3
extensions = [".py", ".smy"]
debounce = "1s"

[cache]
path = "/tmp/results.db"

[server]
http_addr = ":9000"
read_timeout = "5s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, cfg.FilePath())
	require.Equal(t, 4, cfg.Parser.TabSize)
	require.False(t, cfg.Parser.ValidateTree)
	require.Equal(t, 1<<20, cfg.Parser.MaxInputLength)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, 3, cfg.Check.Workers)
	require.Equal(t, []string{".py", ".smy"}, cfg.Check.Extensions)
	require.Equal(t, time.Second, cfg.Check.Debounce)
	require.Equal(t, "/tmp/results.db", cfg.Cache.Path)
	require.Equal(t, ":9000", cfg.Server.HTTPAddr)
	require.Equal(t, "127.0.0.1:8766", cfg.Server.GRPCAddr)
	require.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "smython.yaml", "parser:\n  max_input_length: 4096\nlog:\n  format: console\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4096, cfg.Parser.MaxInputLength)
	require.Equal(t, "console", cfg.Log.Format)
}

func TestEnvironmentOverride(t *testing.T) {
	path := writeConfig(t, "smython.toml", "[parser]\nmax_input_length = 100\n")
	t.Setenv("SMYTHON_PARSER_MAX_INPUT_LENGTH", "200")
	t.Setenv("SMYTHON_CHECK_EXTENSIONS", ".a,.b")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 200, cfg.Parser.MaxInputLength)
	require.Equal(t, []string{".a", ".b"}, cfg.Check.Extensions)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Empty(t, cfg.FilePath())
	require.Equal(t, Default().Parser, cfg.Parser)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))

	path := writeConfig(t, "bad.toml", "[parser\n")
	_, err = Load(path)
	require.True(t, mdwerror.HasCode(err, mdwerror.CodeConfigError))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"tab size", "[parser]\ntab_size = -1\n"},
		{"level", "[log]\nlevel = \"loud\"\n"},
		{"format", "[log]\nformat = \"xml\"\n"},
		{"workers", "[check]\nworkers = 0\n"},
		{"extension", "[check]\nextensions = [\"py\"]\n"},
		{"result cache", "[server]\nresult_cache = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := coreconfig.LoadFromString(tt.content, coreconfig.FormatTOML, "")
			require.NoError(t, err)
			_, err = FromSource(src)
			require.True(t, mdwerror.HasCode(err, mdwerror.CodeConfigError), "%v", err)
		})
	}
}

func TestParserOptions(t *testing.T) {
	cfg := Default()
	cfg.Parser.TabSize = 2
	logger := mdwlog.New()

	opts := cfg.ParserOptions(logger)
	require.Same(t, logger, opts.Logger)
	require.Equal(t, 2, opts.TabSize)
	require.Equal(t, cfg.Parser.MaxInputLength, opts.MaxInputLength)
	require.True(t, opts.ValidateTree)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	var buf bytes.Buffer

	logger, err := cfg.NewLogger(&buf, false)
	require.NoError(t, err)
	require.Equal(t, mdwlog.LevelInfo, logger.GetLevel())
	logger.Debug("hidden")
	require.Empty(t, buf.String())

	logger, err = cfg.NewLogger(&buf, true)
	require.NoError(t, err)
	require.Equal(t, mdwlog.LevelDebug, logger.GetLevel())
	logger.Debug("shown")
	require.Contains(t, buf.String(), "shown")

	cfg.Log.Level = "loud"
	_, err = cfg.NewLogger(&buf, false)
	require.Error(t, err)
}
