// File: config.go
// Title: Application Settings
// Description: Typed settings of the smython tools, read through the
//              generic configuration loader from TOML or YAML with
//              SMYTHON_ environment overrides and built-in defaults.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-27
// Modified: 2025-04-03
//
// Change History:
// - 2025-03-27 v0.1.0: Initial settings
// - 2025-03-28 v0.1.0: Validation and logger construction
// - 2025-04-03 v0.1.0: server.result_cache

package config

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	coreconfig "github.com/msto63/smython/foundation/core/config"
	mdwerror "github.com/msto63/smython/foundation/core/error"
	mdwlog "github.com/msto63/smython/foundation/core/log"
	"github.com/msto63/smython/foundation/smython/parser"
)

// EnvPrefix prefixes every environment override, e.g. SMYTHON_LOG_LEVEL
const EnvPrefix = "SMYTHON"

// Config holds the complete application configuration
type Config struct {
	Parser ParserConfig
	Log    LogConfig
	Check  CheckConfig
	Cache  CacheConfig
	Server ServerConfig

	source *coreconfig.Config
}

// ParserConfig holds parser limits
type ParserConfig struct {
	MaxInputLength int
	TabSize        int
	ValidateTree   bool
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string
}

// CheckConfig holds settings of the file checker
type CheckConfig struct {
	Workers    int
	Extensions []string
	Debounce   time.Duration
}

// CacheConfig holds the result cache location; empty disables caching
type CacheConfig struct {
	Path string
}

// ServerConfig holds the parse service endpoints
type ServerConfig struct {
	HTTPAddr    string
	GRPCAddr    string
	ReadTimeout time.Duration
	ResultCache int
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			MaxInputLength: parser.DefaultMaxInputLength,
			TabSize:        8,
			ValidateTree:   true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Check: CheckConfig{
			Workers:    runtime.GOMAXPROCS(0),
			Extensions: []string{".py"},
			Debounce:   300 * time.Millisecond,
		},
		Server: ServerConfig{
			HTTPAddr:    "127.0.0.1:8765",
			GRPCAddr:    "127.0.0.1:8766",
			ReadTimeout: 30 * time.Second,
			ResultCache: 1024,
		},
	}
}

// Load reads the configuration file at path. An empty path searches the
// default locations and falls back to defaults when no file exists.
func Load(path string) (*Config, error) {
	var (
		src *coreconfig.Config
		err error
	)
	if path == "" {
		src, err = coreconfig.Discover(coreconfig.DefaultDiscoveryOptions())
	} else {
		src, err = coreconfig.LoadWithOptions(path, coreconfig.LoadOptions{EnvPrefix: EnvPrefix})
	}
	if err != nil {
		return nil, err
	}
	return FromSource(src)
}

// FromSource builds the settings from a loaded configuration
func FromSource(src *coreconfig.Config) (*Config, error) {
	d := Default()
	cfg := &Config{
		Parser: ParserConfig{
			MaxInputLength: src.GetInt("parser.max_input_length", d.Parser.MaxInputLength),
			TabSize:        src.GetInt("parser.tab_size", d.Parser.TabSize),
			ValidateTree:   src.GetBool("parser.validate_tree", d.Parser.ValidateTree),
		},
		Log: LogConfig{
			Level:  src.GetString("log.level", d.Log.Level),
			Format: src.GetString("log.format", d.Log.Format),
		},
		Check: CheckConfig{
			Workers:    src.GetInt("check.workers", d.Check.Workers),
			Extensions: src.GetStringSlice("check.extensions", d.Check.Extensions),
			Debounce:   src.GetDuration("check.debounce", d.Check.Debounce),
		},
		Cache: CacheConfig{
			Path: src.GetString("cache.path", d.Cache.Path),
		},
		Server: ServerConfig{
			HTTPAddr:    src.GetString("server.http_addr", d.Server.HTTPAddr),
			GRPCAddr:    src.GetString("server.grpc_addr", d.Server.GRPCAddr),
			ReadTimeout: src.GetDuration("server.read_timeout", d.Server.ReadTimeout),
			ResultCache: src.GetInt("server.result_cache", d.Server.ResultCache),
		},
		source: src,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	var problems []string
	if c.Parser.MaxInputLength <= 0 {
		problems = append(problems, "parser.max_input_length must be positive")
	}
	if c.Parser.TabSize <= 0 {
		problems = append(problems, "parser.tab_size must be positive")
	}
	if _, err := mdwlog.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := mdwlog.ParseFormat(c.Log.Format); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Check.Workers <= 0 {
		problems = append(problems, "check.workers must be positive")
	}
	for _, ext := range c.Check.Extensions {
		if !strings.HasPrefix(ext, ".") {
			problems = append(problems, fmt.Sprintf("check.extensions entry %q must start with a dot", ext))
		}
	}
	if c.Check.Debounce < 0 {
		problems = append(problems, "check.debounce must not be negative")
	}
	if c.Server.ReadTimeout < 0 {
		problems = append(problems, "server.read_timeout must not be negative")
	}
	if c.Server.ResultCache < 0 {
		problems = append(problems, "server.result_cache must not be negative")
	}
	if len(problems) == 0 {
		return nil
	}

	err := mdwerror.New("invalid configuration: " + strings.Join(problems, "; ")).
		WithCode(mdwerror.CodeConfigError).
		WithOperation("config.Validate")
	if c.source != nil && c.source.FilePath() != "" {
		err = err.WithDetail("filePath", c.source.FilePath())
	}
	return err
}

// Source returns the underlying configuration, nil for Default
func (c *Config) Source() *coreconfig.Config {
	return c.source
}

// FilePath returns the file the settings were read from, if any
func (c *Config) FilePath() string {
	if c.source == nil {
		return ""
	}
	return c.source.FilePath()
}

// ParserOptions converts the parser settings for parser.New
func (c *Config) ParserOptions(logger *mdwlog.Logger) parser.Options {
	return parser.Options{
		Logger:         logger,
		MaxInputLength: c.Parser.MaxInputLength,
		TabSize:        c.Parser.TabSize,
		ValidateTree:   c.Parser.ValidateTree,
	}
}

// NewLogger creates a logger from the log settings. Verbose forces debug
// level.
func (c *Config) NewLogger(output io.Writer, verbose bool) (*mdwlog.Logger, error) {
	level, err := mdwlog.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	format, err := mdwlog.ParseFormat(c.Log.Format)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = mdwlog.LevelDebug
	}
	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   "smython",
	}), nil
}
