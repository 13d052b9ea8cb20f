// File: discovery.go
// Title: Configuration Discovery
// Description: Locates a configuration file by searching a list of
//              directories for known base names and extensions.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-11
// Modified: 2025-03-11
//
// Change History:
// - 2025-03-11 v0.1.0: Initial discovery

package config

import (
	"os"
	"path/filepath"
	"strings"

	mdwerror "github.com/msto63/smython/foundation/core/error"
)

// DiscoveryOptions defines where Discover looks for a configuration file
type DiscoveryOptions struct {
	Paths      []string
	Filenames  []string
	Extensions []string
	EnvPrefix  string
	Defaults   map[string]interface{}
	// Required makes a missing file an error instead of an empty config
	Required bool
}

// DefaultDiscoveryOptions searches the working directory, ./configs and
// the user configuration directory for smython.{toml,yaml,yml}
func DefaultDiscoveryOptions() DiscoveryOptions {
	paths := []string{".", "configs"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "smython"))
	}
	return DiscoveryOptions{
		Paths:      paths,
		Filenames:  []string{"smython"},
		Extensions: []string{".toml", ".yaml", ".yml"},
		EnvPrefix:  "SMYTHON",
	}
}

// ListPossibleConfigFiles returns the candidate paths in search order
func ListPossibleConfigFiles(options DiscoveryOptions) []string {
	var candidates []string
	for _, dir := range options.Paths {
		for _, name := range options.Filenames {
			for _, ext := range options.Extensions {
				candidates = append(candidates, filepath.Join(dir, name+ext))
			}
		}
	}
	return candidates
}

// FindConfigFile returns the first existing candidate
func FindConfigFile(options DiscoveryOptions) (string, error) {
	candidates := ListPossibleConfigFiles(options)
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", mdwerror.New("no configuration file found in: "+strings.Join(candidates, ", ")).
		WithCode(mdwerror.CodeNotFound).
		WithOperation("config.FindConfigFile").
		WithDetail("searchPaths", candidates)
}

// Discover loads the first configuration file found. When none exists and
// the file is not required, it returns an empty configuration that still
// honours environment overrides and defaults.
func Discover(options DiscoveryOptions) (*Config, error) {
	path, err := FindConfigFile(options)
	if err != nil {
		if options.Required {
			return nil, err
		}
		cfg := Empty(options.EnvPrefix)
		cfg.data = mergeDefaults(cfg.data, options.Defaults)
		return cfg, nil
	}
	return LoadWithOptions(path, LoadOptions{EnvPrefix: options.EnvPrefix, Defaults: options.Defaults})
}
