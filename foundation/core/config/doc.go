// File: doc.go
// Title: Configuration Package Documentation
// Description: Package documentation for the generic configuration loader.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-11
// Modified: 2025-04-03
//
// Change History:
// - 2025-03-11 v0.1.0: Initial documentation
// - 2025-04-03 v0.1.0: Watching

/*
Package config loads TOML and YAML configuration files and exposes their
values through typed getters addressed by dotted keys.

	cfg, err := config.LoadWithOptions("smython.toml", config.LoadOptions{EnvPrefix: "SMYTHON"})
	if err != nil {
		return err
	}
	tab := cfg.GetInt("parser.tab_size", 8)

With an environment prefix, a variable named after the key overrides the
file: SMYTHON_PARSER_TAB_SIZE=4 wins over parser.tab_size in the file.
Getters return their default when a key is missing or holds a value of the
wrong type.

Discover searches a list of directories for the first configuration file;
Watch reloads a file-backed configuration whenever the file changes.
*/
package config
