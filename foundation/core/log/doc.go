// Package log provides structured logging for the Smython tools.
//
// Package: log
// Title: Smython Structured Logging
// Description: Leveled structured logging with persistent context fields,
//              request identifiers, JSON, text and console formats, and
//              timers for measuring parses and checks.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-10
// Modified: 2025-03-27
//
// Change History:
// - 2025-03-10 v0.1.0: Initial logging package
// - 2025-03-27 v0.1.0: Console format
//
// Usage:
//
//	import mdwlog "github.com/msto63/smython/foundation/core/log"
//
//	logger := mdwlog.New().
//		WithLevel(mdwlog.LevelDebug).
//		WithFormat(mdwlog.FormatText).
//		WithField("component", "smython-parser")
//
//	logger.Warn("Parse failed", mdwlog.Fields{"line": 3, "column": 7})
//
//	timer := logger.StartTimer("check")
//	// ... check a directory tree
//	timer.Stop()
package log
