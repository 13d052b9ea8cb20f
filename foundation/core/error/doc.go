// Package error provides the coded error type of the Smython tools.
//
// Package: error
// Title: Smython Error Handling
// Description: Errors with a code, a severity, the failing operation and
//              structured details. Syntax errors of the parser travel on
//              their own diagnostic channel; this package covers everything
//              around it: configuration, I/O, the result cache and limits.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-10
// Modified: 2025-03-10
//
// Change History:
// - 2025-03-10 v0.1.0: Initial error package
//
// Usage:
//
//	import mdwerror "github.com/msto63/smython/foundation/core/error"
//
//	err := mdwerror.New("input exceeds maximum length").
//		WithCode(mdwerror.CodeInputTooLarge).
//		WithOperation("parser.Parse").
//		WithDetail("length", n)
//
//	if mdwerror.HasCode(err, mdwerror.CodeInputTooLarge) {
//		// reject the request
//	}
package error
