// File: codes.go
// Title: Error Codes
// Description: Codes classifying the infrastructure failures of the Smython
//              tools, with the default severity and transport status of each.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-10
// Modified: 2025-04-02
//
// Change History:
// - 2025-03-10 v0.1.0: Initial code set
// - 2025-04-02 v0.1.0: HTTP status mapping for the parse service

package error

import "net/http"

// Code represents a structured error code for categorizing errors
type Code string

const (
	CodeUnknown       Code = "UNKNOWN"
	CodeInternal      Code = "INTERNAL"
	CodeSyntax        Code = "SYNTAX"
	CodeInputTooLarge Code = "INPUT_TOO_LARGE"
	CodeInvalidInput  Code = "INVALID_INPUT"
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeNotFound      Code = "NOT_FOUND"
	CodeIO            Code = "IO_ERROR"
	CodeCacheError    Code = "CACHE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeSyntax, CodeInputTooLarge, CodeInvalidInput,
		CodeConfigError, CodeNotFound, CodeIO, CodeCacheError:
		return true
	default:
		return false
	}
}

// HTTPStatus returns the status code the HTTP endpoints answer with
func (c Code) HTTPStatus() int {
	switch c {
	case CodeSyntax, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeInputTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
