// Package errors provides structured error types for GLFM.
//
// Two kinds of failure flow through this package:
//   - Infrastructure errors (a required source file is missing, a remote
//     endpoint is unreachable) returned as ordinary Go errors.
//   - Data-quality diagnostics (dangling fallbacks, malformed tags) that are
//     collected into a [List] and reported, never raised.
//
// Both carry a machine-readable [Code].
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSourceFileMissing, "iso 639-3 table not found: %s", path)
//	if errors.Is(err, errors.ErrCodeSourceFileMissing) {
//	    // abort the stage
//	}
//
//	d := errors.Diagnostic(errors.ErrCodeDanglingFallback, "fin", "fallback %q not in catalog", fb)
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Code represents a machine-readable error code.
type Code string

// Catalog diagnostics.
const (
	ErrCodeMissingFallback    Code = "MISSING_FALLBACK"
	ErrCodeDanglingFallback   Code = "DANGLING_FALLBACK"
	ErrCodeFallbackCycle      Code = "FALLBACK_CYCLE"
	ErrCodeInvalidBCP47       Code = "INVALID_BCP47"
	ErrCodeInvalidISOLength   Code = "INVALID_ISO_LENGTH"
	ErrCodeFamilyRoleConflict Code = "FAMILY_ROLE_CONFLICT"
	ErrCodeInvalidScript      Code = "INVALID_SCRIPT"
	ErrCodeScriptNotWritten   Code = "SCRIPT_NOT_WRITTEN"
	ErrCodeInvalidGlottolog   Code = "INVALID_GLOTTOLOG"
	ErrCodeInvalidPOSStats    Code = "INVALID_POS_STATS"
)

// Infrastructure errors.
const (
	ErrCodeSourceFileMissing   Code = "SOURCE_FILE_MISSING"
	ErrCodeRemoteLookupFailure Code = "REMOTE_LOOKUP_FAILURE"
	ErrCodeInvalidInput        Code = "INVALID_INPUT"
	ErrCodeInvalidPath         Code = "INVALID_PATH"
	ErrCodeNotFound            Code = "NOT_FOUND"
	ErrCodeNetwork             Code = "NETWORK_ERROR"
	ErrCodeInternal            Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   `json:"code"`              // Machine-readable error code
	Subject string `json:"subject,omitempty"` // Language or family code the error is about
	Message string `json:"message"`           // Human-readable message
	Cause   error  `json:"-"`                 // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	prefix := string(e.Code)
	if e.Subject != "" {
		prefix += "[" + e.Subject + "]"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Diagnostic creates an Error about a single subject code.
func Diagnostic(code Code, subject string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// List is an ordered collection of diagnostics.
type List []*Error

// Add appends a diagnostic.
func (l *List) Add(code Code, subject string, format string, args ...any) {
	*l = append(*l, Diagnostic(code, subject, format, args...))
}

// Len returns the number of diagnostics.
func (l List) Len() int { return len(l) }

// ByCode returns the diagnostics carrying code, in order.
func (l List) ByCode(code Code) List {
	var out List
	for _, e := range l {
		if e.Code == code {
			out = append(out, e)
		}
	}
	return out
}

// BySubject returns the diagnostics about subject, in order.
func (l List) BySubject(subject string) List {
	var out List
	for _, e := range l {
		if e.Subject == subject {
			out = append(out, e)
		}
	}
	return out
}

// Counts returns the number of diagnostics per code.
func (l List) Counts() map[Code]int {
	out := make(map[Code]int)
	for _, e := range l {
		out[e.Code]++
	}
	return out
}

// Subjects returns the sorted, de-duplicated subjects of the list.
func (l List) Subjects() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range l {
		if e.Subject != "" && !seen[e.Subject] {
			seen[e.Subject] = true
			out = append(out, e.Subject)
		}
	}
	sort.Strings(out)
	return out
}
