package veil

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidInput indicates missing required source text or secret.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedArtifact indicates decode could not locate the expected
	// embedded tables in the artifact text.
	ErrMalformedArtifact = errors.New("malformed artifact")

	// ErrInconsistentMapping indicates a permutation or index lookup during
	// decode had no matching entry.
	ErrInconsistentMapping = errors.New("inconsistent mapping")

	// ErrAuthMismatch indicates the supplied key's encoded form does not
	// match the key embedded in the artifact.
	ErrAuthMismatch = errors.New("key mismatch")

	// ErrMissingDecodeKey indicates rename decode was invoked without a
	// rename table.
	ErrMissingDecodeKey = errors.New("missing decode key")

	// ErrUnknownMethod indicates a method that names no registered codec.
	ErrUnknownMethod = errors.New("unknown method")
)

// ArtifactError represents a failure to parse or reconcile an artifact
// during decode. It wraps a sentinel error with context about which codec
// and which embedded section failed.
type ArtifactError struct {
	Err     error  // Underlying sentinel error (ErrMalformedArtifact, etc.)
	Method  Method // Codec that rejected the artifact
	Section string // Embedded section involved (payload, map, key, table)
}

func (e *ArtifactError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Method, e.Err.Error(), e.Section)
	}
	return fmt.Sprintf("%s: %s", e.Method, e.Err.Error())
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// TransformError represents a failure during encode input validation or
// field transformation.
type TransformError struct {
	Err    error  // Underlying sentinel error (ErrInvalidInput, etc.)
	Method Method // Codec that failed
	Detail string // What was missing or invalid
}

func (e *TransformError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Method, e.Err.Error(), e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Method, e.Err.Error())
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// newArtifactError creates an ArtifactError for decode failures.
func newArtifactError(sentinel error, method Method, section string) error {
	return &ArtifactError{
		Err:     sentinel,
		Method:  method,
		Section: section,
	}
}

// newTransformError creates a TransformError for encode failures.
func newTransformError(sentinel error, method Method, detail string) error {
	return &TransformError{
		Err:    sentinel,
		Method: method,
		Detail: detail,
	}
}
