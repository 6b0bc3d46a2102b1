// UMBRA ⸻ internal/label/errors.go
// typed failures surfaced by the labeling pipeline

package label

import (
	"errors"
	"fmt"
)

// classifies a pipeline failure
type Kind string

const (
	KindPathMissing    Kind = "path_missing"
	KindLoadFailed     Kind = "load_failed"
	KindEncoderMissing Kind = "encoder_missing"
	KindSaveFailed     Kind = "save_failed"
)

// a pipeline failure with its classification and underlying cause
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// classification of err, or "" when err carries none
func KindOf(err error) Kind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return ""
}

func pathMissing(path string) *Error {
	return &Error{
		Kind:    KindPathMissing,
		Message: fmt.Sprintf("input path does not exist: %s", path),
	}
}

func loadFailed(path string, cause error) *Error {
	return &Error{
		Kind:    KindLoadFailed,
		Message: fmt.Sprintf("could not load %s as an image", path),
		Cause:   cause,
	}
}

func encoderMissing(mimeType string, cause error) *Error {
	return &Error{
		Kind:    KindEncoderMissing,
		Message: fmt.Sprintf("no encoder available for %s", mimeType),
		Cause:   cause,
	}
}

func saveFailed(path string, cause error) *Error {
	return &Error{
		Kind:    KindSaveFailed,
		Message: fmt.Sprintf("could not save %s", path),
		Cause:   cause,
	}
}
