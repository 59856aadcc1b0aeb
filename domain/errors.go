package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the transport layer can map them to
// status codes without inspecting messages.
type ErrorKind string

const (
	ErrorKindConfiguration ErrorKind = "configuration"
	ErrorKindNotFound      ErrorKind = "not_found"
	ErrorKindInvalidImage  ErrorKind = "invalid_image"
	ErrorKindProcessing    ErrorKind = "processing"
)

// Error is the failure type surfaced by the registry and the chat pipeline.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewConfigurationError reports missing or invalid credentials.
func NewConfigurationError(message string) *Error {
	return &Error{Kind: ErrorKindConfiguration, Message: message}
}

// NewNotFoundError reports an unknown session id.
func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrorKindNotFound, Message: message}
}

// NewInvalidImageError reports an undecodable or non-image payload.
func NewInvalidImageError(message string, err error) *Error {
	return &Error{Kind: ErrorKindInvalidImage, Message: message, Err: err}
}

// NewProcessingError reports a failure inside the pipeline or a
// collaborator call.
func NewProcessingError(message string, err error) *Error {
	return &Error{Kind: ErrorKindProcessing, Message: message, Err: err}
}

// KindOf returns the error's kind, defaulting to processing for errors
// produced outside the taxonomy.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrorKindProcessing
}

// IsNotFound reports whether err means an unknown session.
func IsNotFound(err error) bool {
	return KindOf(err) == ErrorKindNotFound
}
