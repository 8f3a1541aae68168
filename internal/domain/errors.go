package domain

import "errors"

var (
	// ErrValidation signals a malformed input document (missing id or content).
	ErrValidation = errors.New("validation failed")
	// ErrInvalidTenant signals an empty or whitespace-only tenant id.
	ErrInvalidTenant = errors.New("invalid tenant id")
	// ErrEmptyQuestion signals a blank query question.
	ErrEmptyQuestion = errors.New("question is empty")
	// ErrIndexUnavailable signals a failure from the semantic index backend.
	ErrIndexUnavailable = errors.New("index unavailable")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
