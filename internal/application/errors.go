package application

import (
	"errors"
	"fmt"

	"vesselx/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound        = domain.ErrNotFound
	ErrInvalidState    = domain.ErrInvalidState
	ErrOutOfRange      = domain.ErrOutOfRange
	ErrSessionNotFound = errors.New("session not found")
	ErrNotExtractable  = errors.New("tree not ready for extraction")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SessionError reports a missing or unusable session
type SessionError struct {
	SessionID string
	Reason    string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s: %s", e.SessionID, e.Reason)
}

func (e *SessionError) Is(target error) bool {
	return target == ErrSessionNotFound
}

// ExtractionError represents a tree that cannot be handed to the pipeline
type ExtractionError struct {
	SessionID string
	Strategy  string
	Reason    string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cannot extract %s with %s: %s", e.SessionID, e.Strategy, e.Reason)
}

func (e *ExtractionError) Is(target error) bool {
	return target == ErrNotExtractable
}
