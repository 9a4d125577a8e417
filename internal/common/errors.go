package common

import (
	"errors"
	"fmt"
)

// Kind classifies a ProcessingError for the orchestrator's
// continue-with-default vs abort-to-failed decision.
type Kind string

const (
	KindMissingEntity Kind = "missing-entity" // document/settings/file record absent: fatal
	KindExtraction    Kind = "extraction"     // bad or unreadable file: recovered per file
	KindAIQuota       Kind = "ai-quota"       // AI oracle quota/rate limit: fall back
	KindAI            Kind = "ai"             // generic AI oracle failure: fall back
	KindRender        Kind = "render"         // output rendering failure: fatal
	KindStorage       Kind = "storage"        // persistence failure: fatal
)

// Common application errors.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrQuotaExhausted = errors.New("ai quota exhausted")
	ErrAIDisabled     = errors.New("ai assistant disabled")
)

// ProcessingError is an error with a stage-machine classification attached.
type ProcessingError struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *ProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

// Fatal reports whether the error must abort the whole run.
func (e *ProcessingError) Fatal() bool {
	switch e.Kind {
	case KindMissingEntity, KindRender, KindStorage:
		return true
	}
	return false
}

// E builds a ProcessingError.
func E(kind Kind, op, message string, cause error) *ProcessingError {
	return &ProcessingError{Kind: kind, Op: op, Message: message, Cause: cause}
}

// KindOf extracts the classification from err, or "" if it carries none.
func KindOf(err error) Kind {
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// IsFatal reports whether err should transition the run to failed.
// Unclassified errors are treated as fatal: only code that explicitly opts
// into recovery gets it.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Fatal()
	}
	return true
}
