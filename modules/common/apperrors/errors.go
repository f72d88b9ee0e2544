package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every failure the pipeline can produce. The orchestrator
// recovers KindGeneration with a fallback artifact; KindStorage aborts the
// submission; the rest map straight to client-visible HTTP statuses.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConfiguration
	KindGeneration
	KindStorage
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfiguration:
		return "configuration"
	case KindGeneration:
		return "generation"
	case KindStorage:
		return "storage"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error carries a kind alongside the usual message/cause pair.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func Configuration(message string) error {
	return &Error{Kind: KindConfiguration, Message: message}
}

func Generationf(format string, args ...interface{}) error {
	return &Error{Kind: KindGeneration, Message: fmt.Sprintf(format, args...)}
}

func Storage(message string, err error) error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf extracts the kind from any error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus maps an error to the status the handlers answer with.
// KindConfiguration never reaches a handler directly: the orchestrator
// converts it into a fallback result like any other generation failure.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
