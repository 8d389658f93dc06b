package dataclass

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error codes organized by phase
// E100-E199: class definition (configuration) errors
// E200-E299: construction (call) errors
const (
	ErrConflictingDefaults  = "E101"
	ErrDefaultOrder         = "E102"
	ErrDuplicateField       = "E103"
	ErrDuplicateKWOnly      = "E104"
	ErrEmptyFieldName       = "E105"
	ErrUnknownSubsetField   = "E106"
	ErrSubsetNonInitField   = "E107"
	ErrDuplicateClass       = "E108"
	ErrUnknownBase          = "E109"
	ErrUnknownForeignType   = "E110"
	ErrIncompatibleBaseType = "E111"

	ErrTooManyPositional = "E201"
	ErrUnexpectedKeyword = "E202"
	ErrMissingArgument   = "E203"
	ErrMultipleValues    = "E204"
	ErrUnknownAttribute  = "E205"
	ErrSlotType          = "E206"
	ErrNativeInit        = "E207"
)

var (
	// ErrConfiguration matches every *ConfigurationError via errors.Is
	ErrConfiguration = errors.New("configuration error")

	// ErrType matches every *TypeError via errors.Is
	ErrType = errors.New("type error")
)

// ConfigurationError is raised while defining a class. It is fatal to
// the class definition.
type ConfigurationError struct {
	Code    string
	Class   string
	Field   string
	Message string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return formatError("ConfigurationError", e.Code, e.Class, e.Field, e.Message)
}

// Is reports whether target is ErrConfiguration
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// MarshalJSON implements json.Marshaler
func (e *ConfigurationError) MarshalJSON() ([]byte, error) {
	return marshalError("configuration", e.Code, e.Class, e.Field, e.Message)
}

// TypeError is raised when a constructor or accessor is called with
// arguments that do not fit the class. Callers may recover from it.
type TypeError struct {
	Code    string
	Class   string
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *TypeError) Error() string {
	msg := formatError("TypeError", e.Code, e.Class, e.Field, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is reports whether target is ErrType
func (e *TypeError) Is(target error) bool {
	return target == ErrType
}

// Unwrap returns the underlying cause, if any
func (e *TypeError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements json.Marshaler
func (e *TypeError) MarshalJSON() ([]byte, error) {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return marshalError("type", e.Code, e.Class, e.Field, msg)
}

func configErrorf(code, class, field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Code:    code,
		Class:   class,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func typeErrorf(code, class, field, format string, args ...any) *TypeError {
	return &TypeError{
		Code:    code,
		Class:   class,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func formatError(kind, code, class, field, message string) string {
	switch {
	case class != "" && field != "":
		return fmt.Sprintf("%s %s: %s.%s: %s", kind, code, class, field, message)
	case class != "":
		return fmt.Sprintf("%s %s: %s: %s", kind, code, class, message)
	default:
		return fmt.Sprintf("%s %s: %s", kind, code, message)
	}
}

func marshalError(kind, code, class, field, message string) ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Code    string `json:"code"`
		Class   string `json:"class,omitempty"`
		Field   string `json:"field,omitempty"`
		Message string `json:"message"`
	}{
		Kind:    kind,
		Code:    code,
		Class:   class,
		Field:   field,
		Message: message,
	})
}
