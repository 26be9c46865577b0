package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to exactly one of them so
// callers can classify failures with errors.Is.
var (
	ErrObjectNotFound        = errors.New("object not found")
	ErrDuplicateKey          = errors.New("duplicate key")
	ErrInfrastructureFailure = errors.New("infrastructure failure")
	ErrValueIsInvalid        = errors.New("value is invalid")
	ErrValueIsOutOfRange     = errors.New("value is out of range")
	ErrValueIsRequired       = errors.New("value is required")
)

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// ObjectNotFoundError reports a lookup of an entity that does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s %v", ErrObjectNotFound, e.ParamName, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// DuplicateKeyError reports an insert that collided with an existing identity.
type DuplicateKeyError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewDuplicateKeyError(paramName string, id any) *DuplicateKeyError {
	return &DuplicateKeyError{ParamName: paramName, ID: id}
}

func NewDuplicateKeyErrorWithCause(paramName string, id any, cause error) *DuplicateKeyError {
	return &DuplicateKeyError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *DuplicateKeyError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %v already exists", ErrDuplicateKey, e.ParamName, e.ID), e.Cause)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// InfrastructureFailureError wraps storage or transport faults. Operation
// names the step that failed, Cause keeps the original error for logging.
type InfrastructureFailureError struct {
	Operation string
	Cause     error
}

func NewInfrastructureFailureError(operation string, cause error) *InfrastructureFailureError {
	return &InfrastructureFailureError{Operation: operation, Cause: cause}
}

func (e *InfrastructureFailureError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrInfrastructureFailure, e.Operation), e.Cause)
}

// Unwrap exposes both the sentinel and the cause, so errors.Is matches
// ErrInfrastructureFailure as well as driver level errors such as
// context.Canceled.
func (e *InfrastructureFailureError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInfrastructureFailure}
	}
	return []error{ErrInfrastructureFailure, e.Cause}
}

// ValueIsInvalidError reports a value that failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}
