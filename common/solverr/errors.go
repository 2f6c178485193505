// Package solverr defines the typed error taxonomy of the scheduler (spec
// §7): recoverable infeasibility errors the orchestrator consumes, solver
// errors eligible for a single retry, and fatal invariant violations. It is
// shaped after the reference API gateway's pkg/errors package, with the
// HTTP-status coupling removed since this is a library, not a service.
package solverr

import (
	"errors"
	"fmt"
)

// Code classifies an Error for programmatic handling (errors.As + Code
// switch), independent of its human-readable Message.
type Code string

const (
	CodeInputInvalid         Code = "INPUT_INVALID"
	CodeCapacityUnreachable  Code = "CAPACITY_UNREACHABLE"
	CodeMandatoryUnassignable Code = "MANDATORY_UNASSIGNABLE"
	CodeRoundingInfeasible   Code = "ROUNDING_INFEASIBLE"
	CodeSolveFailed          Code = "SOLVE_FAILED"
	CodeAllAttemptsFailed    Code = "ALL_ATTEMPTS_FAILED"
	CodeFatal                Code = "FATAL"
)

// Error is a typed domain error carrying a Code and, for the errors that
// name one, the offending day or patient index.
type Error struct {
	Code    Code
	Message string
	Day     int
	Patient int
	HasDay  bool
	HasPatient bool
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New builds an Error with no wrapped cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a formatted Error.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a Code and Message to an existing cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CapacityUnreachable reports that stage 1's DynamicByDay strategy could not
// bring day d's demand under capacity after bumping every movable patient.
func CapacityUnreachable(day int) *Error {
	return &Error{Code: CodeCapacityUnreachable, Message: fmt.Sprintf("capacity unreachable on day %d", day), Day: day, HasDay: true}
}

// MandatoryUnassignable reports that a mandatory patient could not be placed
// during rounding or recursion; this is a recoverable error for the caller
// but never a valid terminal outcome for a mandatory patient.
func MandatoryUnassignable(patientIdx int) *Error {
	return &Error{Code: CodeMandatoryUnassignable, Message: fmt.Sprintf("mandatory patient %d unassignable", patientIdx), Patient: patientIdx, HasPatient: true}
}

// RoundingInfeasible reports that the theater-day LP's rounded solution
// still violates a theater's capacity.
func RoundingInfeasible(day int) *Error {
	return &Error{Code: CodeRoundingInfeasible, Message: fmt.Sprintf("theater rounding infeasible on day %d", day), Day: day, HasDay: true}
}

// SolveFailed wraps an LP adapter failure (Infeasible/Unbounded/NumericError).
func SolveFailed(cause error, context string) *Error {
	return &Error{Code: CodeSolveFailed, Message: "LP solve failed: " + context, Err: cause}
}

// AllAttemptsFailed reports DynamicByDay exhausting its bump attempts for a
// day without reaching capacity on the next day either.
func AllAttemptsFailed(day int) *Error {
	return &Error{Code: CodeAllAttemptsFailed, Message: fmt.Sprintf("all bump attempts failed for day %d", day), Day: day, HasDay: true}
}

// Fatal wraps an unrecoverable bump-orchestrator escalation.
func Fatal(day int, cause error) *Error {
	return &Error{Code: CodeFatal, Message: fmt.Sprintf("fatal: unresolved infeasibility on day %d", day), Day: day, HasDay: true, Err: cause}
}

// InvariantViolation panics with a *Error of Code CodeFatal — invariant
// breaches (I1–I5) are programmer errors, not data errors, and are never
// meant to be recovered by the orchestrator.
func InvariantViolation(invariant, detail string) {
	panic(&Error{Code: CodeFatal, Message: fmt.Sprintf("invariant %s violated: %s", invariant, detail)})
}

// Is reports whether err is a *Error with the given Code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
