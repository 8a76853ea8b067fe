// Package errors defines the domain error vocabulary shared by services,
// stores, and the HTTP transport. Services return these instead of raw
// driver errors so the transport can translate them without unwrapping.
package errors

import "net/http"

// Code identifies a class of domain failure.
type Code string

const (
	// Token verification failures. Expired is distinct from Invalid so
	// operators can tell "stale QR, rescan" apart from a tampered token.
	CodeTokenExpired Code = "token_expired"
	CodeTokenInvalid Code = "token_invalid"

	// Clock-request validation failures.
	CodeOutOfRange       Code = "out_of_range"
	CodeEmployeeNotFound Code = "employee_not_found"
	CodeEmployeeInactive Code = "employee_inactive"
	CodeBeforeOpening    Code = "before_opening"
	CodeAfterGraceClose  Code = "after_grace_close"
	CodeDuplicateMark    Code = "duplicate_mark"
	CodeMissingFields    Code = "missing_fields"

	CodeNotFound Code = "not_found"
	CodeInternal Code = "internal_error"
)

// DomainError carries a machine-readable code plus a user-facing message.
type DomainError struct {
	Code    Code
	Message string
}

func (e DomainError) Error() string {
	return e.Message
}

// New builds a DomainError with the given code and message.
func New(code Code, message string) DomainError {
	return DomainError{Code: code, Message: message}
}

// CodeOf extracts the domain code from an error, defaulting to CodeInternal
// for anything that did not originate in this package.
func CodeOf(err error) Code {
	if de, ok := err.(DomainError); ok {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps domain codes onto HTTP statuses. All validation
// rejections are client errors; only storage faults surface as 500.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
