package domain

import "errors"

var (
	ErrPrimaryGemExists        = errors.New("primary_gem_exists")
	ErrPrimaryGemCategory      = errors.New("primary_gem_category_conflict")
	ErrGemNotFound             = errors.New("gem_not_found")
	ErrUnknownGemCategory      = errors.New("unknown_gem_category")
	ErrUnknownGemRole          = errors.New("unknown_gem_role")
	ErrEmptySession            = errors.New("empty_session")
	ErrInvalidMetalType        = errors.New("invalid_metal_type")
	ErrInvalidPurity           = errors.New("invalid_purity")
	ErrInvalidPrincipal        = errors.New("invalid_principal")
	ErrInvalidTicketTransition = errors.New("invalid_ticket_transition")
	ErrInsufficientPayment     = errors.New("insufficient_payment")
	ErrTicketExpired           = errors.New("ticket_expired")
	ErrTicketNotExpired        = errors.New("ticket_not_expired")
	ErrInvalidTicketTemplate   = errors.New("invalid_ticket_template")
)

// ValidationError is a user-facing rejection. It leaves the caller's state untouched
// and matches its sentinel through errors.Is.
type ValidationError struct {
	Err     error
	Message string
}

func NewValidationError(err error, message string) *ValidationError {
	return &ValidationError{Err: err, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
