package application

import "errors"

// Flow failures the handlers translate into response codes. Anything not in
// this taxonomy is an unexpected error and maps to a 500 at the boundary.
var (
	ErrEmailTaken       = errors.New("already registered")
	ErrUserNotFound     = errors.New("email is not registered")
	ErrWrongPassword    = errors.New("wrong password")
	ErrWrongAnswer      = errors.New("wrong answer")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category does not exist")
	ErrProductExists    = errors.New("product already exists")
	ErrProductNotFound  = errors.New("product does not exist")
	ErrOrderNotFound    = errors.New("order does not exist")
	ErrPaymentFailed    = errors.New("payment failed")
)

// ValidationError reports the first missing or malformed input field.
// Account flows check fields in a fixed order and stop at the first failure
// rather than aggregating.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
