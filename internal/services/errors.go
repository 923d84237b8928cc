package services

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	ErrQuotaExceeded      = errors.New("maximum pending submissions reached, wait for verification before submitting more")
	ErrGlobalCapReached   = errors.New("submission queue is full, try again later")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyDecided     = errors.New("submission already decided with a different outcome")
	ErrAdminRequired      = errors.New("admin access required")
)

// ValidationError marks input rejected before any storage mutation. Handlers
// map it to 422.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(msg string) error {
	return &ValidationError{Message: msg}
}
