package errors

import "errors"

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// Absent users and wrong passwords are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email and/or password")
	// ErrEmailTaken is returned when registering an already-registered email.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidToken is returned when a federated identity token fails verification.
	ErrInvalidToken = errors.New("invalid token")
)

// ErrorResponse represents a standardized JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
