package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure. Unknown email and
	// wrong password both surface as this exact value.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken occurs when an email update hits the uniqueness constraint.
	ErrEmailTaken = errors.New("email already taken")
	// ErrValidation occurs when a required request field is missing or malformed.
	ErrValidation = errors.New("validation failed")
)
