// Package common defines sentinel errors shared by the repository, service
// and transport layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already taken")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Token guard errors. Their text is part of the HTTP contract.
	ErrMissingBearerToken  = errors.New("Missing bearer token")
	ErrUnauthorizedRequest = errors.New("Unauthorized request")

	// Sign-in errors.
	ErrInvalidCredentials = errors.New("Incorrect user_name or password")

	// Image-specific errors.
	ErrImageNotFound = errors.New("Image not found")
)

// ErrInvalidToken wraps every token verification failure: bad signature,
// unexpected algorithm, malformed or expired token, missing subject.
var ErrInvalidToken = errors.New("invalid token")
