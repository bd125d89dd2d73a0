package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/imagetags/internal/common"
)

const (
	MinPasswordLength = 8
	// MaxPasswordLength counts characters. Hashers with a byte limit are
	// checked separately at registration.
	MaxPasswordLength = 72
)

// Code sentinels of registration validation. A *ValidationError matches
// exactly one of them (or common.ErrUsernameTaken) with errors.Is.
var (
	ErrMissingField       = errors.New("missing field")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrPasswordPadded     = errors.New("password padded")
	ErrPasswordNotComplex = errors.New("password not complex")

	// ErrInvalidInput and ErrFileTooLarge carry their client message in
	// ValidationError.Err.
	ErrInvalidInput = errors.New("invalid input")
	ErrFileTooLarge = errors.New("file too large")
)

// ValidationError is a client-correctable registration failure. Its Error
// text is returned to the caller verbatim.
type ValidationError struct {
	Code  error
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case ErrMissingField:
		return fmt.Sprintf("Missing '%s' in request body", e.Field)
	case ErrPasswordTooShort:
		return fmt.Sprintf("Password must be longer than %d characters.", MinPasswordLength)
	case ErrPasswordTooLong:
		return fmt.Sprintf("Password must be less than %d characters.", MaxPasswordLength)
	case ErrPasswordPadded:
		return "Password must not start or end with empty spaces."
	case ErrPasswordNotComplex:
		return "Password must contain at least one upper case letter, one lower case letter, one number, and one special character."
	case common.ErrUsernameTaken:
		return "Username already taken."
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code.Error()
}

func (e *ValidationError) Is(target error) bool {
	return e.Code == target
}

// Candidate is an unvalidated registration request.
type Candidate struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// ValidateCandidate runs the registration checks in order and returns the
// first failure as a *ValidationError, or nil.
func ValidateCandidate(c Candidate) error {
	if err := requireFields(
		"user_name", c.UserName,
		"password", c.Password,
		"full_name", c.FullName,
	); err != nil {
		return err
	}
	return ValidatePassword(c.Password)
}

// requireFields takes name/value pairs and reports the first empty value.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return &ValidationError{Code: ErrMissingField, Field: pairs[i]}
		}
	}
	return nil
}

// ValidatePassword applies the length, padding and complexity rules.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return &ValidationError{Code: ErrPasswordTooShort}
	}
	if n > MaxPasswordLength {
		return &ValidationError{Code: ErrPasswordTooLong}
	}

	if strings.HasPrefix(password, " ") || strings.HasSuffix(password, " ") {
		return &ValidationError{Code: ErrPasswordPadded}
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return &ValidationError{Code: ErrPasswordNotComplex}
	}

	return nil
}
