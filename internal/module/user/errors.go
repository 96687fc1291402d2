package user

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateRollNo    = errors.New("roll number already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrAdminAlreadyExists = errors.New("admin already exists")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")

	// ErrDuplicateKey matches any *DuplicateKeyError.
	ErrDuplicateKey = errors.New("duplicate key")
)

// ValidationError lists every field defect found in one request, in check order.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

type Key string

const (
	KeyEmail  Key = "email"
	KeyRollNo Key = "roll_no"
	KeyAdmin  Key = "admin"
)

// DuplicateKeyError is a unique-constraint rejection raised by the store.
type DuplicateKeyError struct {
	Key Key
	Err error
}

func (e *DuplicateKeyError) Error() string {
	return "duplicate key: " + string(e.Key)
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// duplicateToDomain maps a store conflict to the error the caller would have
// seen had the pre-check caught it.
func duplicateToDomain(err error) error {
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		return err
	}
	switch dup.Key {
	case KeyEmail:
		return ErrDuplicateEmail
	case KeyRollNo:
		return ErrDuplicateRollNo
	case KeyAdmin:
		return ErrAdminAlreadyExists
	default:
		return err
	}
}
