package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameters indicates a submission missing username, score or token.
	ErrInvalidParameters = errors.New("invalid parameters")
	// ErrNoSession indicates the caller's address never requested a session.
	ErrNoSession = errors.New("no matching session")
	// ErrAuthorizationFailed indicates the presented token is not the one
	// stored for the caller's address.
	ErrAuthorizationFailed = errors.New("authorization failed")
	// ErrValidation indicates a score that is not an integer.
	ErrValidation = errors.New("invalid score")
)

// StorageError wraps a failure of a persistence backend.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// WrapStorage returns err wrapped in a *StorageError, or nil if err is nil.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorage reports whether err originated in a persistence backend.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
