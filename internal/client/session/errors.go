package session

import "fmt"

// User-facing messages. They never say which field was wrong.
const (
	LoginFailedMessage  = "Login failed. Please check your credentials."
	SignupFailedMessage = "Signup failed. Please try again."
)

// AuthError reports a failed login or signup. Error returns the generic
// user-facing message; the cause is kept for logs and errors.Is.
type AuthError struct {
	Op      string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// StorageParseError reports a persisted user record that could not be
// decoded. It never leaves the store: the record is dropped instead.
type StorageParseError struct {
	Key string
	Err error
}

func (e *StorageParseError) Error() string {
	return fmt.Sprintf("malformed record in storage[%s]: %v", e.Key, e.Err)
}

func (e *StorageParseError) Unwrap() error {
	return e.Err
}
