package domain

import "errors"

// Error kinds. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("authentication required")
	ErrAuthorization  = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrRateLimited    = errors.New("too many requests")
)

// Error carries a client-facing message together with its kind.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func Validation(msg string) error     { return &Error{kind: ErrValidation, msg: msg} }
func Authentication(msg string) error { return &Error{kind: ErrAuthentication, msg: msg} }
func Authorization(msg string) error  { return &Error{kind: ErrAuthorization, msg: msg} }
func NotFound(msg string) error       { return &Error{kind: ErrNotFound, msg: msg} }
func Conflict(msg string) error       { return &Error{kind: ErrConflict, msg: msg} }
func RateLimited(msg string) error    { return &Error{kind: ErrRateLimited, msg: msg} }

// Message returns the client-facing text of err, or fallback for errors
// that do not carry one.
func Message(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) {
		return de.msg
	}
	return fallback
}
