package chat_errors

import "errors"

// Client-facing errors. Their text is returned in response bodies.
var (
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrEmptyMessage       = errors.New("message cannot be empty")
	ErrMessageTooLong     = errors.New("message exceeds 500 characters")
	ErrMalformedRequest   = errors.New("invalid request")
)

// Storage errors. Never returned to clients verbatim.
var (
	ErrNotFound = errors.New("not found")
)
