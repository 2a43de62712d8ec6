package services

import (
	"errors"
	"net/http"

	chat_errors "chatapp/pkg/errors"
)

// HTTPStatus maps service errors to response codes. Unknown errors are server faults.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, chat_errors.ErrDuplicateUser),
		errors.Is(err, chat_errors.ErrEmptyMessage),
		errors.Is(err, chat_errors.ErrMessageTooLong),
		errors.Is(err, chat_errors.ErrMalformedRequest):
		return http.StatusBadRequest
	case errors.Is(err, chat_errors.ErrInvalidCredentials),
		errors.Is(err, chat_errors.ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
