package handler

import (
	"errors"
	"net/http"

	"chatapp/internal/services"
	"chatapp/internal/transport/httpdto"
	chat_errors "chatapp/pkg/errors"

	"github.com/gin-gonic/gin"
)

// writeError answers client errors directly. Server faults are queued for
// middleware.ErrorHandler, which logs them and sends a generic body.
func writeError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		c.Status(status)
		c.Abort()
		return
	}
	c.JSON(status, httpdto.NewErrorResponse(err.Error(), errorCode(err)))
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, chat_errors.ErrDuplicateUser):
		return "DUPLICATE_USER"
	case errors.Is(err, chat_errors.ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, chat_errors.ErrUnauthenticated):
		return "UNAUTHENTICATED"
	case errors.Is(err, chat_errors.ErrEmptyMessage):
		return "EMPTY_MESSAGE"
	case errors.Is(err, chat_errors.ErrMessageTooLong):
		return "MESSAGE_TOO_LONG"
	case errors.Is(err, chat_errors.ErrMalformedRequest):
		return "MALFORMED_REQUEST"
	default:
		return "INTERNAL_ERROR"
	}
}
