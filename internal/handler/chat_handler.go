package handler

import (
	"net/http"

	"chatapp/internal/services"
	"chatapp/internal/transport/httpdto"
	chat_errors "chatapp/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves the global message log.
type ChatHandler struct {
	service *services.MessageService
}

func NewChatHandler(service *services.MessageService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Send appends a message authored by the authenticated caller.
func (h *ChatHandler) Send(c *gin.Context) {
	identity, ok := services.IdentityFromContext(c.Request.Context())
	if !ok {
		writeError(c, chat_errors.ErrUnauthenticated)
		return
	}

	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, chat_errors.ErrMalformedRequest)
		return
	}

	if _, err := h.service.Append(c.Request.Context(), identity, req.Message); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewMessageResponse("Message sent successfully"))
}

// List returns every message, oldest first.
func (h *ChatHandler) List(c *gin.Context) {
	messages, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.ToMessageDTOs(messages))
}
