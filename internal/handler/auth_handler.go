// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"fmt"
	"net/http"

	"chatapp/internal/services"
	"chatapp/internal/transport/httpdto"
	chat_errors "chatapp/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP endpoints.
type AuthHandler struct {
	service *services.AuthService
	tokens  *services.TokenService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens}
}

// Signup handles user registration.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req httpdto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, chat_errors.ErrMalformedRequest)
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewMessageResponse("User registered successfully"))
}

// Login exchanges credentials for an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, chat_errors.ErrMalformedRequest)
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.LoginResponse{AccessToken: token})
}

// Protected greets the caller identified by the bearer token.
func (h *AuthHandler) Protected(c *gin.Context) {
	identity, ok := services.IdentityFromContext(c.Request.Context())
	if !ok {
		writeError(c, chat_errors.ErrUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewMessageResponse(fmt.Sprintf("Hello %s, access granted", identity)))
}

// Logout revokes the bearer token used for this request.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := services.ClaimsFromContext(c.Request.Context())
	if !ok {
		writeError(c, chat_errors.ErrUnauthenticated)
		return
	}

	if err := h.tokens.Revoke(c.Request.Context(), claims); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewMessageResponse("Logged out successfully"))
}
