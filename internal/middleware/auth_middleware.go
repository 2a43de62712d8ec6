package middleware

import (
	"errors"
	"net/http"
	"strings"

	"chatapp/internal/services"
	"chatapp/internal/transport/httpdto"
	chat_errors "chatapp/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and stores its claims in the request context.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		claims, err := tokens.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, chat_errors.ErrUnauthenticated) {
				c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(err.Error(), "UNAUTHENTICATED"))
				c.Abort()
				return
			}
			_ = c.Error(err)
			c.Status(http.StatusInternalServerError)
			c.Abort()
			return
		}

		ctx := services.WithClaims(c.Request.Context(), claims)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
