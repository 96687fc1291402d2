package middleware

import (
	"strings"

	"techfest-backend/internal/global/jwt"
	"techfest-backend/internal/global/response"

	"github.com/gin-gonic/gin"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	ParseToken(token string) (*jwt.Claims, bool)
}

// Auth rejects requests without a valid bearer token and stores the claims
// under jwt.PayloadKey. Every rejection looks the same to the client.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		payload, valid := parser.ParseToken(token)
		if !valid {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}
		c.Set(jwt.PayloadKey, payload)
		c.Next()
	}
}
