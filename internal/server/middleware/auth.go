package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mytodoapp/todo/internal/auth/authctx"
	"github.com/mytodoapp/todo/internal/auth/token"
	"github.com/mytodoapp/todo/internal/domain"
	"github.com/mytodoapp/todo/internal/logger"
)

// Authenticate returns a Gin middleware that extracts a bearer token from
// the Authorization header and attaches the decoded principal to the
// request context.
//
// A missing, malformed, expired, or badly signed token never fails the
// request here: it proceeds anonymous, and the failure surfaces at the
// access-policy stage as 401/403. There is no dedicated bad-token response.
func Authenticate(codec *token.Codec) gin.HandlerFunc {
	log := logger.WithComponent("authn")
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims, err := codec.Parse(raw)
		if err != nil {
			log.Debug("Bearer token rejected, continuing anonymous", logger.Fields(
				"path", c.Request.URL.Path,
				logger.FieldError, err.Error(),
			))
			c.Next()
			return
		}

		role, err := domain.ParseRole(claims.Role)
		if err != nil {
			c.Next()
			return
		}

		principal := authctx.Principal{
			Email:  claims.Subject,
			Role:   role,
			UserID: claims.UserID,
		}
		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), principal))
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
