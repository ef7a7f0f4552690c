package middlewares

import (
	"net/http"
	"strings"

	"github.com/geocoder89/todohub/internal/actorctx"
	"github.com/geocoder89/todohub/internal/http/envelope"
	"github.com/gin-gonic/gin"
)

const (
	msgMissingAuthHeader = "missing or invalid authorization header"
	msgInvalidToken      = "invalid token"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			envelope.Abort(c, http.StatusUnauthorized, msgMissingAuthHeader)
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if raw == "" {
			envelope.Abort(c, http.StatusUnauthorized, msgMissingAuthHeader)
			return
		}

		subject, err := m.jwt.Verify(raw)
		if err != nil {
			envelope.Abort(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		c.Set(CtxUserID, subject)
		c.Request = c.Request.WithContext(actorctx.WithUserID(c.Request.Context(), subject))

		c.Next()
	}
}

// UserIDFromContext returns the subject stored by RequireAuth.
func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
