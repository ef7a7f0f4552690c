package middlewares

import (
	"net/http"
	"strings"

	"github.com/geocoder89/todohub/internal/http/envelope"
	"github.com/gin-gonic/gin"
)

func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := c.GetHeader("Content-Type")
			// allow "application/json; charset=utf-8"
			if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
				envelope.Abort(c, http.StatusUnsupportedMediaType, "content type must be application/json")
				return
			}
		}
		c.Next()
	}
}
