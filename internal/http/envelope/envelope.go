// Package envelope renders the {message, statusCode, data?, errors?, requestId?}
// body shared by every HTTP response, from handlers and middlewares alike.
package envelope

import (
	"github.com/geocoder89/todohub/internal/validation"
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-Id"

type Envelope struct {
	Message    string                  `json:"message"`
	StatusCode int                     `json:"statusCode"`
	Data       any                     `json:"data,omitempty"`
	Errors     []validation.FieldError `json:"errors,omitempty"`
	RequestID  string                  `json:"requestId,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if id := ctx.GetString(RequestIDKey); id != "" {
		return id
	}

	// fallback header
	return ctx.GetHeader(RequestIDHeader)
}

func New(ctx *gin.Context, status int, message string, data any, fields []validation.FieldError) Envelope {
	return Envelope{
		Message:    message,
		StatusCode: status,
		Data:       data,
		Errors:     fields,
		RequestID:  requestIDFrom(ctx),
	}
}

func Write(ctx *gin.Context, status int, message string, data any, fields []validation.FieldError) {
	ctx.JSON(status, New(ctx, status, message, data, fields))
}

// Abort writes the envelope and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, New(ctx, status, message, nil, nil))
}
