package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/geocoder89/todohub/internal/apperr"
	"github.com/geocoder89/todohub/internal/http/envelope"
	"github.com/geocoder89/todohub/internal/validation"
	"github.com/gin-gonic/gin"
)

func RespondOK(ctx *gin.Context, message string, data any) {
	envelope.Write(ctx, http.StatusOK, message, data, nil)
}

func RespondCreated(ctx *gin.Context, message string, data any) {
	envelope.Write(ctx, http.StatusCreated, message, data, nil)
}

// RespondError renders err. Only *apperr.Error messages reach the client;
// anything else becomes a generic 500.
func RespondError(ctx *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal("internal server error", err)
	}

	envelope.Write(ctx, appErr.Status(), appErr.Message, nil, appErr.Fields)
}

func RespondBadRequest(ctx *gin.Context, message string, fields []validation.FieldError) {
	RespondError(ctx, apperr.Validation(message, fields))
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, apperr.NotFound(message))
}

func RespondStatus(ctx *gin.Context, status int, message string) {
	envelope.Write(ctx, status, message, nil, nil)
}

// Recovery turns a panic into the standard 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, rec any) {
		RespondError(ctx, apperr.Internal("internal server error", fmt.Errorf("panic: %v", rec)))
		ctx.Abort()
	})
}
