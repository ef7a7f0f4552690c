package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/geocoder89/todohub/internal/validation"
	"github.com/gin-gonic/gin"
)

const msgInvalidBody = "invalid request body"

// BindJSON decodes the body into out. It only checks JSON syntax and types;
// field rules are enforced by the services. On failure the response is
// already written and false is returned.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondStatus(ctx, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}

		RespondBadRequest(ctx, msgInvalidBody, parseBindError(err))

		return false
	}

	return true
}

func parseBindError(err error) []validation.FieldError {
	// field rules from validator tags, or a type mismatch
	if fields := validation.FromError(err); fields != nil {
		return fields
	}

	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) {
		return []validation.FieldError{{
			Field:   "body",
			Rule:    "json",
			Message: "must be valid JSON",
		}}
	}

	if errors.Is(err, io.EOF) {
		return []validation.FieldError{{
			Field:   "body",
			Rule:    "required",
			Message: "is required",
		}}
	}

	return nil
}
