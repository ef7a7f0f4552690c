package middlewares

import "github.com/geocoder89/todohub/internal/http/envelope"

// gin context keys shared by the middlewares and handlers.
const (
	CtxRequestID = envelope.RequestIDKey
	CtxUserID    = "auth.userID"
)
