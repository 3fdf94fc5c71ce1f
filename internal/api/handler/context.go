package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/metroconnect/metroconnect/internal/api/middleware"
	"github.com/metroconnect/metroconnect/internal/api/response"
)

// GetUserID retrieves the authenticated user ID from the context.
// This is a convenience wrapper around middleware.GetUserID.
func GetUserID(ctx context.Context) string {
	return middleware.GetUserID(ctx)
}

// requireUser returns the caller's user ID, or writes a 401 and returns false.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return "", false
	}
	return userID, true
}

// decodeBody decodes the JSON body into v, or writes a 400 and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := response.Decode(w, r, v); err != nil {
		if errors.Is(err, response.ErrEmptyBody) {
			response.BadRequest(w, r, "request body is required", nil)
			return false
		}
		response.BadRequest(w, r, err.Error(), nil)
		return false
	}
	return true
}

// internalError logs an unexpected error and writes a 500.
func internalError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error, msg string) {
	log.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Str("path", r.URL.Path).
		Msg(msg)
	response.InternalError(w, r, "internal server error")
}
