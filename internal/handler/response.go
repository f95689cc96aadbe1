package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Anoop2208prakash/LMS/internal/model"
	"github.com/Anoop2208prakash/LMS/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps an error to a flat {"message": ...} body. Anything not
// classified below is an internal failure: the detail is logged server-side
// and the caller sees only a generic message.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Server error"

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		message = apiErr.Message
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found"
	case errors.Is(err, model.ErrUserAlreadyExists):
		status = http.StatusBadRequest
		message = "Username or email already taken"
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid credentials"
	case errors.Is(err, model.ErrTokenMissing):
		status = http.StatusUnauthorized
		message = "No token provided"
	case errors.Is(err, model.ErrTokenExpired):
		status = http.StatusUnauthorized
		message = "Token expired"
	case errors.Is(err, model.ErrTokenMalformed), errors.Is(err, model.ErrTokenSignature):
		status = http.StatusUnauthorized
		message = "Invalid token"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		message = "Missing fields"
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, model.MessageResponse{Message: message})
}
