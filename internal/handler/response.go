package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"va-backend/pkg/errors"
)

// envelope is the uniform success response shape
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	respondJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// respondError maps an error to the JSON error envelope. Unknown errors
// become a generic internal error; the detail stays in the logs.
func respondError(w http.ResponseWriter, err error) {
	appErr := &errors.AppError{}
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternalError("Internal server error", err)
	}

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	respondJSON(w, appErr.StatusCode, response)
}
