package handler

import (
	"encoding/json"
	"net/http"

	"github.com/3dimaging/personal-website-analytics/model"
	"github.com/rs/zerolog/log"
)

// SendJSONError sends the error wire shape. The underlying error text is
// exposed in the message field, which existing clients rely on.
func SendJSONError(w http.ResponseWriter, statusCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := model.StatusResponse{
		Status:  "error",
		Message: err.Error(),
	}

	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		log.Error().Err(encodeErr).Msg("Failed to encode error response")
	}
}

// SendJSONSuccess sends a JSON success response
func SendJSONSuccess(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode success response")
	}
}
