package utils

import (
	"encoding/json"
	"net/http"

	"teammatch/models"
)

// WriteFormattedJSON writes indented JSON output for readability.
func WriteFormattedJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	encoder.Encode(data)
}

// WriteSuccessResponse writes a success envelope.
func WriteSuccessResponse(w http.ResponseWriter, data interface{}) {
	WriteFormattedJSON(w, models.NewSuccessResponse(data))
}

// WriteErrorResponse writes an error envelope with the canonical message for the code.
func WriteErrorResponse(w http.ResponseWriter, code int, data interface{}) {
	WriteFormattedJSON(w, models.NewErrorResponse(code, data))
}

// WriteCustomErrorResponse writes an error envelope with a custom message.
func WriteCustomErrorResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	WriteFormattedJSON(w, models.NewCustomErrorResponse(code, message, data))
}

// HandleServiceError maps a service-layer error to a response, treating
// missing rows as the supplied no-data code.
func HandleServiceError(w http.ResponseWriter, err error, noDataCode int) {
	if IsSQLNoRowsError(err) {
		WriteErrorResponse(w, noDataCode, map[string]interface{}{})
	} else {
		WriteCustomErrorResponse(w, models.CodeServerError, err.Error(), map[string]interface{}{})
	}
}

// ValidateUserID validates a user id path or body parameter.
func ValidateUserID(w http.ResponseWriter, id string) bool {
	if id == "" {
		WriteErrorResponse(w, models.CodeMissingParams, map[string]interface{}{
			"param": "id",
		})
		return false
	}
	return true
}
