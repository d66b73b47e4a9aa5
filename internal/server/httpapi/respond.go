package httpapi

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes any payload with a JSON content type. Encoding errors are
// ignored: by that point the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes the single-field error body used by every failure
// response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeValidationProblem writes field-level validation errors.
func writeValidationProblem(w http.ResponseWriter, errs map[string][]string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
}
