// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeNotFound writes a 404 Not Found response
func writeNotFound(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusNotFound, msg)
}

// writeConflict writes a 409 Conflict response
func writeConflict(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusConflict, msg)
}

// writeBadGateway writes a 502 response for native-call failures
func writeBadGateway(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadGateway, msg)
}
