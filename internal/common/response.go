package common

import (
	"encoding/json"
	"net/http"
)

// JSON writes the provided value to the response writer as JSON.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError renders the order endpoint error shape: {"error": "..."} with a non-2xx status.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// JSONFailure renders the verification endpoint error shape: {"success": false, "error": "..."}.
func JSONFailure(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{"success": false, "error": message})
}
