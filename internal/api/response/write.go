package response

import (
	"encoding/json"
	"net/http"
)

// JSON encodes data as the response body with the given status. Polling
// clients get a body on every successful read.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent acknowledges lifecycle commands that return no session state.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
