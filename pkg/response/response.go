// Package response writes the API's JSON bodies.
//
// Every error body is {"message": ...}; success bodies carry the message
// plus the created or fetched resource under its own key, matching the
// public contract (register → "newUser", create-product → "product", ...).
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with the given status code. Used directly by endpoints
// whose contract is a bare resource (e.g. the product list array).
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Message writes {"message": msg} with the given status.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Messages writes {"message": [msgs...]}. The registration validator
// reports all missing-field errors at once in this shape.
func Messages(w http.ResponseWriter, status int, msgs []string) {
	JSON(w, status, map[string][]string{"message": msgs})
}

// WithData writes {"message": msg, <key>: data}.
func WithData(w http.ResponseWriter, status int, msg, key string, data interface{}) {
	JSON(w, status, map[string]interface{}{
		"message": msg,
		key:       data,
	})
}

// ValidationError writes a 400 with the field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusBadRequest, map[string]interface{}{
		"message": "Validation failed",
		"errors":  errs,
	})
}

// Internal writes a 500 surfacing the raw error message. Acceptable for an
// internal system; a hardened public API would redact this.
func Internal(w http.ResponseWriter, err error) {
	Message(w, http.StatusInternalServerError, err.Error())
}
