package httputil

import (
	"encoding/json"
	"net/http"
)

// FieldError is one entry in the validation-failure list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool         `json:"success"`
	Status  string       `json:"status,omitempty"`
	Message string       `json:"message,omitempty"`
	Count   *int         `json:"count,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// WriteJSON writes v as-is, outside the envelope (health check).
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// WriteData writes a success envelope around data.
func WriteData(w http.ResponseWriter, code int, data any) {
	WriteJSON(w, code, envelope{Success: true, Data: data})
}

// WriteList writes a success envelope with the item count alongside data.
func WriteList(w http.ResponseWriter, code int, count int, data any) {
	WriteJSON(w, code, envelope{Success: true, Count: &count, Data: data})
}

// WriteCreated writes a success envelope with a message, for 201 responses.
func WriteCreated(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

// WriteError writes a failure envelope. status is "fail" for client errors
// and "error" otherwise; empty omits the field.
func WriteError(w http.ResponseWriter, code int, status, message string) {
	WriteJSON(w, code, envelope{Success: false, Status: status, Message: message})
}

// WriteValidation writes the 400 validation-failure envelope with the
// per-field error list.
func WriteValidation(w http.ResponseWriter, errs []FieldError) {
	WriteJSON(w, http.StatusBadRequest, envelope{
		Success: false,
		Status:  "fail",
		Message: "Validation failed",
		Errors:  errs,
	})
}
