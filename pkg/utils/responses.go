package utils

import (
	"encoding/json"
	"net/http"
)

// ResponseJSON writes v as JSON with the given status code.
func ResponseJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ResponseError writes the shared {success:false, message} envelope.
func ResponseError(w http.ResponseWriter, code int, message string) {
	ResponseJSON(w, code, errorBody{Success: false, Message: message})
}

// ------------- Error shorthands -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusBadRequest, message)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusForbidden, message)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusNotFound, message)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusInternalServerError, message)
}
