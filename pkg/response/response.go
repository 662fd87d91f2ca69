// Package response writes JSON API responses.
//
// Success bodies are the bare resource; error bodies are {"msg": "..."}
// with an optional "errors" map for field validation.
package response

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Msg    string            `json:"msg"`
	Errors map[string]string `json:"errors,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success sends 200 with v.
func Success(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Created sends 201 with v.
func Created(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusCreated, v)
}

// NoContent sends 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error sends {"msg": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Msg: message})
}

// ValidationError sends 422 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, errorBody{Msg: "Validation failed", Errors: errs})
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Access denied")
}

func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

func ServerError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Server error")
}
