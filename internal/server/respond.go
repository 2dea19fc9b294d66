package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps a domain error to an HTTP status and writes the error body.
func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusFor(err), errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

// statusFor maps domain error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeBoardNotFound,
		errors.ErrCodeItemNotFound,
		errors.ErrCodeNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeGridOverlap:
		return http.StatusConflict
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidBoard,
		errors.ErrCodeInvalidColumns,
		errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidSize,
		errors.ErrCodeInvalidResize,
		errors.ErrCodeOutOfBounds,
		errors.ErrCodeGridBounds,
		errors.ErrCodeGridSize,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
