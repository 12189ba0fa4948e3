// Package dto defines the wire shapes shared by the client and the mock API
// that are not part of the public packing model.
package dto

import (
	"net/http"
)

const (
	// ErrCodeInvalidJSON indicates the request body could not be parsed.
	ErrCodeInvalidJSON = "INVALID_JSON"
	// ErrCodeValidation indicates the request failed model validation.
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeUnauthorized indicates a missing or unknown API key.
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeNotFound indicates an unknown route.
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeItemUnplaceable indicates an item fits none of the bins.
	ErrCodeItemUnplaceable = "ITEM_UNPLACEABLE"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorBody is the inner object of an error response.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope is the error response returned by the packing service:
//
//	{"error": {"message": "Invalid bin", "code": "BIN_INVALID"}}
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// NewError creates a new ErrorEnvelope with the given code and message.
func NewError(code, message string) ErrorEnvelope {
	return ErrorEnvelope{
		Error: ErrorBody{
			Message: message,
			Code:    code,
		},
	}
}

// ErrCodeFromStatus returns the default machine code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidJSON
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrCodeUnauthorized
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusUnprocessableEntity:
		return ErrCodeValidation
	default:
		return ErrCodeInternal
	}
}
