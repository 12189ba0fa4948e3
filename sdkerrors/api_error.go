package sdkerrors

import (
	"encoding/json"
	"net/http"
)

// RequestIDHeader is the header carrying the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// NewAPIError builds an APIError from a non-2xx response.
//
// It first tries to read a structured {"error": {"message", "code"}} body.
// When the body is not JSON, is not an object, has no object under "error",
// or carries no string message, the raw body text becomes the message.
// The code is kept only when it is a string.
func NewAPIError(status int, header http.Header, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    string(body),
	}
	if header != nil {
		apiErr.RequestID = header.Get(RequestIDHeader)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil || envelope == nil {
		return apiErr
	}

	var inner map[string]any
	raw, ok := envelope["error"]
	if !ok {
		return apiErr
	}
	if err := json.Unmarshal(raw, &inner); err != nil || inner == nil {
		return apiErr
	}

	if message, ok := inner["message"].(string); ok {
		apiErr.Message = message
	}
	if code, ok := inner["code"].(string); ok {
		apiErr.Code = code
	}
	return apiErr
}
