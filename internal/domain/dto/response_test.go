package dto

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	tests := []struct {
		name     string
		errCode  string
		message  string
		expected string
	}{
		{
			name:     "code and message",
			errCode:  "BIN_INVALID",
			message:  "Invalid bin",
			expected: `{"error":{"message":"Invalid bin","code":"BIN_INVALID"}}`,
		},
		{
			name:     "code omitted when empty",
			errCode:  "",
			message:  "boom",
			expected: `{"error":{"message":"boom"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(NewError(tt.errCode, tt.message))
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status       int
		expectedCode string
	}{
		{400, ErrCodeInvalidJSON},
		{401, ErrCodeUnauthorized},
		{403, ErrCodeUnauthorized},
		{404, ErrCodeNotFound},
		{422, ErrCodeValidation},
		{500, ErrCodeInternal},
		{503, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, ErrCodeFromStatus(tt.status))
		})
	}
}
