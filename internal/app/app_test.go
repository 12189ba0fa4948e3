//go:build !integration

package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/welltyped-systems/binsolver-go/config"
)

func TestInitializeApp(t *testing.T) {
	tests := []struct {
		name           string
		cfg            config.Config
		apiKey         string
		expectedStatus int
	}{
		{
			name:           "open mock accepts anonymous packs",
			cfg:            config.Config{Server: config.ServerConfig{Port: "8080"}, Log: config.LogConfig{Level: "error"}},
			expectedStatus: http.StatusOK,
		},
		{
			name: "keyed mock rejects anonymous packs",
			cfg: config.Config{
				Server: config.ServerConfig{APIKeys: map[string]bool{"test-key": true}},
				Log:    config.LogConfig{Level: "error"},
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "keyed mock accepts a known key",
			cfg: config.Config{
				Server: config.ServerConfig{APIKeys: map[string]bool{"test-key": true}},
				Log:    config.LogConfig{Level: "error"},
			},
			apiKey:         "test-key",
			expectedStatus: http.StatusOK,
		},
	}

	body := `{"objective":"minBins","items":[{"id":"a","w":1,"h":1,"d":1}],"bins":[{"id":"b","w":2,"h":2,"d":2}]}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := InitializeApp(tt.cfg)

			req := httptest.NewRequest(http.MethodPost, "/v1/pack", strings.NewReader(body))
			if tt.apiKey != "" {
				req.Header.Set("x-api-key", tt.apiKey)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
