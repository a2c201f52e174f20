package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/helpdesk/internal/clients/gemini"
	"github.com/samandr77/microservices/helpdesk/internal/entity"
	"github.com/samandr77/microservices/helpdesk/pkg/config"
)

func newClient(t *testing.T, handler http.HandlerFunc, apiKey string) *gemini.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return gemini.NewClient(config.Gemini{
		APIKey:  apiKey,
		BaseURL: srv.URL,
		Model:   "gemini-1.5-flash",
		Timeout: 5 * time.Second,
	})
}

func TestClient_Generate(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		contents := body["contents"].([]any)
		parts := contents[0].(map[string]any)["parts"].([]any)
		assert.Equal(t, "¿Qué es RAM?", parts[0].(map[string]any)["text"])
		assert.Len(t, body["safetySettings"], 4)

		genCfg := body["generationConfig"].(map[string]any)
		assert.InDelta(t, 0.7, genCfg["temperature"], 0.0001)
		assert.InDelta(t, 2048, genCfg["maxOutputTokens"], 0.0001)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Memoria de acceso aleatorio."}]}}]}`))
	}, "secret")

	answer, err := client.Generate(context.Background(), "¿Qué es RAM?")
	require.NoError(t, err)
	assert.Equal(t, "Memoria de acceso aleatorio.", answer)
}

func TestClient_Generate_NoCandidates(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}, "secret")

	answer, err := client.Generate(context.Background(), "hola")
	require.NoError(t, err)
	assert.Empty(t, answer)
}

func TestClient_Generate_MissingKey(t *testing.T) {
	called := false
	client := newClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}, "")

	_, err := client.Generate(context.Background(), "hola")

	var assistantErr *entity.AssistantError
	require.True(t, errors.As(err, &assistantErr))
	assert.Equal(t, entity.ChatErrAPIKeyMissing, assistantErr.Code)
	assert.False(t, called)
}

func TestClient_Generate_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   entity.ChatErrorCode
	}{
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			body:   `{"error":{"code":400,"message":"invalid"}}`,
			want:   entity.ChatErrBadRequest,
		},
		{
			name:   "service disabled",
			status: http.StatusForbidden,
			body:   `{"error":{"code":403,"message":"disabled","details":[{"reason":"SERVICE_DISABLED"}]}}`,
			want:   entity.ChatErrServiceDisabled,
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			body:   `{"error":{"code":403,"message":"denied"}}`,
			want:   entity.ChatErrConfigurationNeeded,
		},
		{
			name:   "rate limit",
			status: http.StatusTooManyRequests,
			body:   `{}`,
			want:   entity.ChatErrRateLimit,
		},
		{
			name:   "overloaded",
			status: http.StatusServiceUnavailable,
			body:   `not json`,
			want:   entity.ChatErrModelOverloaded,
		},
		{
			name:   "other",
			status: http.StatusInternalServerError,
			body:   ``,
			want:   entity.ChatErrAPI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, "secret")

			_, err := client.Generate(context.Background(), "hola")

			var assistantErr *entity.AssistantError
			require.True(t, errors.As(err, &assistantErr))
			assert.Equal(t, tt.want, assistantErr.Code)
			assert.Equal(t, tt.status, assistantErr.StatusCode)
		})
	}
}
