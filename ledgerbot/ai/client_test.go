package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guildforge/ledgerbot/ledgerbot/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	_, err := ai.NewOpenAIClient(ai.ClientConfig{APIKey: "  "})
	assert.ErrorIs(t, err, ai.ErrMissingAPIKey)
}

func TestOpenAIClientComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		assert.Equal(t, float64(600), body["max_tokens"])
		messages := body["messages"].([]any)
		require.Len(t, messages, 2)
		assert.Equal(t, "system", messages[0].(map[string]any)["role"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"gpt-4o-mini-2024-07-18","choices":[{"message":{"role":"assistant","content":"Hi there"}}],"usage":{"completion_tokens":7}}`))
	}))
	defer srv.Close()

	client, err := ai.NewOpenAIClient(ai.ClientConfig{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	got, err := client.Complete(context.Background(), ai.CompletionRequest{
		Model:       "gpt-4o-mini",
		System:      ai.SystemPrompt,
		Prompt:      "hello",
		MaxTokens:   600,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi there", got.Text)
	assert.Equal(t, 7, got.OutputTokens)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", got.Model)
}

func TestOpenAIClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`))
	}))
	defer srv.Close()

	client, err := ai.NewOpenAIClient(ai.ClientConfig{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), ai.CompletionRequest{Model: "gpt-4o-mini", Prompt: "hi"})
	var apiErr *ai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "insufficient_quota", apiErr.Code)
	assert.Equal(t, "You exceeded your current quota", apiErr.Message)
}
