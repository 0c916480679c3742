package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofora/ai-gateway/internal/domain/gateway"
)

func TestGoogleAdapterGenerate(t *testing.T) {
	var gotReq geminiRequest
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "gemini reply"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 8, "candidatesTokenCount": 4, "totalTokenCount": 12}
		}`))
	}))
	defer server.Close()

	adapter := NewGoogleAdapter(server.URL, "google-key")
	resp, err := adapter.Generate(context.Background(), &gateway.Request{
		Model: "gemini-2.0-flash",
		Messages: []gateway.Message{
			{Role: gateway.RoleSystem, Content: "be helpful"},
			{Role: gateway.RoleUser, Content: "hello"},
			{Role: gateway.RoleAssistant, Content: "hi there"},
			{Role: gateway.RoleUser, Content: "continue"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "google-key", gotKey)

	// System prompt becomes system_instruction; assistant maps to "model".
	require.NotNil(t, gotReq.SystemInstruction)
	assert.Equal(t, "be helpful", gotReq.SystemInstruction.Parts[0].Text)
	require.Len(t, gotReq.Contents, 3)
	assert.Equal(t, "user", gotReq.Contents[0].Role)
	assert.Equal(t, "model", gotReq.Contents[1].Role)
	assert.Equal(t, "user", gotReq.Contents[2].Role)

	assert.Equal(t, "gemini reply", resp.Content)
	assert.Equal(t, "google", resp.Provider)
	assert.Equal(t, 12, resp.Usage.TotalTokens)
}

func TestGoogleAdapterEstimatesMissingUsage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "abcdefgh"}]}}]}`))
	}))
	defer server.Close()

	adapter := NewGoogleAdapter(server.URL, "google-key")
	messages := []gateway.Message{{Role: gateway.RoleUser, Content: "hello world"}}
	resp, err := adapter.Generate(context.Background(), &gateway.Request{
		Model:    "gemini-2.0-flash",
		Messages: messages,
	})
	require.NoError(t, err)

	assert.Equal(t, gateway.EstimateMessageTokens(messages), resp.Usage.PromptTokens)
	assert.Equal(t, gateway.EstimateTokens("abcdefgh"), resp.Usage.CompletionTokens)
	assert.Equal(t, resp.Usage.PromptTokens+resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
}

func TestGoogleAdapterServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "internal error"}}`))
	}))
	defer server.Close()

	adapter := NewGoogleAdapter(server.URL, "google-key")
	_, err := adapter.Generate(context.Background(), &gateway.Request{
		Model:    "gemini-2.0-flash",
		Messages: []gateway.Message{{Role: gateway.RoleUser, Content: "hello"}},
	})
	require.Error(t, err)

	var provErr *gateway.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, 500, provErr.StatusCode)
	assert.True(t, provErr.Retryable)
}

func TestGoogleAdapterListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"models": [{"name": "models/gemini-2.0-flash"}, {"name": "models/gemini-1.5-pro"}]}`))
	}))
	defer server.Close()

	adapter := NewGoogleAdapter(server.URL, "google-key")
	models, err := adapter.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gemini-2.0-flash", "gemini-1.5-pro"}, models)
}
