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

func TestAnthropicAdapterGenerate(t *testing.T) {
	var gotReq anthropicRequest
	var gotKey, gotVersion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/messages", r.URL.Path)
		gotKey = r.Header.Get("X-API-Key")
		gotVersion = r.Header.Get("Anthropic-Version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_123",
			"model": "claude-sonnet-4-20250514",
			"stop_reason": "end_turn",
			"content": [{"type": "text", "text": "claude says hi"}],
			"usage": {"input_tokens": 20, "output_tokens": 15}
		}`))
	}))
	defer server.Close()

	adapter := NewAnthropicAdapter(server.URL, "sk-ant-test")
	resp, err := adapter.Generate(context.Background(), &gateway.Request{
		Model: "claude-sonnet-4-20250514",
		Messages: []gateway.Message{
			{Role: gateway.RoleSystem, Content: "be brief"},
			{Role: gateway.RoleUser, Content: "hello"},
		},
		MaxTokens: 500,
	})
	require.NoError(t, err)

	assert.Equal(t, "sk-ant-test", gotKey)
	assert.Equal(t, anthropicVersion, gotVersion)

	// System prompt travels as a top-level field, not a message.
	assert.Equal(t, "be brief", gotReq.System)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, 500, gotReq.MaxTokens)

	assert.Equal(t, "claude says hi", resp.Content)
	assert.Equal(t, "anthropic", resp.Provider)
	assert.Equal(t, 20, resp.Usage.PromptTokens)
	assert.Equal(t, 15, resp.Usage.CompletionTokens)
	assert.Equal(t, 35, resp.Usage.TotalTokens)
}

func TestAnthropicAdapterDefaultsMaxTokens(t *testing.T) {
	var gotReq anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": [{"type": "text", "text": "ok"}], "usage": {"input_tokens": 1, "output_tokens": 1}}`))
	}))
	defer server.Close()

	adapter := NewAnthropicAdapter(server.URL, "sk-ant-test")
	_, err := adapter.Generate(context.Background(), &gateway.Request{
		Model:    "claude-sonnet-4-20250514",
		Messages: []gateway.Message{{Role: gateway.RoleUser, Content: "hello"}},
	})
	require.NoError(t, err)
	assert.Equal(t, defaultAnthropicMaxTokens, gotReq.MaxTokens)
}

func TestAnthropicAdapterOverloaded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"type": "error", "error": {"type": "overloaded_error", "message": "Overloaded"}}`))
	}))
	defer server.Close()

	adapter := NewAnthropicAdapter(server.URL, "sk-ant-test")
	_, err := adapter.Generate(context.Background(), &gateway.Request{
		Model:    "claude-sonnet-4-20250514",
		Messages: []gateway.Message{{Role: gateway.RoleUser, Content: "hello"}},
	})
	require.Error(t, err)

	var provErr *gateway.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, 503, provErr.StatusCode)
	assert.True(t, provErr.Retryable)
}

func TestAnthropicAdapterListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{"id": "claude-sonnet-4-20250514"}, {"id": "claude-3-5-haiku-20241022"}]}`))
	}))
	defer server.Close()

	adapter := NewAnthropicAdapter(server.URL, "sk-ant-test")
	models, err := adapter.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"claude-sonnet-4-20250514", "claude-3-5-haiku-20241022"}, models)
}
