package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}],"usage":{"prompt_tokens":10,"completion_tokens":15,"total_tokens":25}}`))
	}))
	defer srv.Close()

	client, err := NewClient("test-key", srv.URL, time.Second)
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "test-model",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	require.Equal(t, `{"ok":true}`, resp.Choices[0].Message.Content)
	require.False(t, resp.Usage.IsZero())
	require.Equal(t, 10, resp.Usage.PromptTokens)
	require.Equal(t, 15, resp.Usage.CompletionTokens)
	require.Equal(t, 25, resp.Usage.TotalTokens)
}

func TestCreateChatCompletionStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	client, err := NewClient("test-key", srv.URL, time.Second)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.Error(t, err)
	require.True(t, IsStatus(err, http.StatusTooManyRequests))
	require.False(t, IsStatus(err, http.StatusPaymentRequired))
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("", "", 0)
	require.Error(t, err)
}
