package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientChat(t *testing.T) {
	var gotBody chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"final_safe_response":"You are not alone.","risk_assessment":"moderate"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Chat(context.Background(), "I can't sleep")
	require.NoError(t, err)

	assert.Equal(t, "I can't sleep", gotBody.UserInput)
	assert.Equal(t, "You are not alone.", result.BotResponse)
	assert.Equal(t, "moderate", result.RiskAssessment)
}

func TestClientChatUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Chat(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClientChatConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed on purpose

	client := NewClient(server.URL)
	_, err := client.Chat(context.Background(), "hello")
	require.Error(t, err)
}
