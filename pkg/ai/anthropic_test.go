package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/fathom-relay/pkg/config"
)

type anthropicRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

const anthropicReply = `{"id":"msg_01","type":"message","role":"assistant","model":"claude-test",` +
	`"content":[{"type":"text","text":"{\"summary\":\"ok\"}"}],` +
	`"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":5}}`

func TestAnthropicComplete_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var payload anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "claude-test", payload.Model)
		assert.Equal(t, 500, payload.MaxTokens)
		require.Len(t, payload.Messages, 1)
		assert.Equal(t, "user", payload.Messages[0].Role)
		require.Len(t, payload.Messages[0].Content, 1)
		assert.Equal(t, "text", payload.Messages[0].Content[0].Type)
		assert.Equal(t, "hello", payload.Messages[0].Content[0].Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(anthropicReply))
	}))
	defer ts.Close()

	client := NewAnthropicClient(&config.AnthropicConfig{
		APIKey:    "test-key",
		BaseURL:   ts.URL + "/",
		Model:     "claude-test",
		MaxTokens: 500,
	}, 5*time.Second)

	text, err := client.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, text)
}

func TestAnthropicComplete_StatusError(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error"}}`))
	}))
	defer ts.Close()

	client := NewAnthropicClient(&config.AnthropicConfig{APIKey: "k", BaseURL: ts.URL}, 5*time.Second)

	_, err := client.Complete(context.Background(), "hello")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.True(t, statusErr.Temporary())
	assert.Contains(t, err.Error(), "rate_limit_error")
	assert.Equal(t, 1, calls, "SDK retries must be disabled")
}

func TestAnthropicComplete_ClientErrorIsPermanent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error"}}`))
	}))
	defer ts.Close()

	client := NewAnthropicClient(&config.AnthropicConfig{APIKey: "bad", BaseURL: ts.URL}, 5*time.Second)

	_, err := client.Complete(context.Background(), "hello")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.False(t, statusErr.Temporary())
}

func TestAnthropicComplete_NoTextBlock(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_02","type":"message","role":"assistant","content":[]}`))
	}))
	defer ts.Close()

	client := NewAnthropicClient(&config.AnthropicConfig{APIKey: "k", BaseURL: ts.URL}, 5*time.Second)

	_, err := client.Complete(context.Background(), "hello")
	assert.EqualError(t, err, "empty response from anthropic")
}

func TestStatusError_Temporary(t *testing.T) {
	assert.False(t, (&StatusError{StatusCode: 400}).Temporary())
	assert.False(t, (&StatusError{StatusCode: 401}).Temporary())
	assert.True(t, (&StatusError{StatusCode: 503}).Temporary())
}
