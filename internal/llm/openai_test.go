package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completion(content string, tokens int) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:     "chatcmpl-1",
		Object: "chat.completion",
		Model:  "gpt-4o-mini",
		Choices: []openai.ChatCompletionChoice{{
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
			FinishReason: openai.FinishReasonStop,
		}},
		Usage: openai.Usage{TotalTokens: tokens},
	}
}

func openAIProvider(t *testing.T, handler http.HandlerFunc, strict bool) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: 5, StrictEvidence: strict})
	require.NoError(t, err)
	return provider
}

func TestOpenAIProvider_Summarize(t *testing.T) {
	var got openai.ChatCompletionRequest
	provider := openAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(completion("Partly supported. Source: https://en.wikipedia.org/wiki/Python", 100))
	}, true)

	resp, err := provider.Summarize(context.Background(), claimRequest("https://en.wikipedia.org/wiki/Python"))
	require.NoError(t, err)

	assert.Equal(t, "Partly supported. Source: https://en.wikipedia.org/wiki/Python", resp.Summary)
	assert.Equal(t, []string{"https://en.wikipedia.org/wiki/Python"}, resp.CitedURLs)
	assert.Equal(t, 100, resp.TokensUsed)
	assert.Equal(t, openai.GPT4oMini, resp.Model)

	assert.Equal(t, openai.GPT4oMini, got.Model, "default model")
	assert.Equal(t, defaultMaxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Contains(t, got.Messages[1].Content, "Claim: Python foi criado em 1991")
}

func TestOpenAIProvider_Summarize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
		}},
		{"rate limit", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error": {"message": "Rate limit exceeded", "type": "rate_limit_error"}}`))
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{malformed json`))
		}},
		{"no choices", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{Model: "gpt-4o-mini"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := openAIProvider(t, tt.handler, false)
			_, err := provider.Summarize(context.Background(), claimRequest())
			assert.Error(t, err)
		})
	}
}

func TestOpenAIProvider_Summarize_CallerDeadline(t *testing.T) {
	provider := openAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	}, false)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := provider.Summarize(ctx, claimRequest())
	assert.Error(t, err)
}

func TestOpenAIProvider_Summarize_CitationLeak(t *testing.T) {
	provider := openAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(completion("See https://elsewhere.example.org/page.", 10))
	}, true)

	_, err := provider.Summarize(context.Background(), claimRequest("https://en.wikipedia.org/wiki/Python"))
	assert.True(t, errors.Is(err, ErrCitationLeak))
}

func TestOpenAIProvider_IsAvailable(t *testing.T) {
	var unhealthy atomic.Bool
	provider := openAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if unhealthy.Load() || r.URL.Path != "/models" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"object": "list", "data": [{"id": "gpt-4o-mini"}]}`))
	}, false)

	assert.True(t, provider.IsAvailable(context.Background()))

	unhealthy.Store(true)
	assert.False(t, provider.IsAvailable(context.Background()))
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider(Config{})
	assert.Error(t, err)
}
