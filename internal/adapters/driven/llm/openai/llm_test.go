package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, baseURL string) *LLMService {
	t.Helper()
	svc, err := NewLLMService(LLMConfig{
		APIKey:  "sk-test",
		BaseURL: baseURL,
	})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService(t *testing.T) {
	t.Run("requires API key", func(t *testing.T) {
		_, err := NewLLMService(LLMConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key")
	})

	t.Run("applies defaults", func(t *testing.T) {
		svc, err := NewLLMService(LLMConfig{APIKey: "sk-test"})
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, svc.baseURL)
		assert.Equal(t, DefaultLLMModel, svc.ModelName())
	})
}

func TestLLMService_Generate(t *testing.T) {
	t.Run("returns completion text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

			var req chatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, DefaultLLMModel, req.Model)
			assert.False(t, req.Stream)
			require.Len(t, req.Messages, 1)
			assert.Equal(t, "user", req.Messages[0].Role)
			assert.Equal(t, "say hi", req.Messages[0].Content)

			w.Write([]byte(`{"choices":[{"message":{"content":"hi there"},"finish_reason":"stop"}]}`))
		}))
		defer server.Close()

		result, err := newTestService(t, server.URL).Generate(context.Background(), "say hi")
		require.NoError(t, err)
		assert.Equal(t, "hi there", result)
	})

	t.Run("surfaces API error message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth"}}`))
		}))
		defer server.Close()

		_, err := newTestService(t, server.URL).Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid api key")
	})

	t.Run("fails on empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		_, err := newTestService(t, server.URL).Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no response choices")
	})
}

func TestLLMService_GenerateStream(t *testing.T) {
	sseChunk := func(content string) string {
		return fmt.Sprintf(`data: {"choices":[{"delta":{"content":%q},"finish_reason":null}]}`+"\n\n", content)
	}

	t.Run("forwards deltas and accumulates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req chatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.True(t, req.Stream)

			w.Header().Set("Content-Type", "text/event-stream")
			fmt.Fprint(w, sseChunk("The "))
			fmt.Fprint(w, sseChunk("answer"))
			fmt.Fprint(w, `data: {"choices":[{"delta":{},"finish_reason":"stop"}]}`+"\n\n")
			fmt.Fprint(w, "data: [DONE]\n\n")
		}))
		defer server.Close()

		var fragments []string
		full, err := newTestService(t, server.URL).GenerateStream(
			context.Background(),
			"prompt",
			func(fragment string) { fragments = append(fragments, fragment) },
		)
		require.NoError(t, err)
		assert.Equal(t, "The answer", full)
		assert.Equal(t, []string{"The ", "answer"}, fragments)
	})

	t.Run("tolerates nil callback", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sseChunk("hello"))
			fmt.Fprint(w, "data: [DONE]\n\n")
		}))
		defer server.Close()

		full, err := newTestService(t, server.URL).GenerateStream(context.Background(), "prompt", nil)
		require.NoError(t, err)
		assert.Equal(t, "hello", full)
	})

	t.Run("skips non-data lines", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, ": keep-alive comment\n\n")
			fmt.Fprint(w, sseChunk("ok"))
			fmt.Fprint(w, "data: [DONE]\n\n")
		}))
		defer server.Close()

		full, err := newTestService(t, server.URL).GenerateStream(context.Background(), "prompt", nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", full)
	})

	t.Run("surfaces non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`rate limited`))
		}))
		defer server.Close()

		_, err := newTestService(t, server.URL).GenerateStream(context.Background(), "prompt", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("fails on malformed chunk", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "data: {not json}\n\n")
		}))
		defer server.Close()

		_, err := newTestService(t, server.URL).GenerateStream(context.Background(), "prompt", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode stream chunk")
	})
}

func TestLLMService_Ping(t *testing.T) {
	t.Run("checks the models endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
			w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		assert.NoError(t, newTestService(t, server.URL).Ping(context.Background()))
	})

	t.Run("fails on bad key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		err := newTestService(t, server.URL).Ping(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})
}
