package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edumate-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		assert.Equal(t, "assistant", req.Messages[1].Role, "model role is mapped to assistant")

		_ = json.NewEncoder(w).Encode(chatResponse{Message: message{Role: "assistant", Content: "ok"}, Done: true})
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "llama3", time.Second)
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "hi"},
		{Role: "model", Content: "hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestProvider_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewProvider(srv.URL, "llama3", time.Second).Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, llm.ErrBackendUnavailable)
}

func TestProvider_ErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chatResponse{Error: "model is loading"})
	}))
	defer srv.Close()

	_, err := NewProvider(srv.URL+"/", "llama3", time.Second).Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, llm.ErrBackendUnavailable)
	assert.Contains(t, err.Error(), "model is loading")
}
