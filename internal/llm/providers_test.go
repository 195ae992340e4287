package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "qwen2.5:14b", req.Model)
		assert.Equal(t, "hello", req.Prompt)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(ollamaResponse{Response: "world", Done: true})
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "qwen2.5:14b")
	assert.Equal(t, "qwen2.5:14b", p.GetModel())

	out, err := p.Generate("hello")
	require.NoError(t, err)
	assert.Equal(t, "world", out)
}

func TestOllamaGenerateErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "m")
	_, err := p.Generate("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestOpenAIGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "hello", req.Messages[0].Content)

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"world"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(server.URL, "gpt-4o-mini", "sk-test")
	out, err := p.Generate("hello")
	require.NoError(t, err)
	assert.Equal(t, "world", out)
}

func TestOpenAIGenerateNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(server.URL, "m", "")
	_, err := p.Generate("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(ProviderConfig{Type: ProviderOllama, Model: "m", BaseURL: "http://localhost:11434"})
	require.NoError(t, err)
	assert.IsType(t, &OllamaProvider{}, p)

	p, err = NewProvider(ProviderConfig{Type: ProviderOpenAI, Model: "m", BaseURL: "https://api.openai.com"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIProvider{}, p)

	_, err = NewProvider(ProviderConfig{Type: "anthropic"})
	require.Error(t, err)
}
