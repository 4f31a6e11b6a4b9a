package factory

import (
	"testing"

	"edumate-be/pkg/llm/backend"
	"edumate-be/pkg/llm/ollama"
	"edumate-be/pkg/llm/openrouter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Config{Provider: "backend", BaseURL: "http://localhost:5000"})
	require.NoError(t, err)
	assert.IsType(t, &backend.Client{}, p)

	p, err = NewLLMProvider(Config{Provider: "openrouter", Model: "openai/gpt-4o-mini"})
	require.NoError(t, err)
	assert.IsType(t, &openrouter.Provider{}, p)

	p, err = NewLLMProvider(Config{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.IsType(t, &ollama.Provider{}, p)

	_, err = NewLLMProvider(Config{Provider: "backend"})
	assert.Error(t, err)

	_, err = NewLLMProvider(Config{Provider: "gemini"})
	assert.EqualError(t, err, "unsupported LLM provider: gemini")
}
