package factory

import (
	"fmt"
	"time"

	"edumate-be/pkg/llm"
	"edumate-be/pkg/llm/backend"
	"edumate-be/pkg/llm/ollama"
	"edumate-be/pkg/llm/openrouter"
)

type Config struct {
	Provider string // "backend", "openrouter" or "ollama"
	Model    string
	BaseURL  string
	APIKey   string
	Referer  string
	Timeout  time.Duration
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "backend", "":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("backend provider needs a base URL")
		}
		return backend.NewClient(cfg.BaseURL, cfg.Timeout), nil
	case "openrouter":
		return openrouter.NewProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Referer, cfg.Timeout), nil
	case "ollama":
		return ollama.NewProvider(cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
