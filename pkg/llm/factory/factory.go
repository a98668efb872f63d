package factory

import (
	"fmt"

	"interview-prep-be/pkg/llm"
	"interview-prep-be/pkg/llm/anthropic"
	"interview-prep-be/pkg/llm/gemini"
	"interview-prep-be/pkg/llm/huggingface"
	"interview-prep-be/pkg/llm/ollama"
	"interview-prep-be/pkg/llm/openai"
)

const (
	ProviderGemini      = "gemini"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
	ProviderOllama      = "ollama"
	ProviderHuggingFace = "huggingface"
)

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	ApiKey   string
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		if cfg.ApiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an api key")
		}
		return gemini.NewGeminiProvider(cfg.ApiKey, cfg.BaseURL, cfg.Model), nil
	case ProviderOpenAI:
		if cfg.ApiKey == "" {
			return nil, fmt.Errorf("openai provider requires an api key")
		}
		return openai.NewOpenAIProvider(cfg.ApiKey, cfg.BaseURL, cfg.Model), nil
	case ProviderAnthropic:
		if cfg.ApiKey == "" {
			return nil, fmt.Errorf("anthropic provider requires an api key")
		}
		return anthropic.NewAnthropicProvider(cfg.ApiKey, cfg.BaseURL, cfg.Model), nil
	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case ProviderHuggingFace:
		return huggingface.NewHuggingFaceProvider(cfg.ApiKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
