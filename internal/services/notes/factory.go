package notes

import (
	"github.com/voicenotes/scribe/internal/config"
	"github.com/voicenotes/scribe/internal/errors"
)

// NewProvider resolves a validated method tag to a concrete provider.
// Construction fails when a remote provider's credential is absent, so the
// failure surfaces before any transcript leaves the process.
func NewProvider(method ProviderType, cfg *config.Config) (Provider, error) {
	switch method {
	case ProviderLlamaLocal:
		return NewLlamaProvider(cfg.LlamaBin, cfg.LlamaModel), nil
	case ProviderDeepSeekOpenRouter:
		return NewOpenRouterProvider(cfg.OpenRouterKey, modelDeepSeek)
	case ProviderQwenOpenRouter:
		return NewOpenRouterProvider(cfg.OpenRouterKey, modelQwen)
	case ProviderDummy:
		return NewDummyProvider(), nil
	}
	return nil, errors.NewValidationError(
		"unknown notes_generation_method: "+string(method),
		"UNKNOWN_NOTES_METHOD",
		"Use one of: llama_local, deepseek_openrouter_api, qwen_openrouter_api, dummy.",
	)
}
