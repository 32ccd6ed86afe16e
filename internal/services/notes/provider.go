package notes

import (
	"context"

	"github.com/voicenotes/scribe/internal/errors"
)

// ProviderType is the closed set of notes-generation methods selectable per
// request.
type ProviderType string

const (
	ProviderLlamaLocal         ProviderType = "llama_local"
	ProviderDeepSeekOpenRouter ProviderType = "deepseek_openrouter_api"
	ProviderQwenOpenRouter     ProviderType = "qwen_openrouter_api"
	ProviderDummy              ProviderType = "dummy"
)

// ParseProviderType validates a request-supplied method tag at the boundary.
func ParseProviderType(s string) (ProviderType, error) {
	switch ProviderType(s) {
	case ProviderLlamaLocal, ProviderDeepSeekOpenRouter, ProviderQwenOpenRouter, ProviderDummy:
		return ProviderType(s), nil
	}
	return "", errors.NewValidationError(
		"unknown notes_method: "+s,
		"UNKNOWN_NOTES_METHOD",
		"Use one of: llama_local, deepseek_openrouter_api, qwen_openrouter_api, dummy.",
	)
}

// Provider turns a transcript into organized notes.
type Provider interface {
	GenerateNotes(ctx context.Context, transcript, prompt string) (string, error)
}
