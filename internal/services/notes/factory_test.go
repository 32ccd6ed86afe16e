package notes

import (
	"testing"

	"github.com/voicenotes/scribe/internal/config"
	"github.com/voicenotes/scribe/internal/errors"
)

func TestFactory_LlamaLocal(t *testing.T) {
	cfg := &config.Config{LlamaBin: "/opt/llama/llama-cli", LlamaModel: "/opt/llama/qwen2.5-3b.gguf"}

	provider, err := NewProvider(ProviderLlamaLocal, cfg)
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if _, ok := provider.(*LlamaProvider); !ok {
		t.Errorf("Expected LlamaProvider, got %T", provider)
	}
}

func TestFactory_OpenRouterVariants(t *testing.T) {
	cfg := &config.Config{OpenRouterKey: "key"}

	for _, method := range []ProviderType{ProviderDeepSeekOpenRouter, ProviderQwenOpenRouter} {
		provider, err := NewProvider(method, cfg)
		if err != nil {
			t.Fatalf("NewProvider(%s) failed: %v", method, err)
		}
		or, ok := provider.(*OpenRouterProvider)
		if !ok {
			t.Fatalf("Expected OpenRouterProvider for %s, got %T", method, provider)
		}
		switch method {
		case ProviderDeepSeekOpenRouter:
			if or.model != modelDeepSeek {
				t.Errorf("Expected %s, got %s", modelDeepSeek, or.model)
			}
		case ProviderQwenOpenRouter:
			if or.model != modelQwen {
				t.Errorf("Expected %s, got %s", modelQwen, or.model)
			}
		}
	}
}

func TestFactory_OpenRouterMissingCredential(t *testing.T) {
	_, err := NewProvider(ProviderDeepSeekOpenRouter, &config.Config{})
	if err == nil {
		t.Fatal("Expected credential error, got nil")
	}
	if errors.AsAppError(err).Type != errors.ErrorTypeCredentialMissing {
		t.Errorf("Expected PROVIDER_CREDENTIAL_MISSING, got %s", errors.AsAppError(err).Type)
	}
}

func TestFactory_Dummy(t *testing.T) {
	provider, err := NewProvider(ProviderDummy, &config.Config{})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if _, ok := provider.(*DummyProvider); !ok {
		t.Errorf("Expected DummyProvider, got %T", provider)
	}
}

func TestFactory_UnknownTag(t *testing.T) {
	_, err := NewProvider(ProviderType("chatgpt_api"), &config.Config{})
	if err == nil {
		t.Fatal("Expected error for unknown tag, got nil")
	}
	if errors.AsAppError(err).Type != errors.ErrorTypeValidation {
		t.Errorf("Expected validation error, got %s", errors.AsAppError(err).Type)
	}
}
