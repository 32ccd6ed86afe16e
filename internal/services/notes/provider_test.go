package notes

import (
	"context"
	"os"
	"testing"

	"github.com/voicenotes/scribe/internal/errors"
	"github.com/voicenotes/scribe/internal/metrics"
)

func TestMain(m *testing.M) {
	// Provider code records metrics; the noop meter needs instruments built.
	metrics.Init()
	os.Exit(m.Run())
}

func TestParseProviderType(t *testing.T) {
	tests := []struct {
		input   string
		want    ProviderType
		wantErr bool
	}{
		{"llama_local", ProviderLlamaLocal, false},
		{"deepseek_openrouter_api", ProviderDeepSeekOpenRouter, false},
		{"qwen_openrouter_api", ProviderQwenOpenRouter, false},
		{"dummy", ProviderDummy, false},
		{"", "", true},
		{"gpt4", "", true},
		{"DUMMY", "", true},
	}

	for _, tt := range tests {
		got, err := ParseProviderType(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseProviderType(%q): expected error, got nil", tt.input)
				continue
			}
			if errors.AsAppError(err).Type != errors.ErrorTypeValidation {
				t.Errorf("ParseProviderType(%q): expected validation error, got %s", tt.input, errors.AsAppError(err).Type)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseProviderType(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseProviderType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDummyProvider(t *testing.T) {
	p := NewDummyProvider()
	got, err := p.GenerateNotes(context.Background(), "any transcript", "any prompt")
	if err != nil {
		t.Fatalf("GenerateNotes failed: %v", err)
	}
	if got != DummyNotes {
		t.Errorf("Expected %q, got %q", DummyNotes, got)
	}
}
