package transcription

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/voicenotes/scribe/internal/errors"
)

// writeStubWhisper writes a shell script standing in for the whisper binary.
func writeStubWhisper(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub binary test requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "whisper-cli")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("Failed to write stub binary: %v", err)
	}
	return path
}

func writeStubModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ggml-turbo.bin")
	if err := os.WriteFile(path, []byte("weights"), 0644); err != nil {
		t.Fatalf("Failed to write stub model: %v", err)
	}
	return path
}

func TestWhisperProvider(t *testing.T) {
	bin := writeStubWhisper(t, `echo "this is my office meet recording transcript"`)
	model := writeStubModel(t)
	audio := createTempAudioFile(t)

	p := NewWhisperProvider(bin, model)
	got, err := p.Transcribe(context.Background(), Request{AudioPath: audio, Language: "en"})
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if got != "this is my office meet recording transcript" {
		t.Errorf("Unexpected transcription: %q", got)
	}
}

func TestWhisperProvider_ModelMissing(t *testing.T) {
	bin := writeStubWhisper(t, `echo "never reached"`)
	audio := createTempAudioFile(t)

	p := NewWhisperProvider(bin, "/nonexistent/model.bin")
	_, err := p.Transcribe(context.Background(), Request{AudioPath: audio})
	if err == nil {
		t.Fatal("Expected error for missing model, got nil")
	}
	if errors.AsAppError(err).Type != errors.ErrorTypeProviderOutput {
		t.Errorf("Expected PROVIDER_OUTPUT_MALFORMED, got %s", errors.AsAppError(err).Type)
	}
}

func TestWhisperProvider_ModelUnset(t *testing.T) {
	p := NewWhisperProvider("whisper-cli", "")
	_, err := p.Transcribe(context.Background(), Request{AudioPath: "/tmp/a.mp3"})
	if err == nil {
		t.Fatal("Expected error for unset model, got nil")
	}
	if !strings.Contains(err.Error(), "not configured") {
		t.Errorf("Expected configuration error, got: %v", err)
	}
}

func TestWhisperProvider_ExecFailure(t *testing.T) {
	bin := writeStubWhisper(t, `echo "failed to load model" >&2; exit 1`)
	model := writeStubModel(t)
	audio := createTempAudioFile(t)

	p := NewWhisperProvider(bin, model)
	_, err := p.Transcribe(context.Background(), Request{AudioPath: audio})
	if err == nil {
		t.Fatal("Expected error for failing binary, got nil")
	}
	if !strings.Contains(err.Error(), "failed to load model") {
		t.Errorf("Expected stderr detail in error, got: %v", err)
	}
}

func TestWhisperProvider_EmptyOutput(t *testing.T) {
	bin := writeStubWhisper(t, `exit 0`)
	model := writeStubModel(t)
	audio := createTempAudioFile(t)

	p := NewWhisperProvider(bin, model)
	_, err := p.Transcribe(context.Background(), Request{AudioPath: audio})
	if err == nil {
		t.Fatal("Expected error for empty output, got nil")
	}
	if !strings.Contains(err.Error(), "no text output") {
		t.Errorf("Expected empty-output error, got: %v", err)
	}
}
