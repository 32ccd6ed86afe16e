package transcription

import (
	"context"
	"strings"

	"github.com/voicenotes/scribe/internal/errors"
)

// ProviderType is the closed set of transcription methods selectable per
// request.
type ProviderType string

const (
	ProviderWhisperLocal ProviderType = "whisper_local"
	ProviderAlibabaASR   ProviderType = "alibaba_asr_api"
	ProviderDummy        ProviderType = "dummy"
)

// ParseProviderType validates a request-supplied method tag. Unknown tags are
// rejected here, at the boundary, not inside the pipeline.
func ParseProviderType(s string) (ProviderType, error) {
	switch ProviderType(s) {
	case ProviderWhisperLocal, ProviderAlibabaASR, ProviderDummy:
		return ProviderType(s), nil
	}
	return "", errors.NewValidationError(
		"unknown transcription_method: "+s,
		"UNKNOWN_TRANSCRIPTION_METHOD",
		"Use one of: whisper_local, alibaba_asr_api, dummy.",
	)
}

// Request carries the audio source and the optional per-call hints.
type Request struct {
	AudioPath string
	Language  string
	Prompt    string
	AudioKind string
}

// Hints joins the optional hints into one label-prefixed, comma-separated
// string, omitting any hint left unset. Returns "" when no hints are set.
func (r Request) Hints() string {
	var parts []string
	if r.Language != "" {
		parts = append(parts, "language: "+r.Language)
	}
	if r.Prompt != "" {
		parts = append(parts, "prompt: "+r.Prompt)
	}
	if r.AudioKind != "" {
		parts = append(parts, "audio kind: "+r.AudioKind)
	}
	return strings.Join(parts, ", ")
}

// Provider turns an audio file into text.
type Provider interface {
	Transcribe(ctx context.Context, req Request) (string, error)
}
