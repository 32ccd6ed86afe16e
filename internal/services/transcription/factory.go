package transcription

import (
	"github.com/voicenotes/scribe/internal/config"
	"github.com/voicenotes/scribe/internal/errors"
)

// NewProvider resolves a validated method tag to a concrete provider.
// Construction fails when a remote provider's credential is absent, so the
// failure surfaces before any audio is sent anywhere.
func NewProvider(method ProviderType, cfg *config.Config) (Provider, error) {
	switch method {
	case ProviderWhisperLocal:
		return NewWhisperProvider(cfg.WhisperBin, cfg.WhisperModel), nil
	case ProviderAlibabaASR:
		return NewAlibabaProvider(cfg.NLSAppKey, cfg.NLSToken)
	case ProviderDummy:
		return NewDummyProvider(), nil
	}
	return nil, errors.NewValidationError(
		"unknown transcription_method: "+string(method),
		"UNKNOWN_TRANSCRIPTION_METHOD",
		"Use one of: whisper_local, alibaba_asr_api, dummy.",
	)
}
