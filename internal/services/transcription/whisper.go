package transcription

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/voicenotes/scribe/internal/errors"
)

// WhisperProvider implements Provider by running a local whisper.cpp binary.
// The model is loaded by the subprocess on every invocation; repeated calls
// pay the full load cost.
type WhisperProvider struct {
	bin   string
	model string
}

// NewWhisperProvider creates the local whisper provider. bin defaults to
// "whisper-cli" on PATH when empty.
func NewWhisperProvider(bin, model string) *WhisperProvider {
	if bin == "" {
		bin = "whisper-cli"
	}
	return &WhisperProvider{bin: bin, model: model}
}

// Transcribe runs the whisper binary against the audio file and returns its
// stdout as the transcription text.
func (p *WhisperProvider) Transcribe(ctx context.Context, req Request) (string, error) {
	if p.model == "" {
		return "", errors.NewProviderOutputError("whisper model path is not configured", "WHISPER_MODEL_UNSET", nil)
	}
	if _, err := os.Stat(p.model); err != nil {
		return "", errors.NewProviderOutputError("whisper model weights cannot be loaded", "WHISPER_MODEL_LOAD_ERROR", err)
	}

	args := []string{"-m", p.model, "-f", req.AudioPath, "--no-timestamps"}
	if req.Language != "" {
		args = append(args, "-l", req.Language)
	}
	if h := req.Hints(); h != "" {
		args = append(args, "--prompt", h)
	}

	cmd := exec.CommandContext(ctx, p.bin, args...)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return "", errors.NewProviderOutputError(
				"whisper exited with an error: "+strings.TrimSpace(string(ee.Stderr)),
				"WHISPER_EXEC_ERROR", err)
		}
		return "", errors.NewProviderOutputError("failed to run whisper", "WHISPER_RUN_ERROR", err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", errors.NewProviderOutputError("whisper produced no text output", "WHISPER_EMPTY_OUTPUT", nil)
	}
	return text, nil
}
