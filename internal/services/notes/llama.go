package notes

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/voicenotes/scribe/internal/errors"
)

// LlamaProvider implements Provider by running a local llama.cpp binary
// against GGUF weights. The model is loaded by the subprocess on every
// invocation; repeated calls pay the full load cost.
type LlamaProvider struct {
	bin   string
	model string
}

// NewLlamaProvider creates the local inference provider. bin defaults to
// "llama-cli" on PATH when empty.
func NewLlamaProvider(bin, model string) *LlamaProvider {
	if bin == "" {
		bin = "llama-cli"
	}
	return &LlamaProvider{bin: bin, model: model}
}

// GenerateNotes runs the completion engine with a Q/A-style prompt and
// returns its stdout as the notes text.
func (p *LlamaProvider) GenerateNotes(ctx context.Context, transcript, prompt string) (string, error) {
	if p.model == "" {
		return "", errors.NewProviderOutputError("llama model path is not configured", "LLAMA_MODEL_UNSET", nil)
	}
	if _, err := os.Stat(p.model); err != nil {
		return "", errors.NewProviderOutputError("llama model weights cannot be loaded", "LLAMA_MODEL_LOAD_ERROR", err)
	}

	args := []string{
		"-m", p.model,
		"-p", BuildCompletionPrompt(transcript, prompt),
		"-n", "1024",
		"--temp", "0.4",
		"--no-display-prompt",
	}

	cmd := exec.CommandContext(ctx, p.bin, args...)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return "", errors.NewProviderOutputError(
				"llama exited with an error: "+strings.TrimSpace(string(ee.Stderr)),
				"LLAMA_EXEC_ERROR", err)
		}
		return "", errors.NewProviderOutputError("failed to run llama", "LLAMA_RUN_ERROR", err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", errors.NewProviderOutputError("llama produced no text output", "LLAMA_EMPTY_OUTPUT", nil)
	}
	return text, nil
}
