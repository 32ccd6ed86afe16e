package transcription

import "context"

// DummyTranscription is the fixed placeholder returned by the dummy provider.
const DummyTranscription = "dummy transcription text"

// DummyProvider returns a fixed placeholder and performs no I/O. Used for
// integration testing without real provider cost.
type DummyProvider struct{}

func NewDummyProvider() *DummyProvider {
	return &DummyProvider{}
}

func (p *DummyProvider) Transcribe(ctx context.Context, req Request) (string, error) {
	return DummyTranscription, nil
}
