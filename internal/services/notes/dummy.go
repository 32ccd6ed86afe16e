package notes

import "context"

// DummyNotes is the fixed placeholder returned by the dummy provider.
const DummyNotes = "dummy notes text"

// DummyProvider returns a fixed placeholder and performs no I/O. Used for
// integration testing without real provider cost.
type DummyProvider struct{}

func NewDummyProvider() *DummyProvider {
	return &DummyProvider{}
}

func (p *DummyProvider) GenerateNotes(ctx context.Context, transcript, prompt string) (string, error) {
	return DummyNotes, nil
}
