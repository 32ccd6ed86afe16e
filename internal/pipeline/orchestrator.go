package pipeline

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/voicenotes/scribe/internal/config"
	"github.com/voicenotes/scribe/internal/logger"
	"github.com/voicenotes/scribe/internal/metrics"
	"github.com/voicenotes/scribe/internal/services/notes"
	"github.com/voicenotes/scribe/internal/services/transcription"
	"github.com/voicenotes/scribe/internal/store"
	"github.com/voicenotes/scribe/internal/telemetry"
)

// RunParams is everything one transcribe-and-notes run needs. The method
// tags arrive already validated; the orchestrator only resolves them to
// providers.
type RunParams struct {
	SessionID           int64
	AudioPath           string
	Meta                store.SessionMetadata
	TranscriptionMethod transcription.ProviderType
	NotesMethod         notes.ProviderType
}

// Result carries both stage outputs. There is no partial result: a run whose
// notes stage fails returns an error, not the transcription alone.
type Result struct {
	Transcription string
	Notes         string
}

// Orchestrator drives the two-stage pipeline and persists the outcome.
type Orchestrator struct {
	cfg *config.Config
	st  store.Store
	log *slog.Logger

	newTranscriber func(transcription.ProviderType, *config.Config) (transcription.Provider, error)
	newNotesGen    func(notes.ProviderType, *config.Config) (notes.Provider, error)
}

func NewOrchestrator(cfg *config.Config, st store.Store, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:            cfg,
		st:             st,
		log:            log,
		newTranscriber: transcription.NewProvider,
		newNotesGen:    notes.NewProvider,
	}
}

// Run transcribes the audio, generates notes from the transcript, and saves
// both under the session in one transaction. Stages run sequentially; the
// notes stage never starts after a transcription failure.
func (o *Orchestrator) Run(ctx context.Context, p RunParams) (*Result, error) {
	ctx, span := telemetry.Tracer("pipeline").Start(ctx, "pipeline.run")
	defer span.End()

	start := time.Now()
	status := "error"
	defer func() {
		attrs := metric.WithAttributes(attribute.String("status", status))
		metrics.PipelineRunDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		metrics.PipelineRunsTotal.Add(ctx, 1, attrs)
	}()

	// Session existence is a client error, surfaced before any provider work.
	if _, err := o.st.GetSession(ctx, p.SessionID); err != nil {
		return nil, err
	}

	transcript, err := o.Transcribe(ctx, p.TranscriptionMethod, transcription.Request{
		AudioPath: p.AudioPath,
		Language:  p.Meta.Lang,
		Prompt:    p.Meta.Prompt,
		AudioKind: p.Meta.AudioKind,
	})
	if err != nil {
		return nil, err
	}
	o.log.InfoContext(ctx, "transcription stage finished",
		slog.Int64("session_id", p.SessionID),
		slog.Int("transcript_chars", len(transcript)),
		logger.WithTraceContext(ctx))

	notesText, err := o.GenerateNotes(ctx, p.NotesMethod, transcript, p.Meta.Prompt)
	if err != nil {
		return nil, err
	}
	o.log.InfoContext(ctx, "notes stage finished",
		slog.Int64("session_id", p.SessionID),
		slog.Int("notes_chars", len(notesText)),
		logger.WithTraceContext(ctx))

	if err := o.st.SaveRunResult(ctx, p.SessionID, p.Meta, transcript, notesText); err != nil {
		return nil, err
	}

	status = "ok"
	return &Result{Transcription: transcript, Notes: notesText}, nil
}

// Transcribe runs the transcription stage alone, isolated and deadlined.
func (o *Orchestrator) Transcribe(ctx context.Context, method transcription.ProviderType, req transcription.Request) (string, error) {
	provider, err := o.newTranscriber(method, o.cfg)
	if err != nil {
		return "", err
	}
	return runStage(ctx, "transcription", o.cfg.Pipeline.StageTimeout, "TRANSCRIBE_NO_RESULT",
		func(ctx context.Context) (string, error) {
			return provider.Transcribe(ctx, req)
		})
}

// GenerateNotes runs the notes stage alone, isolated and deadlined.
func (o *Orchestrator) GenerateNotes(ctx context.Context, method notes.ProviderType, transcript, prompt string) (string, error) {
	gen, err := o.newNotesGen(method, o.cfg)
	if err != nil {
		return "", err
	}
	return runStage(ctx, "notes", o.cfg.Pipeline.StageTimeout, "NOTES_NO_RESULT",
		func(ctx context.Context) (string, error) {
			return gen.GenerateNotes(ctx, transcript, prompt)
		})
}
