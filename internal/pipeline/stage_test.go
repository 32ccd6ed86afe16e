package pipeline

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/voicenotes/scribe/internal/errors"
	"github.com/voicenotes/scribe/internal/metrics"
)

func TestMain(m *testing.M) {
	// Stage code records metrics; the noop meter needs instruments built.
	metrics.Init()
	os.Exit(m.Run())
}

func TestRunStage(t *testing.T) {
	got, err := runStage(context.Background(), "transcription", time.Second, "TRANSCRIBE_NO_RESULT",
		func(ctx context.Context) (string, error) {
			return "hello", nil
		})
	if err != nil {
		t.Fatalf("runStage failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("Expected 'hello', got %q", got)
	}
}

func TestRunStage_ErrorPassesThrough(t *testing.T) {
	want := errors.NewProviderRequestError("upstream said no", "UPSTREAM_NO", nil)
	_, err := runStage(context.Background(), "notes", time.Second, "NOTES_NO_RESULT",
		func(ctx context.Context) (string, error) {
			return "", want
		})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	appErr := errors.AsAppError(err)
	if appErr.Type != errors.ErrorTypeProviderRequest {
		t.Errorf("Expected provider error to pass through unchanged, got %s", appErr.Type)
	}
	if appErr.ErrorCode != "UPSTREAM_NO" {
		t.Errorf("Expected original error code, got %s", appErr.ErrorCode)
	}
}

func TestRunStage_PanicIsContained(t *testing.T) {
	_, err := runStage(context.Background(), "transcription", time.Second, "TRANSCRIBE_NO_RESULT",
		func(ctx context.Context) (string, error) {
			panic("provider blew up")
		})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	appErr := errors.AsAppError(err)
	if appErr.Type != errors.ErrorTypeStageNoResult {
		t.Errorf("Expected STAGE_NO_RESULT, got %s", appErr.Type)
	}
	if appErr.ErrorCode != "TRANSCRIBE_NO_RESULT" {
		t.Errorf("Expected stage code, got %s", appErr.ErrorCode)
	}
}

func TestRunStage_Timeout(t *testing.T) {
	started := time.Now()
	_, err := runStage(context.Background(), "notes", 20*time.Millisecond, "NOTES_NO_RESULT",
		func(ctx context.Context) (string, error) {
			select {
			case <-time.After(5 * time.Second):
				return "too late", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if time.Since(started) > time.Second {
		t.Error("Expected the caller to return at the deadline, not wait for the stage")
	}
	appErr := errors.AsAppError(err)
	if appErr.Type != errors.ErrorTypeStageNoResult {
		t.Errorf("Expected STAGE_NO_RESULT, got %s", appErr.Type)
	}
}

func TestRunStage_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runStage(ctx, "transcription", time.Minute, "TRANSCRIBE_NO_RESULT",
		func(ctx context.Context) (string, error) {
			time.Sleep(200 * time.Millisecond)
			return "never delivered", nil
		})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if errors.AsAppError(err).Type != errors.ErrorTypeStageNoResult {
		t.Errorf("Expected STAGE_NO_RESULT, got %s", errors.AsAppError(err).Type)
	}
}
