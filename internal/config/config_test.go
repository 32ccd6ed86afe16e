package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadPipelineConfig(t *testing.T) {
	configContent := `pipeline:
  upload_dir: /tmp/audio-uploads
  transcription_default: whisper_local
  notes_default: llama_local
  stage_timeout: 2m`

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg := &Config{}
	err = cfg.LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	if cfg.Pipeline.UploadDir != "/tmp/audio-uploads" {
		t.Errorf("Expected upload_dir '/tmp/audio-uploads', got '%s'", cfg.Pipeline.UploadDir)
	}
	if cfg.Pipeline.TranscriptionDefault != "whisper_local" {
		t.Errorf("Expected transcription_default 'whisper_local', got '%s'", cfg.Pipeline.TranscriptionDefault)
	}
	if cfg.Pipeline.NotesDefault != "llama_local" {
		t.Errorf("Expected notes_default 'llama_local', got '%s'", cfg.Pipeline.NotesDefault)
	}
	if cfg.Pipeline.StageTimeout != 2*time.Minute {
		t.Errorf("Expected stage_timeout 2m, got %v", cfg.Pipeline.StageTimeout)
	}
}

func TestLoadPipelineConfigPartial(t *testing.T) {
	// Only one field set; the rest keep their defaults
	configContent := `pipeline:
  transcription_default: dummy`

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config_partial.yaml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg := &Config{}
	cfg.SetPipelineDefaults()
	err = cfg.LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	if cfg.Pipeline.TranscriptionDefault != "dummy" {
		t.Errorf("Expected transcription_default 'dummy', got '%s'", cfg.Pipeline.TranscriptionDefault)
	}
	if cfg.Pipeline.NotesDefault != "deepseek_openrouter_api" {
		t.Errorf("Expected notes_default 'deepseek_openrouter_api' (default), got '%s'", cfg.Pipeline.NotesDefault)
	}
	if cfg.Pipeline.UploadDir != "uploads" {
		t.Errorf("Expected upload_dir 'uploads' (default), got '%s'", cfg.Pipeline.UploadDir)
	}
}

func TestPipelineDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetPipelineDefaults()

	if cfg.Pipeline.UploadDir != "uploads" {
		t.Errorf("Expected default upload_dir 'uploads', got '%s'", cfg.Pipeline.UploadDir)
	}
	if cfg.Pipeline.TranscriptionDefault != "alibaba_asr_api" {
		t.Errorf("Expected default transcription method 'alibaba_asr_api', got '%s'", cfg.Pipeline.TranscriptionDefault)
	}
	if cfg.Pipeline.NotesDefault != "deepseek_openrouter_api" {
		t.Errorf("Expected default notes method 'deepseek_openrouter_api', got '%s'", cfg.Pipeline.NotesDefault)
	}
	if cfg.Pipeline.StageTimeout != 10*time.Minute {
		t.Errorf("Expected default stage timeout 10m, got %v", cfg.Pipeline.StageTimeout)
	}
	if cfg.Pipeline.MaxUploadBytes != 100<<20 {
		t.Errorf("Expected default max upload 100MB, got %d", cfg.Pipeline.MaxUploadBytes)
	}
}

func TestLoadMissingYAMLIsNotAnError(t *testing.T) {
	cfg := &Config{}
	if err := cfg.LoadFromYAML(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("Expected missing config file to be ignored, got %v", err)
	}
}
