package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	DatabaseURL string

	// Remote ASR credentials (Alibaba NLS short-audio recognition).
	NLSAppKey string
	NLSToken  string

	// Remote LLM credential (OpenRouter).
	OpenRouterKey string

	// Local model binaries and weights.
	WhisperBin   string
	WhisperModel string
	LlamaBin     string
	LlamaModel   string

	AuthJWTSecret string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	Pipeline PipelineConfig
}

// PipelineConfig holds the tunables for the transcription/notes pipeline.
// Values come from config.yaml when present.
type PipelineConfig struct {
	UploadDir            string        `yaml:"upload_dir"`
	TranscriptionDefault string        `yaml:"transcription_default"`
	NotesDefault         string        `yaml:"notes_default"`
	StageTimeout         time.Duration `yaml:"stage_timeout"`
	MaxUploadBytes       int64         `yaml:"max_upload_bytes"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		NLSAppKey:                os.Getenv("NLS_APP_KEY"),
		NLSToken:                 os.Getenv("NLS_TOKEN"),
		OpenRouterKey:            os.Getenv("OPENROUTER_API_KEY"),
		WhisperBin:               os.Getenv("WHISPER_BIN"),
		WhisperModel:             os.Getenv("WHISPER_MODEL"),
		LlamaBin:                 os.Getenv("LLAMA_BIN"),
		LlamaModel:               os.Getenv("LLAMA_MODEL"),
		AuthJWTSecret:            os.Getenv("AUTH_JWT_SECRET"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML("config.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	// Set defaults
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "voicenotes-scribe"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}

	cfg.SetPipelineDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Pipeline PipelineConfig `yaml:"pipeline"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlConfig.Pipeline.UploadDir != "" {
		c.Pipeline.UploadDir = yamlConfig.Pipeline.UploadDir
	}
	if yamlConfig.Pipeline.TranscriptionDefault != "" {
		c.Pipeline.TranscriptionDefault = yamlConfig.Pipeline.TranscriptionDefault
	}
	if yamlConfig.Pipeline.NotesDefault != "" {
		c.Pipeline.NotesDefault = yamlConfig.Pipeline.NotesDefault
	}
	if yamlConfig.Pipeline.StageTimeout > 0 {
		c.Pipeline.StageTimeout = yamlConfig.Pipeline.StageTimeout
	}
	if yamlConfig.Pipeline.MaxUploadBytes > 0 {
		c.Pipeline.MaxUploadBytes = yamlConfig.Pipeline.MaxUploadBytes
	}

	return nil
}

func (c *Config) SetPipelineDefaults() {
	if c.Pipeline.UploadDir == "" {
		c.Pipeline.UploadDir = "uploads"
	}
	if c.Pipeline.TranscriptionDefault == "" {
		c.Pipeline.TranscriptionDefault = "alibaba_asr_api"
	}
	if c.Pipeline.NotesDefault == "" {
		c.Pipeline.NotesDefault = "deepseek_openrouter_api"
	}
	if c.Pipeline.StageTimeout <= 0 {
		c.Pipeline.StageTimeout = 10 * time.Minute
	}
	if c.Pipeline.MaxUploadBytes <= 0 {
		c.Pipeline.MaxUploadBytes = 100 << 20 // 100MB
	}
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}
