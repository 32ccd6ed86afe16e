package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/voicenotes/scribe/internal/errors"
	"github.com/voicenotes/scribe/internal/httpclient"
	"github.com/voicenotes/scribe/internal/metrics"
)

// Model slugs routed through OpenRouter.
const (
	modelDeepSeek = "deepseek/deepseek-chat"
	modelQwen     = "qwen/qwen-2.5-72b-instruct"
)

// OpenRouterProvider implements Provider against the OpenRouter
// chat-completions API with a per-variant model slug.
type OpenRouterProvider struct {
	apiKey  string
	model   string
	baseURL string
}

// NewOpenRouterProvider creates a remote notes provider. A missing bearer
// credential fails construction, before any network call.
func NewOpenRouterProvider(apiKey, model string) (*OpenRouterProvider, error) {
	if apiKey == "" {
		return nil, errors.NewCredentialMissingError("OPENROUTER_API_KEY is not set", "OPENROUTER_KEY_MISSING")
	}
	return &OpenRouterProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://openrouter.ai/api/v1",
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateNotes sends the transcript through the chat-completions endpoint
// and returns the assistant's reply.
func (p *OpenRouterProvider) GenerateNotes(ctx context.Context, transcript, prompt string) (string, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "openrouter"), attribute.String("model", p.model)}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	req := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: BuildSystemPrompt(prompt)},
			{Role: "user", Content: transcript},
		},
	}

	body, _ := json.Marshal(req)
	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "OpenRouter"), "POST", p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.NewProviderRequestError("failed to create OpenRouter request", "OPENROUTER_REQUEST_ERROR", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpclient.InstrumentedClient.Do(httpReq)
	if err != nil {
		return "", errors.NewProviderRequestError("failed to call OpenRouter API", "OPENROUTER_API_ERROR", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewProviderRequestError("failed to read OpenRouter response", "READ_RESPONSE_ERROR", err)
	}

	if resp.StatusCode >= 400 {
		return "", errors.NewProviderRequestError(
			fmt.Sprintf("OpenRouter API error (status %d): %s", resp.StatusCode, string(respBody)),
			"OPENROUTER_API_HTTP_ERROR", nil)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", errors.NewProviderRequestError("failed to parse OpenRouter response", "PARSE_RESPONSE_ERROR", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", errors.NewProviderRequestError("no choices in OpenRouter response", "OPENROUTER_EMPTY_RESPONSE", nil)
	}

	return chatResp.Choices[0].Message.Content, nil
}
