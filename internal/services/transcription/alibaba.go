package transcription

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/voicenotes/scribe/internal/errors"
	"github.com/voicenotes/scribe/internal/httpclient"
	"github.com/voicenotes/scribe/internal/metrics"
)

// AlibabaProvider implements Provider against the Alibaba NLS short-audio
// recognition API.
type AlibabaProvider struct {
	appKey     string
	token      string
	httpClient *http.Client
	baseURL    string
}

// NewAlibabaProvider creates the remote ASR provider. Both the application
// key and the token must be present; a missing credential fails construction,
// before any network call.
func NewAlibabaProvider(appKey, token string) (*AlibabaProvider, error) {
	if appKey == "" {
		return nil, errors.NewCredentialMissingError("NLS_APP_KEY is not set", "NLS_APP_KEY_MISSING")
	}
	if token == "" {
		return nil, errors.NewCredentialMissingError("NLS_TOKEN is not set", "NLS_TOKEN_MISSING")
	}
	return &AlibabaProvider{
		appKey:     appKey,
		token:      token,
		httpClient: httpclient.NewInstrumentedClient(3 * time.Minute),
		baseURL:    "https://nls-gateway-ap-southeast-1.aliyuncs.com",
	}, nil
}

// asrResponse is the NLS short-audio recognition response body.
type asrResponse struct {
	TaskID  string `json:"task_id"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// nlsStatusSuccess is the vendor's in-body success code.
const nlsStatusSuccess = 20000000

// Transcribe uploads the raw audio bytes to the recognition endpoint and
// returns the recognized text.
func (p *AlibabaProvider) Transcribe(ctx context.Context, req Request) (string, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "alibaba_asr")}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	audioFile, err := os.Open(req.AudioPath)
	if err != nil {
		return "", errors.NewProviderRequestError("failed to open audio file", "AUDIO_FILE_ERROR", err)
	}
	defer audioFile.Close()

	q := url.Values{}
	q.Set("appkey", p.appKey)
	q.Set("format", "mp3")
	q.Set("sample_rate", "16000")
	if h := req.Hints(); h != "" {
		q.Set("hint", h)
	}

	endpoint := p.baseURL + "/stream/v1/asr?" + q.Encode()
	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "AlibabaASR"), "POST", endpoint, audioFile)
	if err != nil {
		return "", errors.NewProviderRequestError("failed to create NLS request", "NLS_REQUEST_ERROR", err)
	}
	httpReq.Header.Set("X-NLS-Token", p.token)
	httpReq.Header.Set("Content-Type", "application/octet-stream")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.NewProviderRequestError("failed to call NLS recognition API", "NLS_API_ERROR", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewProviderRequestError("failed to read NLS response", "READ_RESPONSE_ERROR", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewProviderRequestError(
			fmt.Sprintf("NLS API error (status %d): %s", resp.StatusCode, string(respBody)),
			"NLS_API_HTTP_ERROR", nil)
	}

	var asrResp asrResponse
	if err := json.Unmarshal(respBody, &asrResp); err != nil {
		return "", errors.NewProviderRequestError("failed to parse NLS response", "PARSE_RESPONSE_ERROR", err)
	}

	if asrResp.Status != nlsStatusSuccess {
		return "", errors.NewProviderRequestError(
			fmt.Sprintf("NLS recognition failed (status %d): %s", asrResp.Status, asrResp.Message),
			"NLS_RECOGNITION_ERROR", nil)
	}

	return asrResp.Result, nil
}
