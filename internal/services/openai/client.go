package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	langpkg "voiceprep/internal/language"
	"voiceprep/internal/services"
	"voiceprep/internal/speech"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "whisper-1"
	defaultTimeout     = 5 * time.Minute
	responseFormat     = "verbose_json"
	transcriptionsPath = "/audio/transcriptions"
)

// TranscriptionResponse mirrors the verbose_json fields needed for tagging.
type TranscriptionResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

// Client calls an OpenAI-compatible transcription endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// Option customizes a client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithBaseURL overrides the default base URL. The URL should include the
// API version prefix (e.g. http://localhost:8000/v1).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
		}
	}
}

// WithModel overrides the transcription model.
func WithModel(model string) Option {
	return func(c *Client) {
		if strings.TrimSpace(model) != "" {
			c.model = strings.TrimSpace(model)
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// NewClient constructs a client for the transcription API.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		baseURL: defaultBaseURL,
		apiKey:  strings.TrimSpace(apiKey),
		model:   defaultModel,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Name identifies the engine.
func (c *Client) Name() string { return "openai" }

// Recognize uploads the audio file without a language hint so the service
// detects the spoken language.
func (c *Client) Recognize(ctx context.Context, audioPath string) (speech.Recognition, error) {
	resp, err := c.Transcribe(ctx, audioPath)
	if err != nil {
		return speech.Recognition{}, err
	}
	return speech.Recognition{
		Language: langpkg.ToISO2(resp.Language),
		Text:     resp.Text,
	}, nil
}

// Transcribe uploads an audio file and returns the decoded verbose response.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (TranscriptionResponse, error) {
	if c == nil {
		return TranscriptionResponse{}, fmt.Errorf("openai client: nil client")
	}
	audioPath = strings.TrimSpace(audioPath)
	if audioPath == "" {
		return TranscriptionResponse{}, services.Wrap(services.ErrValidation, "transcribe", "openai", "empty file path", nil)
	}
	if c.apiKey == "" {
		return TranscriptionResponse{}, services.Wrap(services.ErrConfiguration, "transcribe", "openai", "missing api key", nil)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return TranscriptionResponse{}, fmt.Errorf("openai client: open audio: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("model", c.model); err != nil {
		return TranscriptionResponse{}, fmt.Errorf("openai client: write model field: %w", err)
	}
	if err := writer.WriteField("response_format", responseFormat); err != nil {
		return TranscriptionResponse{}, fmt.Errorf("openai client: write format field: %w", err)
	}
	field, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return TranscriptionResponse{}, fmt.Errorf("openai client: create file field: %w", err)
	}
	if _, err := io.Copy(field, file); err != nil {
		return TranscriptionResponse{}, fmt.Errorf("openai client: copy audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return TranscriptionResponse{}, fmt.Errorf("openai client: close multipart writer: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+transcriptionsPath, body)
	if err != nil {
		return TranscriptionResponse{}, fmt.Errorf("openai client: build request: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())
	request.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return TranscriptionResponse{}, ctx.Err()
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return TranscriptionResponse{}, services.Wrap(services.ErrTimeout, "transcribe", "openai",
				fmt.Sprintf("no response within %s", c.http.Timeout), nil)
		}
		return TranscriptionResponse{}, services.Wrap(services.ErrTransient, "transcribe", "openai", "http request", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return TranscriptionResponse{}, fmt.Errorf("openai client: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		marker := services.ErrExternalTool
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			marker = services.ErrConfiguration
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			marker = services.ErrTransient
		}
		return TranscriptionResponse{}, services.Wrap(marker, "transcribe", "openai",
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload))), nil)
	}

	var parsed TranscriptionResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return TranscriptionResponse{}, fmt.Errorf("openai client: decode response: %w", err)
	}
	return parsed, nil
}
