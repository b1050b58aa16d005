package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/YuminosukeSato/mllab/pkg/errors"
	"github.com/YuminosukeSato/mllab/pkg/log"
)

// SystemInstruction is sent with every request.
const SystemInstruction = "You are an expert Machine Learning tutor. Explain the following concept or result to a university student in a clear, concise, and helpful way. Use Markdown for formatting if it helps clarity."

const (
	defaultGeminiBaseURL     = "https://generativelanguage.googleapis.com/v1beta"
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultTimeout           = 60 * time.Second

	referer = "https://interactive-ml-lab"
	title   = "Interactive ML Lab"
)

// ErrMissingAPIKey is returned when the selected service has no key.
var ErrMissingAPIKey = errors.New("api key is not set")

// APIError carries the message reported by a backend.
type APIError struct {
	Service    Service
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("error from %s API (status %d): %s", e.Service, e.StatusCode, e.Message)
}

// Explainer turns a prompt into an explanation.
type Explainer interface {
	Explain(ctx context.Context, prompt string) (string, error)
}

type clientConfig struct {
	httpClient  *http.Client
	baseURL     string
	geminiModel string
}

// Option configures New.
type Option func(*clientConfig)

// WithHTTPClient replaces the HTTP client (default: 60s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) {
		cfg.httpClient = c
	}
}

// WithBaseURL points the client at another endpoint, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(cfg *clientConfig) {
		cfg.baseURL = strings.TrimRight(u, "/")
	}
}

// WithGeminiModel overrides DefaultGeminiModel.
func WithGeminiModel(m string) Option {
	return func(cfg *clientConfig) {
		cfg.geminiModel = m
	}
}

// New returns the client for settings.Service.
func New(settings Settings, opts ...Option) (Explainer, error) {
	cfg := &clientConfig{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		geminiModel: DefaultGeminiModel,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch settings.Service {
	case Gemini:
		if settings.GeminiAPIKey == "" {
			return nil, errors.Wrap(ErrMissingAPIKey, "gemini")
		}
		if cfg.baseURL == "" {
			cfg.baseURL = defaultGeminiBaseURL
		}
		return &geminiClient{cfg: *cfg, apiKey: settings.GeminiAPIKey}, nil
	case OpenRouter:
		if settings.OpenRouterAPIKey == "" {
			return nil, errors.Wrap(ErrMissingAPIKey, "openrouter")
		}
		if cfg.baseURL == "" {
			cfg.baseURL = defaultOpenRouterBaseURL
		}
		model := settings.OpenRouterModel
		if model == "" {
			model = OpenRouterModels[0]
		}
		return &openRouterClient{cfg: *cfg, apiKey: settings.OpenRouterAPIKey, model: model}, nil
	}
	return nil, errors.NewValidationError("service", "must be gemini or openrouter", settings.Service)
}

type geminiClient struct {
	cfg    clientConfig
	apiKey string
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction geminiContent   `json:"systemInstruction"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *errorBody `json:"error"`
}

func (c *geminiClient) Explain(ctx context.Context, prompt string) (string, error) {
	body := geminiRequest{
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: SystemInstruction}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.baseURL, url.PathEscape(c.cfg.geminiModel))
	headers := map[string]string{"x-goog-api-key": c.apiKey}

	var resp geminiResponse
	status, err := postJSON(ctx, c.cfg.httpClient, endpoint, headers, body, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != nil || status >= 300 {
		return "", apiError(Gemini, status, resp.Error)
	}
	if len(resp.Candidates) == 0 {
		return "", &APIError{Service: Gemini, StatusCode: status, Message: "no candidates in response"}
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}

type openRouterClient struct {
	cfg    clientConfig
	apiKey string
	model  string
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
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *errorBody `json:"error"`
}

func (c *openRouterClient) Explain(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemInstruction},
			{Role: "user", Content: prompt},
		},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
		"HTTP-Referer":  referer,
		"X-Title":       title,
	}

	var resp chatResponse
	status, err := postJSON(ctx, c.cfg.httpClient, c.cfg.baseURL+"/chat/completions", headers, body, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != nil || status >= 300 {
		return "", apiError(OpenRouter, status, resp.Error)
	}
	if len(resp.Choices) == 0 {
		return "", &APIError{Service: OpenRouter, StatusCode: status, Message: "no choices in response"}
	}
	return resp.Choices[0].Message.Content, nil
}

type errorBody struct {
	Message string `json:"message"`
}

func apiError(svc Service, status int, e *errorBody) error {
	msg := fmt.Sprintf("HTTP error! status: %d", status)
	if e != nil && e.Message != "" {
		msg = e.Message
	}
	return errors.WithStack(&APIError{Service: svc, StatusCode: status, Message: msg})
}

// postJSON sends body and decodes the response into out. A non-JSON error
// body is not an error here; the caller inspects the status.
func postJSON(ctx context.Context, client *http.Client, endpoint string, headers map[string]string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, errors.Wrap(err, "encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logger := log.GetLoggerWithName("explain")
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()
	logger.Debug("explanation request finished",
		"http.status", resp.StatusCode,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, errors.Wrap(err, "read response")
	}
	if err := json.Unmarshal(data, out); err != nil && resp.StatusCode < 300 {
		return resp.StatusCode, errors.Wrap(err, "decode response")
	}
	return resp.StatusCode, nil
}
