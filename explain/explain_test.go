package explain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mllab/linear"
	"github.com/YuminosukeSato/mllab/metrics"
	"github.com/YuminosukeSato/mllab/pkg/errors"
)

func TestParseService(t *testing.T) {
	svc, err := ParseService(" OpenRouter ")
	require.NoError(t, err)
	assert.Equal(t, OpenRouter, svc)

	_, err = ParseService("claude")
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestSettingsFromEnv(t *testing.T) {
	env := map[string]string{
		EnvService:          "openrouter",
		EnvOpenRouterAPIKey: "or-key",
	}
	s, err := SettingsFromEnv(func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, OpenRouter, s.Service)
	assert.Equal(t, OpenRouterModels[0], s.OpenRouterModel)
	assert.True(t, s.Configured())

	s, err = SettingsFromEnv(func(string) string { return "" })
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
	assert.False(t, s.Configured())

	env[EnvService] = "other"
	_, err = SettingsFromEnv(func(k string) string { return env[k] })
	assert.Error(t, err)
}

func TestNewMissingKey(t *testing.T) {
	_, err := New(Settings{Service: Gemini})
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
	_, err = New(Settings{Service: OpenRouter, GeminiAPIKey: "not-this-one"})
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
	_, err = New(Settings{Service: "other", GeminiAPIKey: "k"})
	assert.Error(t, err)
}

func TestGeminiExplain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, SystemInstruction, req.SystemInstruction.Parts[0].Text)
		assert.Equal(t, "why?", req.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Because "},{"text":"gradients."}]}}]}`))
	}))
	defer srv.Close()

	e, err := New(Settings{Service: Gemini, GeminiAPIKey: "g-key"}, WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)
	got, err := e.Explain(context.Background(), "why?")
	require.NoError(t, err)
	assert.Equal(t, "Because gradients.", got)
}

func TestOpenRouterExplain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))
		assert.Equal(t, "https://interactive-ml-lab", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "Interactive ML Lab", r.Header.Get("X-Title"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "openchat/openchat-7b", req.Model)
		if !assert.Len(t, req.Messages, 2) {
			return
		}
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"A line of best fit."}}]}`))
	}))
	defer srv.Close()

	e, err := New(Settings{Service: OpenRouter, OpenRouterAPIKey: "or-key", OpenRouterModel: "openchat/openchat-7b"},
		WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	got, err := e.Explain(context.Background(), "explain")
	require.NoError(t, err)
	assert.Equal(t, "A line of best fit.", got)
}

func TestExplainAPIErrors(t *testing.T) {
	tests := []struct {
		name    string
		service Service
		status  int
		body    string
		wantMsg string
	}{
		{"openrouter message", OpenRouter, http.StatusUnauthorized, `{"error":{"message":"No auth credentials found"}}`, "No auth credentials found"},
		{"openrouter non-json", OpenRouter, http.StatusBadGateway, `<html>bad gateway</html>`, "HTTP error! status: 502"},
		{"gemini message", Gemini, http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid"}}`, "API key not valid"},
		{"gemini empty", Gemini, http.StatusOK, `{"candidates":[]}`, "no candidates"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			e, err := New(Settings{Service: tt.service, GeminiAPIKey: "k", OpenRouterAPIKey: "k"}, WithBaseURL(srv.URL))
			require.NoError(t, err)
			_, err = e.Explain(context.Background(), "p")

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "%v", err)
			assert.Equal(t, tt.service, apiErr.Service)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Contains(t, apiErr.Message, tt.wantMsg)
		})
	}
}

func TestExplainCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	e, err := New(Settings{Service: Gemini, GeminiAPIKey: "k"}, WithBaseURL(srv.URL))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Explain(ctx, "p")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPrompts(t *testing.T) {
	p := LinearRegressionPrompt(linear.LineParams{Slope: 1.01678, Intercept: 0.66381}, 0.123456)
	assert.Contains(t, p, "- Slope: 1.0168")
	assert.Contains(t, p, "- Intercept: 0.6638")
	assert.Contains(t, p, "(MSE) on test data: 0.1235")

	p = LogisticRegressionPrompt(66.666, metrics.ConfusionMatrix{{1, 0}, {1, 1}})
	assert.Contains(t, p, "- Accuracy: 66.67%")
	assert.Contains(t, p, "True Negatives (TN): 1")
	assert.Contains(t, p, "False Negatives (FN): 1")

	assert.Contains(t, DecisionTreePrompt(3), "max depth of 3.")

	p = QuizPrompt("What is 2?", "Clustering", "Classification")
	assert.Contains(t, p, `Question: "What is 2?"`)
	assert.Contains(t, p, `Their answer was: "Clustering"`)
	assert.Contains(t, p, `The correct answer is: "Classification"`)
}
