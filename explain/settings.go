// Package explain asks an external language model (Gemini or OpenRouter) to
// explain training results.
package explain

import (
	"strings"

	"github.com/YuminosukeSato/mllab/pkg/errors"
)

// Service identifies an explanation backend.
type Service string

const (
	Gemini     Service = "gemini"
	OpenRouter Service = "openrouter"
)

// DefaultGeminiModel is the Gemini model used for explanations.
const DefaultGeminiModel = "gemini-2.5-flash"

// OpenRouterModels are the selectable OpenRouter models; the first is the default.
var OpenRouterModels = []string{
	"mistralai/mistral-7b-instruct-free",
	"google/gemma-7b-it-free",
	"nousresearch/nous-hermes-2-mixtral-8x7b-dpo",
	"openchat/openchat-7b",
}

// Environment variables read by SettingsFromEnv.
const (
	EnvService          = "MLLAB_SERVICE"
	EnvGeminiAPIKey     = "GEMINI_API_KEY"
	EnvOpenRouterAPIKey = "OPENROUTER_API_KEY"
	EnvOpenRouterModel  = "OPENROUTER_MODEL"
)

// ParseService accepts "gemini" or "openrouter" in any case.
func ParseService(s string) (Service, error) {
	switch Service(strings.ToLower(strings.TrimSpace(s))) {
	case Gemini:
		return Gemini, nil
	case OpenRouter:
		return OpenRouter, nil
	}
	return "", errors.NewValidationError("service", "must be gemini or openrouter", s)
}

// Settings selects a backend and holds its credentials.
type Settings struct {
	Service          Service `json:"service"`
	GeminiAPIKey     string  `json:"geminiApiKey"`
	OpenRouterAPIKey string  `json:"openRouterApiKey"`
	OpenRouterModel  string  `json:"openRouterModel"`
}

// DefaultSettings uses Gemini with no keys.
func DefaultSettings() Settings {
	return Settings{Service: Gemini, OpenRouterModel: OpenRouterModels[0]}
}

// SettingsFromEnv overrides DefaultSettings from the environment. getenv is
// usually os.Getenv.
func SettingsFromEnv(getenv func(string) string) (Settings, error) {
	s := DefaultSettings()
	if v := getenv(EnvService); v != "" {
		svc, err := ParseService(v)
		if err != nil {
			return s, err
		}
		s.Service = svc
	}
	s.GeminiAPIKey = getenv(EnvGeminiAPIKey)
	s.OpenRouterAPIKey = getenv(EnvOpenRouterAPIKey)
	if v := getenv(EnvOpenRouterModel); v != "" {
		s.OpenRouterModel = v
	}
	return s, nil
}

// Configured reports whether the selected service has an API key.
func (s Settings) Configured() bool {
	switch s.Service {
	case Gemini:
		return s.GeminiAPIKey != ""
	case OpenRouter:
		return s.OpenRouterAPIKey != ""
	}
	return false
}
