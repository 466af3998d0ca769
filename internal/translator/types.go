// Package translator defines the translation backend abstraction and its two
// implementations: a local Ollama LLM and the Google Cloud Translation API.
package translator

import (
	"context"
	"time"
)

// ServiceConfig carries per-call provider settings. Zero values select each
// provider's defaults.
type ServiceConfig struct {
	Credentials string        `mapstructure:"credentials" json:"credentials"`
	Model       string        `mapstructure:"model" json:"model"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
}

type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// ServiceResult is the tagged outcome of a single backend call. A failure is
// carried in the Error field (plus a Go error from Translate), never encoded
// inside TranslatedText.
type ServiceResult struct {
	ServiceName    string            `json:"service_name"`
	TranslatedText string            `json:"translated_text"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	Latency        time.Duration     `json:"latency"`
	Error          string            `json:"error,omitempty"`
}

// TranslationService is a single interchangeable translation provider.
type TranslationService interface {
	Name() string
	Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error)
	IsAvailable(ctx context.Context) error
	SupportedLanguages(ctx context.Context) ([]string, error)
}
