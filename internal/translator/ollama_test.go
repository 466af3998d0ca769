package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaTranslator_Name(t *testing.T) {
	svc := NewOllamaTranslator("", "")
	if svc.Name() != "ollama" {
		t.Errorf("expected 'ollama', got %q", svc.Name())
	}
}

func TestOllamaTranslator_Translate(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "Mgonjwa ana shinikizo la damu."})
	}))
	defer server.Close()

	svc := NewOllamaTranslator(server.URL, "mistral")
	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text:       "The patient has hypertension.",
		SourceLang: "en",
		TargetLang: "sw",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TranslatedText != "Mgonjwa ana shinikizo la damu." {
		t.Errorf("unexpected translation: %q", result.TranslatedText)
	}
	if result.Error != "" {
		t.Errorf("expected empty error field, got %q", result.Error)
	}
	if result.Metadata["model"] != "mistral" {
		t.Errorf("expected model metadata, got %v", result.Metadata)
	}

	if gotBody["model"] != "mistral" {
		t.Errorf("expected model 'mistral' in request, got %v", gotBody["model"])
	}
	if gotBody["stream"] != false {
		t.Errorf("expected stream=false, got %v", gotBody["stream"])
	}
	prompt, _ := gotBody["prompt"].(string)
	if !strings.Contains(prompt, "The patient has hypertension.") {
		t.Error("expected source text embedded in prompt")
	}
	if !strings.Contains(prompt, "from en to sw") {
		t.Error("expected language pair in prompt")
	}
}

func TestOllamaTranslator_Translate_CleansArtifacts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": `"Habari ya dunia."`})
	}))
	defer server.Close()

	svc := NewOllamaTranslator(server.URL, "")
	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text: "Hello world.", SourceLang: "en", TargetLang: "sw",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TranslatedText != "Habari ya dunia." {
		t.Errorf("expected quote wrapping removed, got %q", result.TranslatedText)
	}
}

func TestOllamaTranslator_Translate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewOllamaTranslator(server.URL, "")
	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text: "Hello", SourceLang: "en", TargetLang: "sw",
	})

	if err == nil {
		t.Error("expected error for 500 status")
	}
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if result.Error == "" {
		t.Error("expected error message in result")
	}
	if result.TranslatedText != "" {
		t.Errorf("failed call must not carry translated text, got %q", result.TranslatedText)
	}
	if result.Latency <= 0 {
		t.Error("expected positive latency")
	}
}

func TestOllamaTranslator_Translate_ConnectionRefused(t *testing.T) {
	// Closed server: connection errors are tagged, not panicked.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := NewOllamaTranslator(server.URL, "")
	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{
		Text: "Hello", SourceLang: "en", TargetLang: "sw",
	})

	if err == nil {
		t.Error("expected error for refused connection")
	}
	if result.Error == "" {
		t.Error("expected error message in result")
	}
}

func TestOllamaTranslator_ModelOverride(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		gotModel, _ = body["model"].(string)
		json.NewEncoder(w).Encode(map[string]string{"response": "ok ok ok ok"})
	}))
	defer server.Close()

	svc := NewOllamaTranslator(server.URL, "mistral")
	_, err := svc.Translate(context.Background(), ServiceConfig{Model: "llama3.2"}, TranslateRequest{
		Text: "Hello", SourceLang: "en", TargetLang: "sw",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotModel != "llama3.2" {
		t.Errorf("expected config model to win, got %q", gotModel)
	}
}

func TestOllamaTranslator_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewOllamaTranslator(server.URL, "")
	if err := svc.IsAvailable(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOllamaTranslator_SupportedLanguages(t *testing.T) {
	svc := NewOllamaTranslator("", "")
	langs, err := svc.SupportedLanguages(context.Background())
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(langs) == 0 {
		t.Error("expected non-empty language list")
	}
}
