package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/amolo/tafsiri/internal/cache"
	"github.com/amolo/tafsiri/internal/glossary"
	"github.com/amolo/tafsiri/internal/store"
	"github.com/amolo/tafsiri/internal/translator"
)

type mockBackend struct {
	calls       int
	translateFn func(req translator.TranslateRequest) (*translator.ServiceResult, error)
}

func (m *mockBackend) Translate(ctx context.Context, cfg translator.ServiceConfig, req translator.TranslateRequest) (*translator.ServiceResult, error) {
	m.calls++
	if m.translateFn != nil {
		return m.translateFn(req)
	}
	return &translator.ServiceResult{
		ServiceName:    "mock",
		TranslatedText: "Mgonjwa ana shinikizo la damu kali.",
	}, nil
}

func failingBackend() *mockBackend {
	return &mockBackend{
		translateFn: func(req translator.TranslateRequest) (*translator.ServiceResult, error) {
			return &translator.ServiceResult{ServiceName: "mock", Error: "connection refused"},
				errors.New("connection refused")
		},
	}
}

func testGlossary(t *testing.T) *glossary.Glossary {
	t.Helper()
	path := filepath.Join(t.TempDir(), "medical.json")
	content := `{"medical": [{"source": "hypertension", "target": "shinikizo la damu", "context": "medical"}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write glossary: %v", err)
	}
	return glossary.Load(path, nil)
}

func newTestEngine(t *testing.T, backend Backend) *Engine {
	t.Helper()
	return New(Config{
		SourceLang: "en",
		TargetLang: "sw",
		Glossary:   testGlossary(t),
		Backend:    backend,
		Cache:      cache.NewLRU[*Result](16, 0),
	})
}

func TestTranslateText_Success(t *testing.T) {
	backend := &mockBackend{}
	e := newTestEngine(t, backend)

	result, err := e.TranslateText(context.Background(), "The patient has severe hypertension.", Options{Domain: "medical"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != StatusSuccess {
		t.Errorf("expected success status, got %q", result.Status)
	}
	if result.ErrorKind != KindNone {
		t.Errorf("expected no error kind, got %q", result.ErrorKind)
	}
	if result.Text != "Mgonjwa ana shinikizo la damu kali." {
		t.Errorf("unexpected text: %q", result.Text)
	}
	if result.Engine != "mock" {
		t.Errorf("unexpected engine: %q", result.Engine)
	}
	if result.WordCount != 5 {
		t.Errorf("expected word count 5, got %d", result.WordCount)
	}
	if len(result.Matches) != 1 || result.Matches[0].Source != "hypertension" {
		t.Errorf("expected one match for hypertension, got %v", result.Matches)
	}
	// 1 match over 5 words.
	if result.Metadata["glossary_coverage"] != "0.2" {
		t.Errorf("expected coverage 0.2, got %q", result.Metadata["glossary_coverage"])
	}
	if result.Confidence <= 0 || result.Confidence > 1 {
		t.Errorf("confidence %v out of range", result.Confidence)
	}
}

func TestTranslateText_Memoized(t *testing.T) {
	backend := &mockBackend{}
	e := newTestEngine(t, backend)

	first, err := e.TranslateText(context.Background(), "The patient has severe hypertension.", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := e.TranslateText(context.Background(), "The patient has severe hypertension.", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if backend.calls != 1 {
		t.Errorf("expected exactly 1 backend call, got %d", backend.calls)
	}
	if first != second {
		t.Error("expected memoized call to return the cached result")
	}
}

func TestTranslateText_NoCache(t *testing.T) {
	backend := &mockBackend{}
	e := New(Config{
		SourceLang: "en",
		TargetLang: "sw",
		Backend:    backend,
	})

	for i := 0; i < 2; i++ {
		if _, err := e.TranslateText(context.Background(), "hello there friend", Options{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if backend.calls != 2 {
		t.Errorf("expected 2 backend calls without a cache, got %d", backend.calls)
	}
}

func TestTranslateText_BackendFailure(t *testing.T) {
	e := newTestEngine(t, failingBackend())

	result, err := e.TranslateText(context.Background(), "The patient has severe hypertension.", Options{Domain: "medical"})
	if err == nil {
		t.Fatal("expected error on backend failure")
	}

	if result.Status != StatusError {
		t.Errorf("expected error status, got %q", result.Status)
	}
	if result.ErrorKind != KindBackendFailure {
		t.Errorf("expected backend_failure kind, got %q", result.ErrorKind)
	}
	if result.Text != "" {
		t.Errorf("failed result must not carry text, got %q", result.Text)
	}
	if result.Confidence != 0 {
		t.Errorf("expected confidence 0, got %v", result.Confidence)
	}
	// Glossary matches are still reported for a failed translation.
	if len(result.Matches) != 1 {
		t.Errorf("expected glossary matches on failure, got %v", result.Matches)
	}
	if result.Metadata["error"] == "" {
		t.Error("expected error detail in metadata")
	}
}

func TestTranslateText_FailureNotCached(t *testing.T) {
	backend := failingBackend()
	e := newTestEngine(t, backend)

	e.TranslateText(context.Background(), "hello there", Options{})
	e.TranslateText(context.Background(), "hello there", Options{})

	if backend.calls != 2 {
		t.Errorf("failed results must not be memoized; got %d backend calls", backend.calls)
	}
}

func TestTranslateText_PreserveFormattingMetadata(t *testing.T) {
	e := newTestEngine(t, &mockBackend{})

	result, err := e.TranslateText(context.Background(), "hello", Options{PreserveFormatting: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Metadata["preserve_formatting"] != "true" {
		t.Error("expected preserve_formatting recorded in metadata")
	}
}

func TestTranslateText_DurableMemory(t *testing.T) {
	db, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer db.Close()

	backend := &mockBackend{}
	e := New(Config{
		SourceLang: "en",
		TargetLang: "sw",
		Backend:    backend,
		Store:      db,
	})

	first, err := e.TranslateText(context.Background(), "good morning everyone", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := e.TranslateText(context.Background(), "good morning everyone", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if backend.calls != 1 {
		t.Errorf("expected durable memory to short-circuit the backend, got %d calls", backend.calls)
	}
	if second.Text != first.Text {
		t.Errorf("memory hit returned %q, want %q", second.Text, first.Text)
	}
	if second.Metadata["cache"] != "memory" {
		t.Errorf("expected memory hit marker, got %v", second.Metadata)
	}
}

func TestTranslateDocument_Text(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	output := filepath.Join(dir, "output.txt")
	if err := os.WriteFile(input, []byte("The patient has severe hypertension."), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	e := newTestEngine(t, &mockBackend{})
	result, err := e.TranslateDocument(context.Background(), input, output, Options{Domain: "medical"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != StatusSuccess {
		t.Errorf("expected success, got %q", result.Status)
	}

	written, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(written) != result.Text {
		t.Errorf("output file %q does not match result %q", written, result.Text)
	}
}

func TestTranslateDocument_FileNotFound(t *testing.T) {
	e := newTestEngine(t, &mockBackend{})

	result, err := e.TranslateDocument(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), "", Options{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if result.Status != StatusError {
		t.Errorf("expected error status, got %q", result.Status)
	}
	if result.ErrorKind != KindFileNotFound {
		t.Errorf("expected file_not_found kind, got %q", result.ErrorKind)
	}
	if result.Engine != "none" {
		t.Errorf("expected engine 'none', got %q", result.Engine)
	}
}

func TestTranslateDocument_UnsupportedType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a,b,c"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	backend := &mockBackend{}
	e := newTestEngine(t, backend)

	result, err := e.TranslateDocument(context.Background(), path, "", Options{})
	if err == nil {
		t.Fatal("expected error for unsupported file type")
	}
	if result.ErrorKind != KindUnsupportedFile {
		t.Errorf("expected unsupported_file kind, got %q", result.ErrorKind)
	}
	if backend.calls != 0 {
		t.Error("backend must not be called for an unsupported file")
	}
}
