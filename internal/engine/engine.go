// Package engine composes glossary matching, backend translation, and
// confidence scoring into a single request/response cycle, with an injected
// bounded memo and an optional durable translation memory.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amolo/tafsiri/internal/cache"
	"github.com/amolo/tafsiri/internal/confidence"
	"github.com/amolo/tafsiri/internal/document"
	"github.com/amolo/tafsiri/internal/glossary"
	"github.com/amolo/tafsiri/internal/store"
	"github.com/amolo/tafsiri/internal/translator"
	"github.com/amolo/tafsiri/internal/validator"
)

// Status tags a Result as usable or failed.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrorKind classifies a failed Result. It replaces any error text embedded
// in the translated output; Text stays empty on failure.
type ErrorKind string

const (
	KindNone              ErrorKind = ""
	KindBackendFailure    ErrorKind = "backend_failure"
	KindFileNotFound      ErrorKind = "file_not_found"
	KindUnsupportedFile   ErrorKind = "unsupported_file"
	KindExtractionFailure ErrorKind = "extraction_failure"
)

// Result is the outcome of one translation cycle. Created once, never
// mutated afterwards; cached results are shared across callers.
type Result struct {
	Text       string            `json:"text"`
	Confidence float64           `json:"confidence_score"`
	Matches    []glossary.Match  `json:"glossary_matches"`
	WordCount  int               `json:"word_count"`
	Engine     string            `json:"engine_used"`
	Status     Status            `json:"status"`
	ErrorKind  ErrorKind         `json:"error_kind,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Options tune a single translate call.
type Options struct {
	// Domain filters glossary entries by context prefix.
	Domain string
	// PreserveFormatting is accepted for compatibility and recorded in
	// metadata. Formatting is inherently preserved: glossary matching is
	// report-only and the backend receives the text unchanged.
	PreserveFormatting bool
}

// Backend is the translation seam, satisfied by translator.Chain and by
// single services.
type Backend interface {
	Translate(ctx context.Context, cfg translator.ServiceConfig, req translator.TranslateRequest) (*translator.ServiceResult, error)
}

// Config assembles an Engine.
type Config struct {
	SourceLang string
	TargetLang string
	Glossary   *glossary.Glossary
	Backend    Backend
	// Cache is the in-process memo. Nil disables memoization.
	Cache cache.Cache[*Result]
	// Store is the durable translation memory. Nil disables persistence.
	Store *store.Store
	// Validator checks the output language; nil skips the check.
	Validator     *validator.Validator
	ServiceConfig translator.ServiceConfig
	Logger        *zap.Logger
}

// Engine runs translations for one language pair.
//
// Calls are synchronous and single-flight: the backend call blocks until it
// returns or times out. The memo is internally synchronized, but the engine
// itself makes no further concurrency guarantees.
type Engine struct {
	sourceLang string
	targetLang string
	glossary   *glossary.Glossary
	backend    Backend
	cache      cache.Cache[*Result]
	store      *store.Store
	validator  *validator.Validator
	svcCfg     translator.ServiceConfig
	logger     *zap.Logger
}

func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	g := cfg.Glossary
	if g == nil {
		g = glossary.Empty(logger)
	}
	return &Engine{
		sourceLang: cfg.SourceLang,
		targetLang: cfg.TargetLang,
		glossary:   g,
		backend:    cfg.Backend,
		cache:      cfg.Cache,
		store:      cfg.Store,
		validator:  cfg.Validator,
		svcCfg:     cfg.ServiceConfig,
		logger:     logger,
	}
}

// TranslateText runs the full cycle: memo lookup, glossary scan, backend
// call, scoring, result assembly. The glossary scan is detection-only — the
// backend receives the source text untouched and matches are reported in the
// result.
//
// The returned error is non-nil exactly when Result.Status is StatusError;
// the Result is always populated either way.
func (e *Engine) TranslateText(ctx context.Context, text string, opts Options) (*Result, error) {
	key := cache.Key(text, e.sourceLang, e.targetLang)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			e.logger.Debug("using memoized translation", zap.String("key_prefix", key[:min(len(key), 24)]))
			return cached, nil
		}
	}

	matches := e.glossary.Match(text, opts.Domain)
	wordCount := len(strings.Fields(text))

	coverage := float64(len(matches)) / float64(max(wordCount, 1))
	metadata := map[string]string{
		"domain":            opts.Domain,
		"glossary_coverage": strconv.FormatFloat(coverage, 'f', -1, 64),
	}
	if opts.PreserveFormatting {
		metadata["preserve_formatting"] = "true"
	}

	// Durable memory short-circuits the backend the same way the memo does.
	if translated, engineName, found := e.memoryLookup(ctx, text); found {
		result := e.assemble(text, translated, engineName, matches, wordCount, metadata)
		result.Metadata["cache"] = "memory"
		if e.cache != nil {
			e.cache.Add(key, result)
		}
		return result, nil
	}

	req := translator.TranslateRequest{
		Text:       text,
		SourceLang: e.sourceLang,
		TargetLang: e.targetLang,
	}

	svcRes, err := e.backend.Translate(ctx, e.svcCfg, req)
	if err != nil {
		detail := err.Error()
		engineName := "none"
		if svcRes != nil {
			engineName = svcRes.ServiceName
			if svcRes.Error != "" {
				detail = svcRes.Error
			}
		}
		e.logger.Error("translation failed",
			zap.String("engine", engineName), zap.String("detail", detail))
		metadata["error"] = detail
		result := &Result{
			Confidence: 0.0,
			Matches:    matches,
			WordCount:  wordCount,
			Engine:     engineName,
			Status:     StatusError,
			ErrorKind:  KindBackendFailure,
			Metadata:   metadata,
		}
		e.persist(ctx, text, opts.Domain, result, svcRes)
		return result, fmt.Errorf("translation failed: %w", err)
	}

	result := e.assemble(text, svcRes.TranslatedText, svcRes.ServiceName, matches, wordCount, metadata)
	if model, ok := svcRes.Metadata["model"]; ok {
		result.Metadata["model"] = model
	}

	if e.cache != nil {
		e.cache.Add(key, result)
	}
	e.persist(ctx, text, opts.Domain, result, svcRes)

	return result, nil
}

// assemble scores a successful translation and builds the final record.
func (e *Engine) assemble(source, translated, engineName string, matches []glossary.Match, wordCount int, metadata map[string]string) *Result {
	score := confidence.Score(source, translated, len(matches))

	if e.validator != nil {
		valid, verr := e.validator.IsValid(translated, e.targetLang)
		metadata["validated"] = strconv.FormatBool(valid)
		if verr != nil {
			e.logger.Warn("target language validation failed", zap.Error(verr))
		}
	}

	return &Result{
		Text:       translated,
		Confidence: score,
		Matches:    matches,
		WordCount:  wordCount,
		Engine:     engineName,
		Status:     StatusSuccess,
		Metadata:   metadata,
	}
}

// memoryLookup consults the durable translation memory.
func (e *Engine) memoryLookup(ctx context.Context, text string) (string, string, bool) {
	if e.store == nil {
		return "", "", false
	}
	translated, engineName, found, err := e.store.GetCachedTranslation(ctx, text, e.sourceLang, e.targetLang)
	if err != nil {
		e.logger.Warn("translation memory lookup failed", zap.Error(err))
		return "", "", false
	}
	if !found {
		return "", "", false
	}
	if engineName == "" {
		engineName = "memory"
	}
	return translated, engineName, true
}

// persist records the request and its outcome; persistence failures are
// logged, never surfaced.
func (e *Engine) persist(ctx context.Context, text, domain string, result *Result, svcRes *translator.ServiceResult) {
	if e.store == nil {
		return
	}

	reqID := uuid.New().String()
	if err := e.store.SaveRequest(ctx, store.Request{
		ID:         reqID,
		SourceText: text,
		SourceLang: e.sourceLang,
		TargetLang: e.targetLang,
		Domain:     domain,
		Timestamp:  time.Now(),
	}); err != nil {
		e.logger.Warn("failed to save request", zap.Error(err))
		return
	}

	var latencyMs int
	var errMsg string
	if svcRes != nil {
		latencyMs = int(svcRes.Latency.Milliseconds())
		errMsg = svcRes.Error
	}
	if err := e.store.SaveResult(ctx, reqID, result.Engine, result.Text, result.Confidence, len(result.Matches), latencyMs, errMsg); err != nil {
		e.logger.Warn("failed to save result", zap.Error(err))
	}

	if result.Status == StatusSuccess {
		if err := e.store.SaveToMemory(ctx, text, e.sourceLang, e.targetLang, result.Text, result.Engine); err != nil {
			e.logger.Warn("failed to save translation memory", zap.Error(err))
		}
	}
}

// TranslateDocument extracts text from inputPath, translates it, and when
// outputPath is non-empty writes the translation back in the output path's
// format. File problems come back as typed error results (file_not_found,
// unsupported_file, extraction_failure) with zero-valued fields, mirroring
// the error taxonomy of TranslateText.
func (e *Engine) TranslateDocument(ctx context.Context, inputPath, outputPath string, opts Options) (*Result, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		e.logger.Error("input file not found", zap.String("path", inputPath))
		return errorResult(KindFileNotFound, "file not found"),
			fmt.Errorf("file not found: %s", inputPath)
	}

	text, err := document.Extract(inputPath)
	if err != nil {
		if errors.Is(err, document.ErrUnsupported) {
			e.logger.Error("unsupported file type", zap.String("path", inputPath))
			return errorResult(KindUnsupportedFile, "unsupported file type"),
				fmt.Errorf("unsupported file type: %s", inputPath)
		}
		e.logger.Error("text extraction failed", zap.String("path", inputPath), zap.Error(err))
		return errorResult(KindExtractionFailure, err.Error()),
			fmt.Errorf("text extraction failed: %w", err)
	}

	result, err := e.TranslateText(ctx, text, opts)
	if err != nil {
		return result, err
	}

	if outputPath != "" {
		if err := document.Write(outputPath, result.Text); err != nil {
			return result, fmt.Errorf("failed to write output: %w", err)
		}
		e.logger.Info("translation saved", zap.String("path", outputPath))
	}

	return result, nil
}

func errorResult(kind ErrorKind, detail string) *Result {
	return &Result{
		Confidence: 0.0,
		Matches:    []glossary.Match{},
		Engine:     "none",
		Status:     StatusError,
		ErrorKind:  kind,
		Metadata:   map[string]string{"error": detail},
	}
}
