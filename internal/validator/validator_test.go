package validator

import (
	"strings"
	"testing"
)

func TestIsValid_EmptyTargetLang(t *testing.T) {
	v := New()
	ok, err := v.IsValid("anything at all goes here", "")
	if !ok || err != nil {
		t.Errorf("expected pass with empty target language, got ok=%v err=%v", ok, err)
	}
}

func TestIsValid_EmptyTranslation(t *testing.T) {
	v := New()
	ok, err := v.IsValid("   ", "sw")
	if ok || err == nil {
		t.Errorf("expected failure for empty translation, got ok=%v err=%v", ok, err)
	}
}

func TestIsValid_ShortTextPasses(t *testing.T) {
	v := New()
	ok, err := v.IsValid("habari", "sw")
	if !ok || err != nil {
		t.Errorf("expected short text to pass unchecked, got ok=%v err=%v", ok, err)
	}
}

func TestIsValid_MatchingLanguage(t *testing.T) {
	v := New()
	text := "The quick brown fox jumps over the lazy dog near the river bank."
	ok, err := v.IsValid(text, "en")
	if !ok || err != nil {
		t.Errorf("expected English text to validate as en, got ok=%v err=%v", ok, err)
	}
}

func TestIsValid_MismatchedLanguage(t *testing.T) {
	v := New()
	text := "The quick brown fox jumps over the lazy dog near the river bank."
	ok, err := v.IsValid(text, "sw")
	if ok || err == nil {
		t.Fatalf("expected mismatch for English text against sw, got ok=%v err=%v", ok, err)
	}
	if !strings.Contains(err.Error(), "expected sw") {
		t.Errorf("error should name the expected language: %v", err)
	}
}
