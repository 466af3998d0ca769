// Package validator checks that a translation result is in the expected
// target language. Its verdict is advisory: it lands in the result metadata
// and never blocks a translation.
package validator

import (
	"fmt"
	"strings"

	"github.com/amolo/tafsiri/internal/detector"
)

// minValidationLength is the minimum rune count required to attempt language
// detection; shorter texts produce unreliable verdicts and pass unchecked.
const minValidationLength = 20

type Validator struct {
	det *detector.Detector
}

// New creates a Validator backed by the lingua-go language detector.
func New() *Validator {
	return &Validator{det: detector.New()}
}

// IsValid reports whether translatedText appears to be written in targetLang.
//
// Short texts and texts whose language cannot be determined pass without
// error. When the detected language differs from targetLang the returned
// error names both codes.
func (v *Validator) IsValid(translatedText, targetLang string) (bool, error) {
	if targetLang == "" {
		return true, nil
	}

	text := strings.TrimSpace(translatedText)
	if text == "" {
		return false, fmt.Errorf("translation is empty")
	}

	if len([]rune(text)) < minValidationLength {
		return true, nil
	}

	detected, ok := v.det.DetectISO(text)
	if !ok {
		return true, nil
	}

	if !strings.EqualFold(detected, targetLang) {
		return false, fmt.Errorf("expected %s but detected %s", targetLang, detected)
	}

	return true, nil
}
