package confidence

import (
	"math"
	"strings"
	"testing"
)

func TestScore_Range(t *testing.T) {
	cases := []struct {
		name       string
		source     string
		translated string
		matches    int
	}{
		{"empty both", "", "", 0},
		{"empty translation", "some source text", "", 0},
		{"normal", "The patient has hypertension.", "Mgonjwa ana shinikizo la damu.", 1},
		{"huge match count", "one", strings.Repeat("x", 50), 1000},
		{"long translation", "short", strings.Repeat("word ", 200), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.source, tc.translated, tc.matches)
			if got < 0 || got > 1 {
				t.Errorf("score %v out of [0,1]", got)
			}
			// Rounded to exactly two decimals.
			if math.Abs(got*100-math.Round(got*100)) > 1e-9 {
				t.Errorf("score %v not rounded to 2 decimals", got)
			}
		})
	}
}

func TestScore_Factors(t *testing.T) {
	// 5 source words, 1 match → glossary 20; ratio in [0.5,2.0] → 30;
	// translation longer than 10 chars → 30. Total 80 → 0.8.
	source := "The patient has severe hypertension."
	translated := "Mgonjwa ana shinikizo kali la damu."

	got := Score(source, translated, 1)
	if got != 0.8 {
		t.Errorf("expected 0.80, got %v", got)
	}
}

func TestScore_GlossaryCap(t *testing.T) {
	// 2 words, 2 matches → raw glossary 100, capped at 40. Length ratio 1 →
	// 30. Validation (>10 chars) → 30. Total 100 → 1.0.
	got := Score("blood pressure", "shinikizo damu", 2)
	if got != 1.0 {
		t.Errorf("expected 1.00, got %v", got)
	}
}

func TestScore_LengthBands(t *testing.T) {
	source := strings.Repeat("a", 100) // 100 chars, 1 word

	cases := []struct {
		name    string
		dstLen  int
		wantMin float64
		wantMax float64
	}{
		// validation 30 for all (len > 10); glossary 0.
		{"ratio 1.0 inner band", 100, 0.60, 0.60},
		{"ratio 0.5 inner edge", 50, 0.60, 0.60},
		{"ratio 2.0 inner edge", 200, 0.60, 0.60},
		{"ratio 0.3 outer edge", 30, 0.45, 0.45},
		{"ratio 3.0 outer edge", 300, 0.45, 0.45},
		{"ratio 4.0 far", 400, 0.35, 0.35},
		{"ratio 0.2 far", 20, 0.35, 0.35},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(source, strings.Repeat("b", tc.dstLen), 0)
			if got < tc.wantMin || got > tc.wantMax {
				t.Errorf("expected score in [%v,%v], got %v", tc.wantMin, tc.wantMax, got)
			}
		})
	}
}

func TestScore_ValidationThreshold(t *testing.T) {
	source := strings.Repeat("a", 20)

	// 11 chars → 30 validation points; ratio 0.55 → inner band 30. Total 60.
	if got := Score(source, strings.Repeat("b", 11), 0); got != 0.6 {
		t.Errorf("expected 0.60 for 11-char translation, got %v", got)
	}
	// 10 chars → only 10 validation points; ratio 0.5 → inner band 30. Total 40.
	if got := Score(source, strings.Repeat("b", 10), 0); got != 0.4 {
		t.Errorf("expected 0.40 for 10-char translation, got %v", got)
	}
}

func TestScore_EmptySource(t *testing.T) {
	// max(wordCount,1) and max(len,1) guards: no division by zero.
	got := Score("", "some translated text", 0)
	if got < 0 || got > 1 {
		t.Errorf("score %v out of [0,1]", got)
	}
}
