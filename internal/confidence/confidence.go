// Package confidence computes a heuristic 0–1 quality estimate for a
// translation from glossary coverage, length plausibility, and basic
// validity. It is not a statistical measure.
package confidence

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Sub-score caps. The three factors sum to at most 100 points, which is then
// scaled into [0, 1].
const (
	glossaryCap        = 40.0
	lengthScoreInner   = 30.0
	lengthScoreOuter   = 15.0
	lengthScoreFar     = 5.0
	validationScoreOK  = 30.0
	validationScoreLow = 10.0
)

// Score returns a confidence value in [0, 1], rounded to two decimals.
//
// Factors:
//   - glossary coverage: matchCount per source word, scaled ×100, capped at 40
//   - length ratio: 30 points when translated/source rune-length ratio is in
//     [0.5, 2.0], 15 points in [0.3, 3.0], 5 otherwise
//   - validity: 30 points when the translation is longer than 10 characters,
//     10 otherwise
//
// A failed translation never reaches this function; the engine forces the
// result confidence to 0 based on the result status.
func Score(source, translated string, matchCount int) float64 {
	sourceWords := float64(len(strings.Fields(source)))
	glossaryScore := math.Min(glossaryCap, float64(matchCount)/math.Max(sourceWords, 1)*100)

	srcLen := float64(utf8.RuneCountInString(source))
	dstLen := float64(utf8.RuneCountInString(translated))
	ratio := dstLen / math.Max(srcLen, 1)

	var lengthScore float64
	switch {
	case ratio >= 0.5 && ratio <= 2.0:
		lengthScore = lengthScoreInner
	case ratio >= 0.3 && ratio <= 3.0:
		lengthScore = lengthScoreOuter
	default:
		lengthScore = lengthScoreFar
	}

	validationScore := validationScoreLow
	if utf8.RuneCountInString(translated) > 10 {
		validationScore = validationScoreOK
	}

	total := math.Min(100, glossaryScore+lengthScore+validationScore)
	return math.Round(total) / 100
}
