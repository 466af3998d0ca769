package glossary

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Match records one occurrence of a glossary term in the scanned text.
type Match struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Position   int     `json:"position"`
	Confidence float64 `json:"confidence"`
	Context    string  `json:"context"`
}

// Match scans text for glossary terms and returns every occurrence found.
//
// Terms are tried longest first so a multi-word phrase is recorded before its
// sub-terms; this is a precedence order, not a non-overlap guarantee — a term
// and a shorter term contained in it are both reported when both occur at a
// word boundary. Matching is case-insensitive and requires word boundaries on
// both sides, so "heart" never matches inside "heartburn".
//
// When domain is non-empty, entries whose Context does not start with the
// domain string are skipped; entries with an empty Context always apply.
//
// The input text is not modified.
func (g *Glossary) Match(text, domain string) []Match {
	if len(g.entries) == 0 || text == "" {
		return nil
	}

	terms := make([]string, 0, len(g.entries))
	for t := range g.entries {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})

	var matches []Match
	for _, t := range terms {
		entry := g.entries[t]
		if domain != "" && entry.Context != "" && !strings.HasPrefix(entry.Context, domain) {
			continue
		}

		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(t) + `\b`)
		if err != nil {
			g.logger.Warn("glossary term not matchable",
				zap.String("term", t), zap.Error(err))
			continue
		}

		for _, loc := range re.FindAllStringIndex(text, -1) {
			matches = append(matches, Match{
				Source:     text[loc[0]:loc[1]],
				Target:     entry.TargetTerm,
				Position:   loc[0],
				Confidence: entry.Confidence,
				Context:    entry.Context,
			})
		}
	}

	return matches
}
