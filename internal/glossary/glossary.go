// Package glossary loads domain terminology files and scans source text for
// known terms. Matching is detection-only: the scanned text is never altered,
// matches are reported as metadata alongside the translation.
package glossary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Entry is a single term mapping. The lookup key (SourceTerm) is case-folded
// at load time; original casing survives only in TargetTerm.
type Entry struct {
	SourceTerm   string
	TargetTerm   string
	Context      string
	Confidence   float64
	Alternatives []string
}

// Glossary holds the loaded term table. Immutable after Load.
type Glossary struct {
	entries map[string]Entry
	logger  *zap.Logger
}

// term mirrors one object in the glossary file.
type term struct {
	Source       string   `json:"source" yaml:"source"`
	Target       string   `json:"target" yaml:"target"`
	Context      string   `json:"context" yaml:"context"`
	Confidence   *float64 `json:"confidence" yaml:"confidence"`
	Alternatives []string `json:"alternatives" yaml:"alternatives"`
}

// Empty returns a glossary with no entries.
func Empty(logger *zap.Logger) *Glossary {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Glossary{entries: map[string]Entry{}, logger: logger}
}

// Load reads a glossary file (categories mapped to term lists, JSON or YAML
// by extension) into a lookup table keyed by the case-folded source term.
//
// Load fails softly: a missing or malformed file is logged and an empty
// glossary is returned, so translation proceeds without terminology support
// rather than failing outright.
func Load(path string, logger *zap.Logger) *Glossary {
	g := Empty(logger)
	if path == "" {
		return g
	}

	data, err := os.ReadFile(path)
	if err != nil {
		g.logger.Warn("glossary file unreadable, continuing without glossary",
			zap.String("path", path), zap.Error(err))
		return g
	}

	categories := make(map[string][]term)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &categories)
	default:
		err = json.Unmarshal(data, &categories)
	}
	if err != nil {
		g.logger.Warn("glossary file malformed, continuing without glossary",
			zap.String("path", path), zap.Error(err))
		return g
	}

	for _, terms := range categories {
		for _, t := range terms {
			if t.Source == "" || t.Target == "" {
				continue
			}
			conf := 1.0
			if t.Confidence != nil {
				conf = *t.Confidence
			}
			key := strings.ToLower(t.Source)
			g.entries[key] = Entry{
				SourceTerm:   key,
				TargetTerm:   t.Target,
				Context:      t.Context,
				Confidence:   conf,
				Alternatives: t.Alternatives,
			}
		}
	}

	g.logger.Info("glossary loaded",
		zap.String("path", path), zap.Int("terms", len(g.entries)))
	return g
}

// Len returns the number of loaded terms.
func (g *Glossary) Len() int {
	return len(g.entries)
}

// Lookup returns the entry for a source term (case-insensitive).
func (g *Glossary) Lookup(sourceTerm string) (Entry, bool) {
	e, ok := g.entries[strings.ToLower(sourceTerm)]
	return e, ok
}

// Entries returns all loaded entries sorted by source term.
func (g *Glossary) Entries() []Entry {
	keys := make([]string, 0, len(g.entries))
	for k := range g.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, g.entries[k])
	}
	return entries
}
