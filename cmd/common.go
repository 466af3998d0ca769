/*
Copyright © 2025 Tafsiri Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/amolo/tafsiri/internal/cache"
	"github.com/amolo/tafsiri/internal/engine"
	"github.com/amolo/tafsiri/internal/glossary"
	"github.com/amolo/tafsiri/internal/store"
	"github.com/amolo/tafsiri/internal/translator"
	"github.com/amolo/tafsiri/internal/validator"
)

// buildChain constructs the fallback chain from service names in order.
// Known services: ollama (local LLM), google (cloud API).
func buildChain(serviceNames []string, ollamaURL, ollamaModel string, timeout time.Duration) (*translator.Chain, error) {
	var list []translator.TranslationService

	for _, name := range serviceNames {
		switch name {
		case "ollama":
			list = append(list, translator.NewOllamaTranslator(ollamaURL, ollamaModel))
		case "google":
			list = append(list, translator.NewGoogleService())
		default:
			fmt.Fprintf(os.Stderr, "Unknown service: %s, skipping\n", name)
		}
	}

	if len(list) == 0 {
		return nil, fmt.Errorf("no valid services configured")
	}
	return translator.NewChain(list, timeout, logger), nil
}

// buildEngine wires glossary, backend chain, memo, and optional store into a
// ready engine. The returned store (possibly nil) must be closed by the
// caller.
func buildEngine(p engineParams) (*engine.Engine, *store.Store, error) {
	chain, err := buildChain(p.services, p.ollamaURL, p.ollamaModel, p.timeout)
	if err != nil {
		return nil, nil, err
	}

	var db *store.Store
	if !p.noStore && p.dbPath != "" {
		db, err = store.New(p.dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
	}

	g := glossary.Empty(logger)
	if p.glossaryPath != "" {
		g = glossary.Load(p.glossaryPath, logger)
	}

	eng := engine.New(engine.Config{
		SourceLang: p.sourceLang,
		TargetLang: p.targetLang,
		Glossary:   g,
		Backend:    chain,
		Cache:      cache.NewLRU[*engine.Result](p.cacheSize, p.cacheTTL),
		Store:      db,
		Validator:  validator.New(),
		ServiceConfig: translator.ServiceConfig{
			Credentials: p.credentials,
			Model:       p.ollamaModel,
			BaseURL:     p.ollamaURL,
		},
		Logger: logger,
	})
	return eng, db, nil
}

type engineParams struct {
	sourceLang   string
	targetLang   string
	glossaryPath string
	services     []string
	ollamaURL    string
	ollamaModel  string
	credentials  string
	timeout      time.Duration
	dbPath       string
	noStore      bool
	cacheSize    int
	cacheTTL     time.Duration
}

// printReport writes the human-readable translation report, mirroring the
// fields users relied on in the original demo output.
func printReport(result *engine.Result) {
	fmt.Println(strings.Repeat("-", 70))
	fmt.Println(result.Text)
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Confidence:        %.1f%%\n", result.Confidence*100)
	fmt.Printf("Word count:        %d\n", result.WordCount)
	fmt.Printf("Engine:            %s\n", result.Engine)
	fmt.Printf("Status:            %s\n", result.Status)
	fmt.Printf("Glossary matches:  %d\n", len(result.Matches))

	if len(result.Matches) > 0 {
		fmt.Println("\nGlossary terms applied:")
		for i, m := range result.Matches {
			fmt.Printf("%2d. %-25s → %s (offset %d", i+1, m.Source, m.Target, m.Position)
			if m.Context != "" {
				fmt.Printf(", context %s", m.Context)
			}
			fmt.Printf(", confidence %.2f)\n", m.Confidence)
		}
	}

	if cov, ok := result.Metadata["glossary_coverage"]; ok {
		fmt.Printf("\nGlossary coverage: %s\n", cov)
	}
	if domain, ok := result.Metadata["domain"]; ok && domain != "" {
		fmt.Printf("Domain:            %s\n", domain)
	}
}
