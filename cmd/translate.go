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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amolo/tafsiri/internal/detector"
	"github.com/amolo/tafsiri/internal/engine"
)

var (
	sourceLang   string
	targetLang   string
	glossaryPath string
	domain       string
	preserveFmt  bool

	services    []string
	ollamaURL   string
	ollamaModel string
	credentials string
	callTimeout time.Duration

	dbPath    string
	noCache   bool
	cacheSize int
	cacheTTL  time.Duration
)

var translateCmd = &cobra.Command{
	Use:   "translate <text>",
	Short: "Translate text with glossary annotation",
	Long: `Translate a text string through the configured backend chain and print a
report with the confidence score and glossary matches.

Available services (tried in order, first success wins):
  - ollama   Local Ollama LLM (self-hosted)
  - google   Google Cloud Translation API (requires credentials)

Glossary matches are reported as metadata; the text sent to the backend is
never rewritten.

Example:
  tafsiri translate "The patient has hypertension." \
    -s en -t sw --glossary glossaries/medical_terms.json --domain medical`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := args[0]
		ctx := context.Background()

		if sourceLang == "auto" {
			det := detector.New()
			if detected, ok := det.DetectISO(text); ok {
				sourceLang = detected
				fmt.Fprintf(os.Stderr, "Detected source language: %s\n", sourceLang)
			}
		}

		eng, db, err := buildEngine(engineParams{
			sourceLang:   sourceLang,
			targetLang:   targetLang,
			glossaryPath: glossaryPath,
			services:     services,
			ollamaURL:    ollamaURL,
			ollamaModel:  ollamaModel,
			credentials:  credentials,
			timeout:      callTimeout,
			dbPath:       dbPath,
			noStore:      noCache,
			cacheSize:    cacheSize,
			cacheTTL:     cacheTTL,
		})
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		result, err := eng.TranslateText(ctx, text, engine.Options{
			Domain:             domain,
			PreserveFormatting: preserveFmt,
		})
		if err != nil {
			printReport(result)
			return err
		}

		printReport(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "en", "Source language code, or 'auto' to detect")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "sw", "Target language code")
	translateCmd.Flags().StringVarP(&glossaryPath, "glossary", "g", "", "Glossary file (JSON or YAML)")
	translateCmd.Flags().StringVarP(&domain, "domain", "d", "", "Domain context for glossary filtering (e.g. medical)")
	translateCmd.Flags().BoolVar(&preserveFmt, "preserve-formatting", true, "Record formatting preservation in metadata")

	translateCmd.Flags().StringSliceVar(&services, "services", []string{"ollama", "google"}, "Backend chain, first to last fallback")
	translateCmd.Flags().StringVar(&ollamaURL, "ollama-url", "http://localhost:11434", "Ollama base URL")
	translateCmd.Flags().StringVar(&ollamaModel, "model", "", "Ollama model (default mistral)")
	translateCmd.Flags().StringVarP(&credentials, "credentials", "c", "", "Path to Google Cloud credentials")
	translateCmd.Flags().DurationVar(&callTimeout, "timeout", 120*time.Second, "Per-service call timeout")

	translateCmd.Flags().StringVar(&dbPath, "db", "./data/tafsiri.db", "Database path for translation memory")
	translateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable the durable translation memory")
	translateCmd.Flags().IntVar(&cacheSize, "cache-size", 1024, "In-process memo entry limit")
	translateCmd.Flags().DurationVar(&cacheTTL, "cache-ttl", time.Hour, "In-process memo entry lifetime")
}
