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
	"time"

	"github.com/spf13/cobra"

	"github.com/amolo/tafsiri/internal/engine"
)

var (
	docInput  string
	docOutput string

	docSourceLang   string
	docTargetLang   string
	docGlossaryPath string
	docDomain       string

	docServices    []string
	docOllamaURL   string
	docOllamaModel string
	docCredentials string
	docTimeout     time.Duration

	docDBPath    string
	docNoCache   bool
	docCacheSize int
	docCacheTTL  time.Duration
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Translate a document file",
	Long: `Extract text from a document, translate it, and optionally write the
translation back.

Supported input formats:  .txt, .docx, .pdf
Supported output formats: .txt, .docx (PDF output is not supported)

Example:
  tafsiri document -i report.docx -o report_sw.docx \
    -s en -t sw --glossary glossaries/medical_terms.json --domain medical`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if docInput == docOutput && docOutput != "" {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		eng, db, err := buildEngine(engineParams{
			sourceLang:   docSourceLang,
			targetLang:   docTargetLang,
			glossaryPath: docGlossaryPath,
			services:     docServices,
			ollamaURL:    docOllamaURL,
			ollamaModel:  docOllamaModel,
			credentials:  docCredentials,
			timeout:      docTimeout,
			dbPath:       docDBPath,
			noStore:      docNoCache,
			cacheSize:    docCacheSize,
			cacheTTL:     docCacheTTL,
		})
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		result, err := eng.TranslateDocument(context.Background(), docInput, docOutput, engine.Options{
			Domain: docDomain,
		})
		if err != nil {
			printReport(result)
			return err
		}

		printReport(result)
		if docOutput != "" {
			fmt.Printf("\nTranslation saved to %s\n", docOutput)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(documentCmd)

	documentCmd.Flags().StringVarP(&docInput, "input", "i", "", "Input document (required)")
	documentCmd.Flags().StringVarP(&docOutput, "output", "o", "", "Output document; omit to print only")
	documentCmd.Flags().StringVarP(&docSourceLang, "source", "s", "en", "Source language code")
	documentCmd.Flags().StringVarP(&docTargetLang, "target", "t", "sw", "Target language code")
	documentCmd.Flags().StringVarP(&docGlossaryPath, "glossary", "g", "", "Glossary file (JSON or YAML)")
	documentCmd.Flags().StringVarP(&docDomain, "domain", "d", "", "Domain context for glossary filtering")

	documentCmd.Flags().StringSliceVar(&docServices, "services", []string{"ollama", "google"}, "Backend chain, first to last fallback")
	documentCmd.Flags().StringVar(&docOllamaURL, "ollama-url", "http://localhost:11434", "Ollama base URL")
	documentCmd.Flags().StringVar(&docOllamaModel, "model", "", "Ollama model (default mistral)")
	documentCmd.Flags().StringVarP(&docCredentials, "credentials", "c", "", "Path to Google Cloud credentials")
	documentCmd.Flags().DurationVar(&docTimeout, "timeout", 120*time.Second, "Per-service call timeout")

	documentCmd.Flags().StringVar(&docDBPath, "db", "./data/tafsiri.db", "Database path for translation memory")
	documentCmd.Flags().BoolVar(&docNoCache, "no-cache", false, "Disable the durable translation memory")
	documentCmd.Flags().IntVar(&docCacheSize, "cache-size", 1024, "In-process memo entry limit")
	documentCmd.Flags().DurationVar(&docCacheTTL, "cache-ttl", time.Hour, "In-process memo entry lifetime")

	documentCmd.MarkFlagRequired("input")
}
