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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/amolo/tafsiri/internal/glossary"
	"github.com/amolo/tafsiri/internal/store"
)

var glossaryDBPath string

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Manage persisted glossary terms",
	Long: `Add, list, import, and delete glossary terms held in the database.

Persisted terms complement the file-based glossary passed to translate with
--glossary: use them for terminology that should survive across runs without
maintaining a glossary file by hand.`,
}

var (
	glossaryListSource string
	glossaryListTarget string
)

var glossaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List glossary terms",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(glossaryDBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		// Empty language filters list everything.
		entries, err := db.ListGlossaryTerms(context.Background(), glossaryListSource, glossaryListTarget)
		if err != nil {
			return fmt.Errorf("failed to list glossary: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("Glossary is empty.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSOURCE LANG\tTARGET LANG\tSOURCE TERM\tTARGET TERM\tCONTEXT\tCONFIDENCE")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\n",
				e.ID, e.SourceLang, e.TargetLang, e.SourceTerm, e.TargetTerm, e.Context, e.Confidence)
		}
		return w.Flush()
	},
}

var (
	glossaryAddSource     string
	glossaryAddTarget     string
	glossaryAddContext    string
	glossaryAddConfidence float64
)

var glossaryAddCmd = &cobra.Command{
	Use:   "add <source-term> <target-term>",
	Short: "Add or update a glossary term",
	Long: `Add a glossary term mapping a source-language term to a target-language term.

Example:
  tafsiri glossary add "hypertension" "shinikizo la damu" \
    --source en --target sw --context medical`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if glossaryAddSource == "" {
			return fmt.Errorf("--source language flag is required")
		}
		if glossaryAddTarget == "" {
			return fmt.Errorf("--target language flag is required")
		}

		db, err := store.New(glossaryDBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.AddGlossaryTerm(context.Background(), glossaryAddSource, glossaryAddTarget,
			args[0], args[1], glossaryAddContext, glossaryAddConfidence); err != nil {
			return fmt.Errorf("failed to add glossary term: %w", err)
		}
		fmt.Printf("Added: [%s→%s] %q → %q\n", glossaryAddSource, glossaryAddTarget, args[0], args[1])
		return nil
	},
}

var (
	glossaryImportSource string
	glossaryImportTarget string
)

var glossaryImportCmd = &cobra.Command{
	Use:   "import <glossary-file>",
	Short: "Import terms from a glossary file",
	Long: `Import every term from a JSON or YAML glossary file into the database.

Example:
  tafsiri glossary import glossaries/medical_terms.json --source en --target sw`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if glossaryImportSource == "" || glossaryImportTarget == "" {
			return fmt.Errorf("--source and --target language flags are required")
		}

		g := glossary.Load(args[0], logger)
		if g.Len() == 0 {
			return fmt.Errorf("no terms loaded from %s", args[0])
		}

		db, err := store.New(glossaryDBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		imported := 0
		for _, e := range g.Entries() {
			if err := db.AddGlossaryTerm(context.Background(), glossaryImportSource, glossaryImportTarget,
				e.SourceTerm, e.TargetTerm, e.Context, e.Confidence); err != nil {
				return fmt.Errorf("failed to import term %q: %w", e.SourceTerm, err)
			}
			imported++
		}

		fmt.Printf("Imported %d terms from %s\n", imported, args[0])
		return nil
	},
}

var glossaryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a glossary term by ID",
	Long: `Delete a glossary term by its ID (shown in "tafsiri glossary list").

Example:
  tafsiri glossary delete gl_1234567890123456789`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(glossaryDBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.DeleteGlossaryTerm(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete glossary term: %w", err)
		}
		fmt.Printf("Deleted glossary term: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(glossaryCmd)

	glossaryCmd.PersistentFlags().StringVar(&glossaryDBPath, "db", "./data/tafsiri.db", "Database path")

	glossaryListCmd.Flags().StringVarP(&glossaryListSource, "source", "s", "", "Filter by source language code")
	glossaryListCmd.Flags().StringVarP(&glossaryListTarget, "target", "t", "", "Filter by target language code")

	glossaryAddCmd.Flags().StringVarP(&glossaryAddSource, "source", "s", "", "Source language code (e.g. en)")
	glossaryAddCmd.Flags().StringVarP(&glossaryAddTarget, "target", "t", "", "Target language code (e.g. sw)")
	glossaryAddCmd.Flags().StringVar(&glossaryAddContext, "context", "", "Domain context tag (e.g. medical)")
	glossaryAddCmd.Flags().Float64Var(&glossaryAddConfidence, "confidence", 1.0, "Term confidence weight")

	glossaryImportCmd.Flags().StringVarP(&glossaryImportSource, "source", "s", "", "Source language code")
	glossaryImportCmd.Flags().StringVarP(&glossaryImportTarget, "target", "t", "", "Target language code")

	glossaryCmd.AddCommand(glossaryListCmd)
	glossaryCmd.AddCommand(glossaryAddCmd)
	glossaryCmd.AddCommand(glossaryImportCmd)
	glossaryCmd.AddCommand(glossaryDeleteCmd)
}
