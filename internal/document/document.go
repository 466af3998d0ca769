// Package document extracts translatable text from files and writes
// translations back. Supported inputs: .txt, .docx, .pdf. Supported outputs:
// .txt, .docx (PDF writing is not supported).
package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	docx "github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// ErrUnsupported marks a file extension outside the supported set. Callers
// match it with errors.Is.
var ErrUnsupported = errors.New("unsupported file type")

// Extract reads the text content of path according to its extension.
func Extract(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	case ".docx":
		return extractDocx(path)
	case ".pdf":
		return extractPDF(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}

// Write saves text to path, choosing the format by extension. Unknown
// extensions fall back to plain text, matching the original tool's behavior;
// only an explicit .pdf output is rejected.
func Write(path, text string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return writeDocx(path, text)
	case ".pdf":
		return fmt.Errorf("%w: PDF output is not supported", ErrUnsupported)
	default:
		return os.WriteFile(path, []byte(text), 0644)
	}
}

// extractDocx concatenates the document's paragraphs, one per line.
func extractDocx(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat docx: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		if p, ok := item.(*docx.Paragraph); ok {
			sb.WriteString(p.String())
			sb.WriteByte('\n')
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// writeDocx writes one paragraph per input line.
func writeDocx(path, text string) error {
	doc := docx.New().WithDefaultTheme()
	for _, line := range strings.Split(text, "\n") {
		doc.AddParagraph().AddText(line)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create docx: %w", err)
	}
	defer f.Close()

	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write docx: %w", err)
	}
	return nil
}

// extractPDF concatenates the plain text of every page.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract page %d: %w", i, err)
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}
