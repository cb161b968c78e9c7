// Package ingestion turns uploaded documents and job posting URLs into clean text.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jonathan/resume-ats-checker/internal/fetch"
)

// UnsupportedFormatMessage is shown to users who upload another format.
const UnsupportedFormatMessage = "Unsupported file format. Please upload a TXT, MD or HTML file."

// FormatError is returned for files whose extension is not accepted.
type FormatError struct {
	Name string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Name)
}

// Format is an accepted document format.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

var formats = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatText,
	".markdown": FormatText,
	".html":     FormatHTML,
	".htm":      FormatHTML,
}

// DetectFormat maps a file name to its format by extension.
func DetectFormat(name string) (Format, error) {
	if f, ok := formats[strings.ToLower(filepath.Ext(name))]; ok {
		return f, nil
	}
	return "", &FormatError{Name: filepath.Base(name)}
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// CleanText normalizes line endings and Unicode composition, collapses
// whitespace inside each line, keeps at most one blank line between blocks
// and trims the result.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ToValidUTF8(content, "")
	content = norm.NFC.String(content)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}

	result := blankRunRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// Decode converts the raw bytes of a document named name into clean text.
func Decode(name string, data []byte) (string, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return "", err
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}

	if format == FormatHTML {
		text, err = fetch.HTMLToText(text)
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", filepath.Base(name), err)
		}
	}
	return CleanText(text), nil
}

// IngestFromFile reads and cleans a document from disk.
func IngestFromFile(path string) (string, *Metadata, error) {
	if _, err := DetectFormat(path); err != nil {
		return "", nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text, err := Decode(path, data)
	if err != nil {
		return "", nil, err
	}

	meta := NewMetadata(text, "")
	meta.Path = path
	return text, meta, nil
}
