package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "collapses spaces", input: "Line    with \t multiple   spaces", want: "Line with multiple spaces"},
		{name: "line endings", input: "Line 1\r\nLine 2\rLine 3\nLine 4", want: "Line 1\nLine 2\nLine 3\nLine 4"},
		{name: "blank lines squeezed", input: "Skills\n\n\n\n\nPython", want: "Skills\n\nPython"},
		{name: "whitespace only lines", input: "A\n   \n\t\nB", want: "A\n\nB"},
		{name: "trims", input: "\n\n  Experience  \n\n", want: "Experience"},
		{name: "keeps bullets", input: "- Led a team\n*   Shipped v2", want: "- Led a team\n* Shipped v2"},
		{name: "nfc", input: "Re\u0301sume\u0301", want: "R\u00e9sum\u00e9"},
		{name: "nbsp", input: "Go\u00a0\u00a0developer", want: "Go developer"},
		{name: "invalid utf8", input: "ok\xffok", want: "okok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"resume.txt", FormatText, false},
		{"Resume.MD", FormatText, false},
		{"cv.html", FormatHTML, false},
		{"cv.htm", FormatHTML, false},
		{"resume.pdf", "", true},
		{"resume.docx", "", true},
		{"resume", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.name)
			if tt.wantErr {
				var fe *FormatError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, tt.name, fe.Name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	text, err := Decode("resume.txt", []byte("Jane Doe\r\n\r\n\r\nExperience:   Go"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nExperience: Go", text)

	html := `<html><body><main><h1>Skills</h1><ul><li>Go</li><li>SQL</li></ul></main></body></html>`
	text, err = Decode("resume.html", []byte(html))
	require.NoError(t, err)
	assert.Equal(t, "Skills\n- Go\n- SQL", text)

	_, err = Decode("resume.pdf", []byte("%PDF"))
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestIngestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.md")
	require.NoError(t, os.WriteFile(path, []byte("# Backend Engineer\n\nWe use   Go."), 0o644))

	text, meta, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Backend Engineer\n\nWe use Go.", text)
	require.NotNil(t, meta)
	assert.Equal(t, path, meta.Path)
	assert.Equal(t, len([]rune(text)), meta.Chars)
	assert.Len(t, meta.Hash, 64)
}

func TestIngestFromFile_Errors(t *testing.T) {
	_, _, err := IngestFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")

	_, _, err = IngestFromFile("resume.pdf")
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
}
