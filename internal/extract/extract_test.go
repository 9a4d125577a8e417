package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOCR struct{ text string }

func (s stubOCR) ExtractText(context.Context, string) string { return s.text }

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractText(t *testing.T) {
	e := NewExtractor(nil, nil)
	path := writeTemp(t, "notes.txt", "plain contents\nwith two lines")

	got, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "plain contents\nwith two lines", got)
}

func TestExtractImageUsesOCR(t *testing.T) {
	e := NewExtractor(stubOCR{text: "scanned words"}, nil)
	path := writeTemp(t, "scan.png", "not really an image")

	got, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "scanned words", got)
}

func TestExtractImageWithoutOCR(t *testing.T) {
	e := NewExtractor(nil, nil)
	path := writeTemp(t, "scan.jpg", "bytes")

	got, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := NewExtractor(nil, nil)
	path := writeTemp(t, "bundle.zip", "binary")

	got, err := e.Extract(context.Background(), path)
	require.NoError(t, err, "unsupported extensions degrade, not fail")
	assert.Empty(t, got)
}

func TestExtractMissingFile(t *testing.T) {
	e := NewExtractor(nil, nil)
	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "gone.txt"))
	assert.Error(t, err)
}
