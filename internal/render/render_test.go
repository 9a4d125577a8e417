package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D4rk1d3/study/internal/common"
	"github.com/D4rk1d3/study/internal/entity"
)

func sampleInput() Input {
	return Input{
		Title:   "Computer Networks",
		Content: "Packets travel between hosts.\n\nRouters forward them hop by hop.",
		Headings: []entity.Heading{
			{Text: "Introduction", Level: 1},
			{Text: "Forwarding", Level: 2},
		},
		Keywords: []string{"packets", "routers"},
		Glossary: []entity.GlossaryEntry{
			{Term: "router", Definition: "A device that forwards packets."},
		},
		WithTOC:     true,
		GeneratedAt: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestRenderAllFormats(t *testing.T) {
	r := NewRenderer(nil)
	dir := t.TempDir()

	for _, format := range []string{"pdf", "docx", "html", "xlsx"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, "out."+format)
			require.NoError(t, r.Render(context.Background(), format, path, sampleInput()))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	r := NewRenderer(nil)
	err := r.Render(context.Background(), "epub", filepath.Join(t.TempDir(), "out.epub"), sampleInput())
	require.Error(t, err)
	assert.Equal(t, common.KindRender, common.KindOf(err))
	assert.True(t, common.IsFatal(err))
}

func TestRenderHTMLContent(t *testing.T) {
	r := NewRenderer(nil)
	path := filepath.Join(t.TempDir(), "out.html")
	require.NoError(t, r.Render(context.Background(), "html", path, sampleInput()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(b)
	assert.Contains(t, html, "Computer Networks")
	assert.Contains(t, html, "Table of Contents")
	assert.Contains(t, html, "Packets travel between hosts.")
	assert.Contains(t, html, "router")
	assert.Contains(t, html, "Generated on 14 March 2026")
}

func TestBuildTOC(t *testing.T) {
	tests := []struct {
		name     string
		headings []entity.Heading
		want     []string
	}{
		{
			name: "flat",
			headings: []entity.Heading{
				{Text: "A", Level: 1}, {Text: "B", Level: 1},
			},
			want: []string{"1", "2"},
		},
		{
			name: "nested",
			headings: []entity.Heading{
				{Text: "A", Level: 1},
				{Text: "A1", Level: 2},
				{Text: "A2", Level: 2},
				{Text: "B", Level: 1},
				{Text: "B1", Level: 2},
			},
			want: []string{"1", "1.1", "1.2", "2", "2.1"},
		},
		{
			name: "jump clamped to one level down",
			headings: []entity.Heading{
				{Text: "A", Level: 1},
				{Text: "deep", Level: 4},
			},
			want: []string{"1", "1.1"},
		},
		{
			name: "zero level treated as top",
			headings: []entity.Heading{
				{Text: "A", Level: 0},
			},
			want: []string{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := BuildTOC(tt.headings)
			require.Len(t, entries, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, entries[i].Number, "entry %d", i)
			}
		})
	}
}
