package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "headings",
			in:   "# Title\n\n## Section\n\nbody",
			want: "Title\n\nSection\n\nbody",
		},
		{
			name: "emphasis",
			in:   "this is **bold** and *italic* and __also bold__",
			want: "this is bold and italic and also bold",
		},
		{
			name: "links keep display text",
			in:   "see [the docs](https://example.com) for more",
			want: "see the docs for more",
		},
		{
			name: "images keep alt text",
			in:   "![diagram](net.png) shows the topology",
			want: "diagram shows the topology",
		},
		{
			name: "bullets unified",
			in:   "- first\n* second\n+ third\n1. fourth",
			want: "• first\n• second\n• third\n• fourth",
		},
		{
			name: "fenced code removed",
			in:   "before\n```go\nfunc main() {}\n```\nafter",
			want: "before\n\nafter",
		},
		{
			name: "inline code keeps content",
			in:   "run `go test` locally",
			want: "run go test locally",
		},
		{
			name: "horizontal rule removed",
			in:   "above\n\n---\n\nbelow",
			want: "above\n\nbelow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkdown(tt.in))
		})
	}
}
