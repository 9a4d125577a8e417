package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D4rk1d3/study/internal/entity"
)

func TestExtractHeadings(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []entity.Heading
	}{
		{
			name: "numbered top level",
			text: "1. Introduction\nSome body text follows here.",
			want: []entity.Heading{{Text: "1. Introduction", Level: 1}},
		},
		{
			name: "numbered sub level counts components",
			text: "1.2 Methods\nDetails.",
			want: []entity.Heading{{Text: "1.2 Methods", Level: 2}},
		},
		{
			name: "deep numbering",
			text: "2.3.1 Edge cases\nDetails.",
			want: []entity.Heading{{Text: "2.3.1 Edge cases", Level: 3}},
		},
		{
			name: "uppercase line",
			text: "HEADING ONE\nSome text under it.",
			want: []entity.Heading{{Text: "HEADING ONE", Level: 1}},
		},
		{
			name: "uppercase with terminal punctuation is not a heading",
			text: "THIS IS A SENTENCE.\nMore text.",
			want: nil,
		},
		{
			name: "colon suffix",
			text: "Conclusion:\nWrap-up text.",
			want: []entity.Heading{{Text: "Conclusion", Level: 2}},
		},
		{
			name: "long colon line is body text",
			text: strings.Repeat("x", 60) + ":\nbody",
			want: nil,
		},
		{
			name: "numbered wins over colon",
			text: "1. Introduction:\nbody",
			want: []entity.Heading{{Text: "1. Introduction:", Level: 1}},
		},
		{
			name: "mixed document",
			text: "HEADING ONE\nSome text about networks.\n\nCONCLUSION:\nFinal remarks.",
			want: []entity.Heading{
				{Text: "HEADING ONE", Level: 1},
				{Text: "CONCLUSION", Level: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHeadings(tt.text))
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	t.Run("frequency order", func(t *testing.T) {
		text := "network network network protocol protocol packet"
		got := ExtractKeywords(text)
		require.Equal(t, []string{"network", "protocol", "packet"}, got)
	})

	t.Run("stopwords and short tokens dropped", func(t *testing.T) {
		got := ExtractKeywords("the cat and the dog sat on a mat")
		assert.NotContains(t, got, "the")
		assert.NotContains(t, got, "and")
		assert.NotContains(t, got, "on")
		assert.Contains(t, got, "cat")
		assert.Contains(t, got, "mat")
	})

	t.Run("punctuation stripped and lowercased", func(t *testing.T) {
		got := ExtractKeywords("Routing, routing! ROUTING?")
		require.Equal(t, []string{"routing"}, got)
	})

	t.Run("capped at twenty", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 30; i++ {
			fmt.Fprintf(&b, "term%02d ", i)
		}
		got := ExtractKeywords(b.String())
		assert.Len(t, got, 20)
	})

	t.Run("ties keep first-encounter order", func(t *testing.T) {
		got := ExtractKeywords("alpha beta gamma")
		require.Equal(t, []string{"alpha", "beta", "gamma"}, got)
	})
}

type stubHeadings struct {
	headings []entity.Heading
	err      error
}

func (s stubHeadings) GenerateHeadings(context.Context, string) ([]entity.Heading, error) {
	return s.headings, s.err
}

func TestAIAnalyzer(t *testing.T) {
	text := "HEADING ONE\nnetwork network protocol"

	t.Run("uses generated headings and local keywords", func(t *testing.T) {
		gen := stubHeadings{headings: []entity.Heading{{Text: "Overview", Level: 1}}}
		md := NewAIAnalyzer(gen, nil).Analyze(context.Background(), text)
		assert.Equal(t, []entity.Heading{{Text: "Overview", Level: 1}}, md.Headings)
		assert.Contains(t, md.Keywords, "network")
	})

	t.Run("falls back whole call on error", func(t *testing.T) {
		gen := stubHeadings{err: errors.New("boom")}
		md := NewAIAnalyzer(gen, nil).Analyze(context.Background(), text)
		assert.Equal(t, []entity.Heading{{Text: "HEADING ONE", Level: 1}}, md.Headings)
	})

	t.Run("falls back on empty result", func(t *testing.T) {
		md := NewAIAnalyzer(stubHeadings{}, nil).Analyze(context.Background(), text)
		assert.Equal(t, []entity.Heading{{Text: "HEADING ONE", Level: 1}}, md.Headings)
	})
}
