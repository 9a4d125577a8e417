package summarize

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{1, 1.0},
		{2, 0.85},
		{3, 0.7},
		{4, 0.55},
		{5, 0.4}, // the ladder bottoms out at 40%, not the 20% the level descriptions suggest
		{0, 1.0},  // clamped up
		{9, 0.4},  // clamped down
		{-1, 1.0}, // clamped up
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("level_%d", tt.level), func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.level), 1e-9)
		})
	}
}

func sampleText() string {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "Networks move packets between hosts using routers, and sentence %d adds detail. ", i)
	}
	return strings.TrimSpace(b.String())
}

func TestExtract(t *testing.T) {
	text := sampleText()

	t.Run("level one is a no-op", func(t *testing.T) {
		assert.Equal(t, text, Extract(text, 1))
	})

	t.Run("empty input passes through", func(t *testing.T) {
		assert.Equal(t, "", Extract("", 5))
	})

	t.Run("single sentence passes through", func(t *testing.T) {
		one := "Just one sentence here."
		assert.Equal(t, one, Extract(one, 5))
	})

	t.Run("higher levels never yield longer output", func(t *testing.T) {
		prev := len(Extract(text, 1))
		for level := 2; level <= 5; level++ {
			got := len(Extract(text, level))
			assert.LessOrEqual(t, got, prev, "level %d grew", level)
			prev = got
		}
	})

	t.Run("keeps source order and wording", func(t *testing.T) {
		out := Extract(text, 4)
		require.NotEmpty(t, out)
		// Every kept sentence must appear verbatim in the source.
		for _, s := range strings.SplitAfter(out, ". ") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			assert.Contains(t, text, s)
		}
	})
}

func TestGlossary(t *testing.T) {
	text := strings.Repeat("routing protocol congestion window latency throughput jitter bandwidth topology firewall gateway subnet ", 3)

	entries := Glossary(text)
	require.NotEmpty(t, entries)
	assert.LessOrEqual(t, len(entries), 10)
	for _, e := range entries {
		assert.NotEmpty(t, e.Term)
		assert.Contains(t, e.Definition, e.Term)
	}
}

func TestGlossaryEmptyText(t *testing.T) {
	assert.Empty(t, Glossary(""))
}
