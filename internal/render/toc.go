package render

import (
	"fmt"
	"strings"

	"github.com/D4rk1d3/study/internal/entity"
)

// BuildTOC assigns hierarchical numbers (1, 1.1, 1.1.1, 2, ...) to the
// headings in document order. A heading deeper than its predecessor by
// more than one level is clamped to one level down.
func BuildTOC(headings []entity.Heading) []entity.TOCEntry {
	var entries []entity.TOCEntry
	var counters []int

	for _, h := range headings {
		level := h.Level
		if level < 1 {
			level = 1
		}
		if level > len(counters)+1 {
			level = len(counters) + 1
		}

		if level > len(counters) {
			counters = append(counters, 0)
		} else {
			counters = counters[:level]
		}
		counters[level-1]++

		parts := make([]string, level)
		for i := 0; i < level; i++ {
			parts[i] = fmt.Sprintf("%d", counters[i])
		}

		entries = append(entries, entity.TOCEntry{
			Number: strings.Join(parts, "."),
			Title:  h.Text,
			Level:  level,
		})
	}
	return entries
}
