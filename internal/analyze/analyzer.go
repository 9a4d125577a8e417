package analyze

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/D4rk1d3/study/internal/entity"
)

// Analyzer derives headings and keywords from raw text. Analyze never
// fails: implementations degrade internally.
type Analyzer interface {
	Analyze(ctx context.Context, text string) entity.ProcessedMetadata
}

// TextAnalyzer is the traditional (regex + frequency) implementation.
type TextAnalyzer struct {
	logger *slog.Logger
}

func NewTextAnalyzer(logger *slog.Logger) *TextAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextAnalyzer{logger: logger}
}

func (a *TextAnalyzer) Analyze(_ context.Context, text string) entity.ProcessedMetadata {
	return entity.ProcessedMetadata{
		Headings: ExtractHeadings(text),
		Keywords: ExtractKeywords(text),
	}
}

// reNumbered matches a numbering prefix like "1.", "1.2" or "1.2." followed
// by a word.
var reNumbered = regexp.MustCompile(`^(\d+(?:\.\d+)*\.?)\s+\w`)

// ExtractHeadings scans line by line. Rules apply first-match-wins:
// numbered prefix (level = number of numeric components), then an
// all-uppercase short line (level 1), then a short line ending in a colon
// (level 2, colon stripped).
func ExtractHeadings(text string) []entity.Heading {
	var headings []entity.Heading

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := reNumbered.FindStringSubmatch(trimmed); m != nil {
			prefix := strings.TrimSuffix(m[1], ".")
			headings = append(headings, entity.Heading{
				Text:  trimmed,
				Level: len(strings.Split(prefix, ".")),
			})
			continue
		}

		if isUppercaseHeading(trimmed) {
			headings = append(headings, entity.Heading{Text: trimmed, Level: 1})
			continue
		}

		if strings.HasSuffix(trimmed, ":") && len(trimmed) < 50 {
			headings = append(headings, entity.Heading{
				Text:  strings.TrimSuffix(trimmed, ":"),
				Level: 2,
			})
		}
	}

	return headings
}

func isUppercaseHeading(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 10 {
		return false
	}
	if line != strings.ToUpper(line) || line == strings.ToLower(line) {
		return false
	}
	switch line[len(line)-1] {
	case '.', '!', '?':
		return false
	}
	return true
}

const maxKeywords = 20

var rePunct = regexp.MustCompile(`[^\w\s]`)

// ExtractKeywords lowercases, strips punctuation, drops short tokens and
// stopwords, and returns at most the 20 most frequent distinct tokens.
// Ties keep first-encounter order.
func ExtractKeywords(text string) []string {
	tokens := strings.Fields(rePunct.ReplaceAllString(strings.ToLower(text), ""))

	freq := make(map[string]int)
	order := make(map[string]int)
	var distinct []string
	for _, tok := range tokens {
		if len(tok) <= 2 || isStopword(tok) {
			continue
		}
		if _, seen := freq[tok]; !seen {
			order[tok] = len(distinct)
			distinct = append(distinct, tok)
		}
		freq[tok]++
	}

	sort.SliceStable(distinct, func(i, j int) bool {
		if freq[distinct[i]] != freq[distinct[j]] {
			return freq[distinct[i]] > freq[distinct[j]]
		}
		return order[distinct[i]] < order[distinct[j]]
	})

	if len(distinct) > maxKeywords {
		distinct = distinct[:maxKeywords]
	}
	return distinct
}
