// Package summarize condenses text without a model: sentences are scored
// by word frequency and the best ones survive in original order.
package summarize

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Ratio maps a summarization level (1..5) to the fraction of sentences
// kept. Level 1 keeps everything; each step removes another 15%.
func Ratio(level int) float64 {
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	return 1 - float64(level-1)*0.15
}

var (
	reSentence = regexp.MustCompile(`[^.!?]+[.!?]*\s*`)
	// Scoring counts only words longer than three characters.
	reWord = regexp.MustCompile(`[\p{L}]{4,}`)
)

// Extract returns an extractive summary at the given level. Level 1 is a
// no-op. Sentences are ranked by average word frequency across the whole
// text and the kept ones preserve source order, so the summary never
// invents content.
func Extract(text string, level int) string {
	ratio := Ratio(level)
	if ratio >= 1 || strings.TrimSpace(text) == "" {
		return text
	}

	sentences := reSentence.FindAllString(text, -1)
	if len(sentences) <= 1 {
		return text
	}

	freq := wordFrequencies(text)

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		ranked[i] = scored{idx: i, score: sentenceScore(s, freq)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	keep := int(math.Round(ratio * float64(len(sentences))))
	if keep < 1 {
		keep = 1
	}

	selected := make([]int, keep)
	for i := 0; i < keep; i++ {
		selected[i] = ranked[i].idx
	}
	sort.Ints(selected)

	var b strings.Builder
	for _, idx := range selected {
		b.WriteString(strings.TrimSpace(sentences[idx]))
		b.WriteByte(' ')
	}
	return strings.TrimSpace(b.String())
}

func wordFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, w := range reWord.FindAllString(strings.ToLower(text), -1) {
		freq[w]++
	}
	return freq
}

// sentenceScore sums the global frequencies of the sentence's words, so
// sentences carrying the text's recurring vocabulary rank highest.
func sentenceScore(sentence string, freq map[string]int) float64 {
	total := 0
	for _, w := range reWord.FindAllString(strings.ToLower(sentence), -1) {
		total += freq[w]
	}
	return float64(total)
}
