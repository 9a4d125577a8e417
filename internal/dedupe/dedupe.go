// Package dedupe removes repeated paragraphs from combined document text.
// Paragraphs are compared on normalized token sets; the first occurrence
// wins and keeps its original wording.
package dedupe

import (
	"regexp"
	"strings"
)

// similarityThreshold is the Jaccard overlap above which two paragraphs
// count as duplicates.
const similarityThreshold = 0.8

var reParaSplit = regexp.MustCompile(`\n\s*\n`)

// Paragraphs drops every paragraph whose token set overlaps a previously
// kept paragraph by more than the threshold. Output preserves input order
// and the original (un-normalized) text of kept paragraphs. The operation
// is idempotent.
func Paragraphs(text string) string {
	paragraphs := reParaSplit.Split(text, -1)

	var kept []string
	var keptSets []map[string]struct{}

	for _, p := range paragraphs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		set := tokenSet(p)
		dup := false
		for _, prev := range keptSets {
			if jaccard(set, prev) > similarityThreshold {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		kept = append(kept, strings.TrimSpace(p))
		keptSets = append(keptSets, set)
	}

	return strings.Join(kept, "\n\n")
}

// tokenSet builds the comparison set from the normalized (trimmed,
// lowercased) paragraph, split on whitespace. Punctuation stays attached
// to its word.
func tokenSet(p string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(strings.TrimSpace(p))) {
		set[tok] = struct{}{}
	}
	return set
}

// jaccard returns |a∩b| / |a∪b|. Two empty sets count as identical.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
