package extract

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	reFence      = regexp.MustCompile("(?s)```.*?```")
	reHRule      = regexp.MustCompile(`(?m)^\s*(?:(?:-\s*){3,}|(?:\*\s*){3,}|(?:_\s*){3,})$`)
	reHeading    = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	reImage      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	reLink       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	reBold       = regexp.MustCompile(`(\*\*|__)(.*?)(\*\*|__)`)
	reItalic     = regexp.MustCompile(`(\*|_)([^*_\n]+)(\*|_)`)
	reBullet     = regexp.MustCompile(`(?m)^(\s*)[-*+]\s+`)
	reNumBullet  = regexp.MustCompile(`(?m)^(\s*)\d+\.\s+`)
	reInlineCode = regexp.MustCompile("`([^`]*)`")
)

// extractMarkdown strips Markdown syntax down to prose: heading and
// emphasis markers removed, links reduced to their display text, list
// markers unified to a bullet glyph, fenced code blocks and horizontal
// rules dropped.
func extractMarkdown(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read markdown file: %w", err)
	}
	return StripMarkdown(string(b)), nil
}

// StripMarkdown converts Markdown source to plain prose.
func StripMarkdown(src string) string {
	s := reFence.ReplaceAllString(src, "")
	s = reHRule.ReplaceAllString(s, "")
	s = reHeading.ReplaceAllString(s, "")
	s = reImage.ReplaceAllString(s, "$1")
	s = reLink.ReplaceAllString(s, "$1")
	s = reBold.ReplaceAllString(s, "$2")
	s = reItalic.ReplaceAllString(s, "$2")
	s = reInlineCode.ReplaceAllString(s, "$1")
	s = reBullet.ReplaceAllString(s, "$1• ")
	s = reNumBullet.ReplaceAllString(s, "$1• ")

	// Collapse leftover runs of blank lines from removed blocks.
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			blank++
			if blank > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blank = 0
		out = append(out, strings.TrimRight(ln, " "))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
