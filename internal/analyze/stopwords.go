package analyze

// stopwords covers the English and Italian function words seen in the
// documents the tool targets. Tokens of length <= 2 are dropped before
// this set is consulted.
var stopwords = map[string]struct{}{
	// English
	"the": {}, "and": {}, "but": {}, "for": {}, "with": {}, "about": {},
	"are": {}, "was": {}, "were": {}, "been": {}, "being": {},
	"you": {}, "she": {}, "they": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "from": {},
	// Italian
	"una": {}, "del": {}, "della": {}, "che": {}, "con": {}, "per": {},
	"non": {}, "sono": {}, "come": {}, "anche": {}, "nel": {}, "nella": {},
	"gli": {}, "dei": {}, "delle": {},
}

func isStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}
