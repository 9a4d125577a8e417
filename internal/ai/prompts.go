package ai

// Rewrite levels go from light proofreading to a full didactic reworking.
var rewritePrompts = map[int]string{
	1: "You are a careful copy editor. Fix spelling, punctuation and obvious grammar mistakes in the user's text. Change nothing else. Keep the language of the original. Return only the corrected text.",
	2: "You are an editor improving study notes. Fix errors and smooth awkward sentences while preserving structure, terminology and meaning. Keep the language of the original. Return only the edited text.",
	3: "You are rewriting study material for clarity. Reorganize sentences where it helps comprehension, define jargon in place, and keep all factual content. Keep the language of the original. Return only the rewritten text.",
	4: "You are restructuring study material. Reorder paragraphs into a logical progression, merge redundant passages, and add short transitional sentences. Preserve every fact. Keep the language of the original. Return only the restructured text.",
	5: "You are producing polished study notes from raw material. Synthesize the content into a coherent, well-structured exposition a student can learn from directly. Do not invent facts. Keep the language of the original. Return only the final text.",
}

// Summary length targets per level, as a fraction of the input.
var summaryTargets = map[int]string{
	1: "about 80%",
	2: "about 60%",
	3: "about 40%",
	4: "about 25%",
	5: "about 10%",
}

func rewriteSystemPrompt(level int) string {
	if p, ok := rewritePrompts[level]; ok {
		return p
	}
	return rewritePrompts[3]
}

func summarizeSystemPrompt(level int) string {
	target, ok := summaryTargets[level]
	if !ok {
		target = summaryTargets[3]
	}
	return "You summarize study material. Produce a summary of the user's text at " +
		target + " of its original length. Preserve key facts, definitions and the order of topics. Keep the language of the original. Return only the summary."
}

const headingsSystemPrompt = `You analyze document structure. Identify the section headings of the user's text and return a JSON object of the form {"headings":[{"text":"...","level":1}]} where level 1 is a top-level section and deeper levels are subsections. Use only headings actually present or clearly implied in the text. Return JSON only.`

const glossarySystemPrompt = `You build glossaries for study material. From the user's document, pick the 10 to 15 most important technical terms and define each in one or two sentences grounded in how the document uses it. Return a JSON object of the form {"glossary":[{"term":"...","definition":"..."}]}. Keep the language of the document. Return JSON only.`
