package domain

// MergeAnnotations collects the literal objects of the given predicates on
// one subject, grouped by language tag. Multiple values in the same language
// are joined with sep; literals without a tag count as defaultLang.
func MergeAnnotations(g *Graph, subject string, predicates []string, defaultLang, sep string) map[string]string {
	out := map[string]string{}
	for _, t := range g.Triples(subject) {
		if !contains(predicates, t.Predicate) || !t.Object.IsLiteral() {
			continue
		}
		lang := t.Object.Language
		if lang == "" {
			lang = defaultLang
		}
		if prev, ok := out[lang]; ok {
			out[lang] = prev + sep + t.Object.Value
		} else {
			out[lang] = t.Object.Value
		}
	}
	return out
}

// Truncate shortens s to at most max runes, marking the cut with an
// ellipsis. Wikibase rejects over-long descriptions.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
