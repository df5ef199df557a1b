package domain

import "strings"

// TermKind distinguishes the three shapes an RDF term can take.
type TermKind string

const (
	TermIRI     TermKind = "iri"
	TermLiteral TermKind = "literal"
	TermBlank   TermKind = "blank"
)

// Term is one node of a triple: an IRI, a literal value, or a blank node.
// Terms are immutable for the duration of a run.
type Term struct {
	Kind TermKind

	// Value holds the IRI, the literal's lexical form, or the blank node label.
	Value string

	// Language and Datatype apply to literals only.
	Language string
	Datatype string
}

// IRITerm builds an IRI term.
func IRITerm(iri string) Term {
	return Term{Kind: TermIRI, Value: iri}
}

// LiteralTerm builds a plain or language-tagged literal term.
func LiteralTerm(value, language string) Term {
	return Term{Kind: TermLiteral, Value: value, Language: language}
}

// BlankTerm builds a blank node term.
func BlankTerm(label string) Term {
	return Term{Kind: TermBlank, Value: label}
}

func (t Term) IsIRI() bool     { return t.Kind == TermIRI }
func (t Term) IsLiteral() bool { return t.Kind == TermLiteral }
func (t Term) IsBlank() bool   { return t.Kind == TermBlank }

// LocalName returns the fragment or last path segment of an IRI. It is the
// fallback label for subjects that carry no annotation predicates.
func LocalName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 && i+1 < len(iri) {
		return iri[i+1:]
	}
	trimmed := strings.TrimRight(iri, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return iri
}
