package domain

import (
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/vocab"
)

// Triple is one subject–predicate–object statement. Subject and predicate
// are IRIs (or a blank node label for the subject); the object may be any
// term shape.
type Triple struct {
	Subject   string
	Predicate string
	Object    Term
}

// Graph is an in-memory triple graph indexed by subject. Subjects keep their
// first-seen input order so runs produce reproducible logs. The graph is
// loaded in full before conversion starts and is not mutated afterwards.
type Graph struct {
	subjects []string
	triples  map[string][]Triple
	count    int
}

func NewGraph() *Graph {
	return &Graph{triples: map[string][]Triple{}}
}

// Add appends a triple, registering its subject on first sight.
func (g *Graph) Add(t Triple) {
	if _, seen := g.triples[t.Subject]; !seen {
		g.subjects = append(g.subjects, t.Subject)
	}
	g.triples[t.Subject] = append(g.triples[t.Subject], t)
	g.count++
}

// Subjects returns every distinct subject in first-seen order.
func (g *Graph) Subjects() []string {
	out := make([]string, len(g.subjects))
	copy(out, g.subjects)
	return out
}

// Triples returns the statements of one subject in input order.
func (g *Graph) Triples(subject string) []Triple {
	ts := g.triples[subject]
	out := make([]Triple, len(ts))
	copy(out, ts)
	return out
}

// Objects returns the object terms of all (subject, predicate, *) triples.
func (g *Graph) Objects(subject, predicate string) []Term {
	var out []Term
	for _, t := range g.triples[subject] {
		if t.Predicate == predicate {
			out = append(out, t.Object)
		}
	}
	return out
}

// TypesOf returns the IRIs of the subject's rdf:type objects.
func (g *Graph) TypesOf(subject string) []string {
	var out []string
	for _, o := range g.Objects(subject, vocab.RDFType) {
		if o.IsIRI() {
			out = append(out, o.Value)
		}
	}
	return out
}

// HasSubject reports whether the IRI occurs as a subject in the graph.
func (g *Graph) HasSubject(iri string) bool {
	_, ok := g.triples[iri]
	return ok
}

// Len returns the number of triples.
func (g *Graph) Len() int { return g.count }
