package domain

import (
	"reflect"
	"testing"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/vocab"
)

func TestGraphKeepsFirstSeenSubjectOrder(t *testing.T) {
	g := NewGraph()
	g.Add(Triple{Subject: "b", Predicate: "p", Object: LiteralTerm("1", "")})
	g.Add(Triple{Subject: "a", Predicate: "p", Object: LiteralTerm("2", "")})
	g.Add(Triple{Subject: "b", Predicate: "q", Object: LiteralTerm("3", "")})

	got := g.Subjects()
	want := []string{"b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Subjects() = %v, want %v", got, want)
	}
	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}
}

func TestGraphObjectsFiltersByPredicate(t *testing.T) {
	g := NewGraph()
	g.Add(Triple{Subject: "s", Predicate: "p", Object: LiteralTerm("one", "")})
	g.Add(Triple{Subject: "s", Predicate: "q", Object: LiteralTerm("other", "")})
	g.Add(Triple{Subject: "s", Predicate: "p", Object: LiteralTerm("two", "")})

	objs := g.Objects("s", "p")
	if len(objs) != 2 || objs[0].Value != "one" || objs[1].Value != "two" {
		t.Fatalf("Objects(s, p) = %v", objs)
	}
}

func TestGraphTypesOfIgnoresNonIRIObjects(t *testing.T) {
	g := NewGraph()
	g.Add(Triple{Subject: "s", Predicate: vocab.RDFType, Object: IRITerm(vocab.OWLClass)})
	g.Add(Triple{Subject: "s", Predicate: vocab.RDFType, Object: LiteralTerm("not a type", "")})

	got := g.TypesOf("s")
	want := []string{vocab.OWLClass}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TypesOf(s) = %v, want %v", got, want)
	}
}

func TestGraphHasSubject(t *testing.T) {
	g := NewGraph()
	g.Add(Triple{Subject: "s", Predicate: "p", Object: IRITerm("o")})

	if !g.HasSubject("s") {
		t.Fatal("HasSubject(s) = false, want true")
	}
	if g.HasSubject("o") {
		t.Fatal("HasSubject(o) = true for an object-only IRI, want false")
	}
}
