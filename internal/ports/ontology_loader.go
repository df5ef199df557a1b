package ports

import (
	"context"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
)

// OntologyLoader parses an ontology document into a triple graph. The
// source may be a filesystem path or an http(s) URL; the document is
// consumed in full before conversion begins.
type OntologyLoader interface {
	Load(ctx context.Context, source string) (*domain.Graph, error)
}
