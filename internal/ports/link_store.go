package ports

import "github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"

// LinkStore is the correspondence store: URI → created entity ID. It starts
// empty (or from a prior run's records) and grows monotonically; records are
// never deleted or overwritten within a run. The resolver is its only
// writer.
type LinkStore interface {
	// Lookup returns the recorded entity for a URI, if any.
	Lookup(uri string) (domain.EntityID, bool, error)

	// Record stores a new link. Recording a URI twice is an error; callers
	// look up first.
	Record(l domain.Link) error

	// Count returns the number of records.
	Count() (int, error)

	Close() error
}
