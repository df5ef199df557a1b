package linkstore

import (
	"fmt"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/ports"
)

// MemoryStore keeps links for a single process lifetime. Used by tests and
// by --no-state runs that should leave nothing behind.
type MemoryStore struct {
	links map[string]domain.Link
}

func NewMemory() *MemoryStore {
	return &MemoryStore{links: map[string]domain.Link{}}
}

var _ ports.LinkStore = (*MemoryStore)(nil)

func (s *MemoryStore) Lookup(uri string) (domain.EntityID, bool, error) {
	l, ok := s.links[uri]
	if !ok {
		return "", false, nil
	}
	return l.Entity, true, nil
}

func (s *MemoryStore) Record(l domain.Link) error {
	if _, exists := s.links[l.URI]; exists {
		return fmt.Errorf("record link %s: already recorded", l.URI)
	}
	s.links[l.URI] = l
	return nil
}

func (s *MemoryStore) Count() (int, error) {
	return len(s.links), nil
}

func (s *MemoryStore) Close() error { return nil }
