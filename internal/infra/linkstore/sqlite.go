// Package linkstore persists the correspondence between RDF URIs and the
// Wikibase entities created for them. The sqlite store survives across runs
// and is what makes a rerun resume instead of duplicating work.
package linkstore

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/ports"
)

//go:embed schema.sql
var schema string

// SQLiteStore keeps links in a local sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and initializes the schema.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open link database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init link schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

var _ ports.LinkStore = (*SQLiteStore)(nil)

func (s *SQLiteStore) Lookup(uri string) (domain.EntityID, bool, error) {
	var id string
	err := s.db.QueryRow(
		"SELECT entity_id FROM links WHERE uri = ?",
		uri,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup link: %w", err)
	}
	return domain.EntityID(id), true, nil
}

func (s *SQLiteStore) Record(l domain.Link) error {
	_, err := s.db.Exec(
		"INSERT INTO links (uri, entity_id, created_at) VALUES (?, ?, ?)",
		l.URI, string(l.Entity), l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record link %s: %w", l.URI, err)
	}
	return nil
}

func (s *SQLiteStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM links").Scan(&n); err != nil {
		return 0, fmt.Errorf("count links: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
