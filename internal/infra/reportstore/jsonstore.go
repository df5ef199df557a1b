// Package reportstore persists conversion reports as JSON artifacts under
// the state directory.
package reportstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/ports"
)

type JSONStore struct {
	rootDir    string
	reportsDir string
	now        func() time.Time
	newID      func() string
}

type Option func(*JSONStore)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDFunc is useful for tests.
func WithIDFunc(f func() string) Option {
	return func(s *JSONStore) { s.newID = f }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	dir := cfg.Paths.ReportsDir
	if strings.TrimSpace(dir) == "" {
		dir = "reports"
	}

	s := &JSONStore{
		rootDir:    root,
		reportsDir: dir,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ReportStore = (*JSONStore)(nil)

// SaveReport writes the report to
// <root>/<reports>/<timestamp>_<source-slug>.json and returns the run ID
// stamped into the artifact.
func (s *JSONStore) SaveReport(r domain.Report) (string, error) {
	dir := filepath.Join(s.rootDir, s.reportsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{Op: "reportstore.mkdir", Kind: domain.KindInvalidInput, Path: dir, Err: err}
	}

	ts := r.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := r
	toSave.RunID = s.newID()

	slug := slugify(strings.TrimSuffix(filepath.Base(r.Source), filepath.Ext(r.Source)))
	if slug == "" {
		slug = "run"
	}
	path := filepath.Join(dir, ts.Format("20060102T150405Z")+"_"+slug+".json")

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{Op: "reportstore.marshal", Kind: domain.KindInvalidInput, Path: path, Err: err}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{Op: "reportstore.write", Kind: domain.KindInvalidInput, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{Op: "reportstore.rename", Kind: domain.KindInvalidInput, Path: path, Err: err}
	}

	return toSave.RunID, nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
