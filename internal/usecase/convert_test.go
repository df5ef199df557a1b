package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/infra/rules"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/ports"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/vocab"
)

// --- fakes shared by the usecase tests ---

type fakeLoader struct {
	graph *domain.Graph
	err   error
}

func (f fakeLoader) Load(_ context.Context, _ string) (*domain.Graph, error) {
	return f.graph, f.err
}

type fakeStore struct {
	links map[string]domain.EntityID
}

func newFakeStore() *fakeStore {
	return &fakeStore{links: map[string]domain.EntityID{}}
}

func (s *fakeStore) Lookup(uri string) (domain.EntityID, bool, error) {
	id, ok := s.links[uri]
	return id, ok, nil
}

func (s *fakeStore) Record(l domain.Link) error {
	if _, dup := s.links[l.URI]; dup {
		return fmt.Errorf("duplicate link for %s", l.URI)
	}
	s.links[l.URI] = l.Entity
	return nil
}

func (s *fakeStore) Count() (int, error) { return len(s.links), nil }
func (s *fakeStore) Close() error        { return nil }

// fakeWriter allocates sequential IDs and records every call in order.
type fakeWriter struct {
	loginErr  error
	createErr error

	loggedIn   bool
	items      int
	properties int

	createdKinds []domain.EntityKind
	claims       map[domain.EntityID][]domain.Claim
	claimOrder   []domain.EntityID
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{claims: map[domain.EntityID][]domain.Claim{}}
}

func (w *fakeWriter) Login(_ context.Context, _, _ string) error {
	if w.loginErr != nil {
		return w.loginErr
	}
	w.loggedIn = true
	return nil
}

func (w *fakeWriter) CreateEntity(_ context.Context, e domain.TargetEntity) (domain.EntityID, error) {
	if w.createErr != nil {
		return "", w.createErr
	}
	w.createdKinds = append(w.createdKinds, e.Kind)
	if e.Kind == domain.EntityProperty {
		w.properties++
		return domain.EntityID(fmt.Sprintf("P%d", w.properties)), nil
	}
	w.items++
	return domain.EntityID(fmt.Sprintf("Q%d", w.items)), nil
}

func (w *fakeWriter) SubmitClaims(_ context.Context, id domain.EntityID, claims []domain.Claim) error {
	w.claims[id] = append(w.claims[id], claims...)
	w.claimOrder = append(w.claimOrder, id)
	return nil
}

func (w *fakeWriter) Clear(_ context.Context, _ domain.EntityID) error { return nil }

type fakeReports struct {
	saved *domain.Report
}

func (f *fakeReports) SaveReport(r domain.Report) (string, error) {
	f.saved = &r
	return "run-1", nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const okh = "http://example.org/okh#"

// moduleGraph builds a small but representative ontology: the document
// header, one object property, two classes, two mutually referencing
// individuals, and one subject with an unknown type.
func moduleGraph() *domain.Graph {
	g := domain.NewGraph()
	add := func(s, p string, o domain.Term) {
		g.Add(domain.Triple{Subject: s, Predicate: p, Object: o})
	}

	add(okh, vocab.RDFType, domain.IRITerm(vocab.OWLOntology))
	add(okh, vocab.RDFSLabel, domain.LiteralTerm("OKH ontology", "en"))

	add(okh+"Module", vocab.RDFType, domain.IRITerm(vocab.OWLClass))
	add(okh+"Module", vocab.RDFSLabel, domain.LiteralTerm("Module", "en"))
	add(okh+"Module", vocab.RDFSComment, domain.LiteralTerm("A hardware module", "en"))
	add(okh+"Module", vocab.RDFSSubClassOf, domain.IRITerm(okh+"Component"))

	add(okh+"Component", vocab.RDFType, domain.IRITerm(vocab.OWLClass))
	add(okh+"Component", vocab.RDFSLabel, domain.LiteralTerm("Component", "en"))

	add(okh+"usesModule", vocab.RDFType, domain.IRITerm(vocab.OWLObjectProperty))
	add(okh+"usesModule", vocab.RDFSLabel, domain.LiteralTerm("uses module", "en"))

	add(okh+"ModuleA", vocab.RDFType, domain.IRITerm(vocab.OWLNamedIndividual))
	add(okh+"ModuleA", vocab.RDFSLabel, domain.LiteralTerm("Module A", "en"))
	add(okh+"ModuleA", okh+"usesModule", domain.IRITerm(okh+"ModuleB"))
	add(okh+"ModuleA", vocab.SchemaVersion, domain.LiteralTerm("1.2.0", ""))

	add(okh+"ModuleB", vocab.RDFType, domain.IRITerm(vocab.OWLNamedIndividual))
	add(okh+"ModuleB", vocab.RDFSLabel, domain.LiteralTerm("Module B", "en"))
	add(okh+"ModuleB", okh+"usesModule", domain.IRITerm(okh+"ModuleA"))

	add(okh+"Strange", vocab.RDFType, domain.IRITerm(okh+"UnknownType"))
	add(okh+"Strange", vocab.RDFSLabel, domain.LiteralTerm("Strange", "en"))

	return g
}

func newConvert(t *testing.T, graph *domain.Graph, store *fakeStore, writer *fakeWriter, reports *fakeReports) *ConvertOntology {
	t.Helper()
	table, err := rules.Load()
	if err != nil {
		t.Fatalf("rules.Load: %v", err)
	}
	var rep ports.ReportStore
	if reports != nil {
		rep = reports
	}
	return NewConvertOntology(
		fakeLoader{graph: graph}, store, writer, rep,
		table, domain.DefaultConfig(), discardLogger(),
		WithNow(func() time.Time { return time.Date(2021, 5, 1, 12, 0, 0, 0, time.UTC) }),
	)
}

func TestExecuteCreatesPropertiesBeforeItems(t *testing.T) {
	store := newFakeStore()
	writer := newFakeWriter()
	uc := newConvert(t, moduleGraph(), store, writer, nil)

	report, _, err := uc.Execute(context.Background(), "test.ttl", "bot", "secret")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !writer.loggedIn {
		t.Fatal("Execute never logged in")
	}
	if len(writer.createdKinds) != 5 {
		t.Fatalf("created %d entities, want 5", len(writer.createdKinds))
	}
	if writer.createdKinds[0] != domain.EntityProperty {
		t.Fatalf("first creation was %s, want property", writer.createdKinds[0])
	}
	for i, k := range writer.createdKinds[1:] {
		if k != domain.EntityItem {
			t.Fatalf("creation %d was %s, want item", i+1, k)
		}
	}
	if report.Created != 5 {
		t.Fatalf("report.Created = %d, want 5", report.Created)
	}
}

func TestExecuteResolvesMutualReferences(t *testing.T) {
	store := newFakeStore()
	writer := newFakeWriter()
	uc := newConvert(t, moduleGraph(), store, writer, nil)

	if _, _, err := uc.Execute(context.Background(), "test.ttl", "bot", "secret"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	idA := store.links[okh+"ModuleA"]
	idB := store.links[okh+"ModuleB"]
	propID := store.links[okh+"usesModule"]
	if idA == "" || idB == "" || propID == "" {
		t.Fatalf("missing links: A=%s B=%s prop=%s", idA, idB, propID)
	}

	wantClaim := func(owner domain.EntityID, target domain.EntityID) {
		t.Helper()
		for _, cl := range writer.claims[owner] {
			if cl.Property == propID && cl.Value.Kind == domain.ValueEntity && cl.Value.Entity == target {
				return
			}
		}
		t.Fatalf("entity %s carries no %s -> %s claim: %+v", owner, propID, target, writer.claims[owner])
	}
	wantClaim(idA, idB)
	wantClaim(idB, idA)
}

func TestExecuteSubClassOfUsesSeededTarget(t *testing.T) {
	store := newFakeStore()
	writer := newFakeWriter()
	uc := newConvert(t, moduleGraph(), store, writer, nil)

	if _, _, err := uc.Execute(context.Background(), "test.ttl", "bot", "secret"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got := store.links[vocab.RDFSSubClassOf]; got != "P279" {
		t.Fatalf("subClassOf seeded as %s, want P279", got)
	}

	idModule := store.links[okh+"Module"]
	idComponent := store.links[okh+"Component"]
	found := false
	for _, cl := range writer.claims[idModule] {
		if cl.Property == "P279" && cl.Value.Entity == idComponent {
			found = true
		}
	}
	if !found {
		t.Fatalf("Module carries no P279 -> %s claim: %+v", idComponent, writer.claims[idModule])
	}
}

func TestExecuteSecondRunReusesEverything(t *testing.T) {
	store := newFakeStore()
	writer := newFakeWriter()
	uc := newConvert(t, moduleGraph(), store, writer, nil)

	if _, _, err := uc.Execute(context.Background(), "test.ttl", "bot", "secret"); err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	firstCreations := len(writer.createdKinds)

	report, _, err := uc.Execute(context.Background(), "test.ttl", "bot", "secret")
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	if len(writer.createdKinds) != firstCreations {
		t.Fatalf("second run created %d new entities", len(writer.createdKinds)-firstCreations)
	}
	if report.Created != 0 || report.Reused != 5 {
		t.Fatalf("second run report: created=%d reused=%d, want 0/5", report.Created, report.Reused)
	}
}

func TestExecuteSkipsUnknownTypes(t *testing.T) {
	store := newFakeStore()
	writer := newFakeWriter()
	uc := newConvert(t, moduleGraph(), store, writer, nil)

	report, _, err := uc.Execute(context.Background(), "test.ttl", "bot", "secret")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if report.Skipped != 1 {
		t.Fatalf("report.Skipped = %d, want 1", report.Skipped)
	}
	if _, ok := store.links[okh+"Strange"]; ok {
		t.Fatal("skipped subject got a correspondence record")
	}
	found := false
	for _, g := range report.Gaps {
		if g.Subject == okh+"Strange" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no gap recorded for the unknown-typed subject: %+v", report.Gaps)
	}
}

func TestExecuteLoginFailureAborts(t *testing.T) {
	store := newFakeStore()
	writer := newFakeWriter()
	writer.loginErr = &domain.OpError{Op: "wikibase.login", Kind: domain.KindAuth, Err: errors.New("status FAIL")}
	uc := newConvert(t, moduleGraph(), store, writer, nil)

	_, _, err := uc.Execute(context.Background(), "test.ttl", "bot", "wrong")
	if !domain.IsKind(err, domain.KindAuth) {
		t.Fatalf("Execute err = %v, want auth kind", err)
	}
	if len(writer.createdKinds) != 0 {
		t.Fatal("entities were created after a failed login")
	}
}

func TestExecuteCreateFailureReturnsPartialReport(t *testing.T) {
	store := newFakeStore()
	writer := newFakeWriter()
	writer.createErr = &domain.OpError{Op: "wikibase.create", Kind: domain.KindRemote, Err: errors.New("status 502")}
	uc := newConvert(t, moduleGraph(), store, writer, nil)

	report, _, err := uc.Execute(context.Background(), "test.ttl", "bot", "secret")
	if !domain.IsKind(err, domain.KindRemote) {
		t.Fatalf("Execute err = %v, want remote kind", err)
	}
	if report.EndedAt.IsZero() {
		t.Fatal("aborted run report carries no end time")
	}
}

func TestExecuteSavesReport(t *testing.T) {
	store := newFakeStore()
	writer := newFakeWriter()
	reports := &fakeReports{}
	uc := newConvert(t, moduleGraph(), store, writer, reports)

	_, runID, err := uc.Execute(context.Background(), "test.ttl", "bot", "secret")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if runID != "run-1" {
		t.Fatalf("runID = %q, want run-1", runID)
	}
	if reports.saved == nil || reports.saved.Source != "test.ttl" {
		t.Fatalf("saved report = %+v", reports.saved)
	}
}

func TestExecuteHardwareModuleScenario(t *testing.T) {
	g := domain.NewGraph()
	add := func(s, p string, o domain.Term) {
		g.Add(domain.Triple{Subject: s, Predicate: p, Object: o})
	}
	add(okh+"hasLicense", vocab.RDFType, domain.IRITerm(vocab.OWLDatatypeProperty))
	add(okh+"hasLicense", vocab.RDFSLabel, domain.LiteralTerm("has license", "en"))
	add(okh+"HardwareModule", vocab.RDFType, domain.IRITerm(vocab.OWLClass))
	add(okh+"HardwareModule", vocab.RDFSLabel, domain.LiteralTerm("Hardware Module", "en"))
	add(okh+"myModule", vocab.RDFType, domain.IRITerm(vocab.OWLNamedIndividual))
	add(okh+"myModule", vocab.RDFSLabel, domain.LiteralTerm("my module", "en"))
	add(okh+"myModule", okh+"hasLicense", domain.LiteralTerm("MIT", ""))

	store := newFakeStore()
	writer := newFakeWriter()
	uc := newConvert(t, g, store, writer, nil)

	if _, _, err := uc.Execute(context.Background(), "test.ttl", "bot", "secret"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	propID := store.links[okh+"hasLicense"]
	moduleID := store.links[okh+"myModule"]
	if propID.Kind() != domain.EntityProperty || moduleID.Kind() != domain.EntityItem {
		t.Fatalf("links: hasLicense=%s myModule=%s", propID, moduleID)
	}

	claims := writer.claims[moduleID]
	if len(claims) != 1 || claims[0].Property != propID || claims[0].Value.Text != "MIT" {
		t.Fatalf("myModule claims = %+v", claims)
	}
}

func TestExecuteGapLeavesPartialEntity(t *testing.T) {
	g := domain.NewGraph()
	add := func(s, p string, o domain.Term) {
		g.Add(domain.Triple{Subject: s, Predicate: p, Object: o})
	}
	add(okh+"M", vocab.RDFType, domain.IRITerm(vocab.OWLNamedIndividual))
	add(okh+"M", vocab.RDFSLabel, domain.LiteralTerm("M", "en"))
	add(okh+"M", "http://example.org/unmappedPred", domain.LiteralTerm("x", ""))
	add(okh+"M", vocab.SchemaVersion, domain.LiteralTerm("0.1.0", ""))

	store := newFakeStore()
	writer := newFakeWriter()
	uc := newConvert(t, g, store, writer, nil)

	report, _, err := uc.Execute(context.Background(), "test.ttl", "bot", "secret")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	id := store.links[okh+"M"]
	claims := writer.claims[id]
	if len(claims) != 1 || claims[0].Property != "P348" {
		t.Fatalf("claims = %+v, want the mapped version claim only", claims)
	}
	if len(report.Gaps) != 1 || report.Gaps[0].Predicate != "http://example.org/unmappedPred" {
		t.Fatalf("gaps = %+v", report.Gaps)
	}
}

func TestExecuteLoadFailure(t *testing.T) {
	table, err := rules.Load()
	if err != nil {
		t.Fatalf("rules.Load: %v", err)
	}
	loadErr := &domain.OpError{Op: "turtle.open", Kind: domain.KindInvalidInput, Err: errors.New("no such file")}
	uc := NewConvertOntology(
		fakeLoader{err: loadErr}, newFakeStore(), newFakeWriter(), nil,
		table, domain.DefaultConfig(), discardLogger(),
	)

	if _, _, err := uc.Execute(context.Background(), "missing.ttl", "bot", "secret"); !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("Execute err = %v, want invalid_input kind", err)
	}
}

func TestExecuteProgressOutput(t *testing.T) {
	store := newFakeStore()
	writer := newFakeWriter()
	table, err := rules.Load()
	if err != nil {
		t.Fatalf("rules.Load: %v", err)
	}
	var out strings.Builder
	uc := NewConvertOntology(
		fakeLoader{graph: moduleGraph()}, store, writer, nil,
		table, domain.DefaultConfig(), discardLogger(),
		WithProgress(&out),
	)

	if _, _, err := uc.Execute(context.Background(), "test.ttl", "bot", "secret"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	progress := out.String()
	for _, want := range []string{"[CREATED]", "[SKIP]", "[CLAIMS]"} {
		if !strings.Contains(progress, want) {
			t.Errorf("progress output lacks %q:\n%s", want, progress)
		}
	}
}
