package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/ports"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/vocab"
)

// ConvertOntology walks the ontology graph in dependency order and creates
// the corresponding Wikibase entities through the writer port. Processing is
// strictly sequential: a node's skeleton may be required as a reference
// target by any later node, so no two writer calls ever overlap.
type ConvertOntology struct {
	loader  ports.OntologyLoader
	store   ports.LinkStore
	writer  ports.EntityWriter
	reports ports.ReportStore
	rules   *domain.RuleTable
	cfg     domain.Config
	log     *slog.Logger

	progress io.Writer
	now      func() time.Time
	dryRun   bool
}

type ConvertOption func(*ConvertOntology)

// WithProgress directs per-node progress lines somewhere other than discard
// (the CLI passes stdout).
func WithProgress(w io.Writer) ConvertOption {
	return func(uc *ConvertOntology) { uc.progress = w }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) ConvertOption {
	return func(uc *ConvertOntology) { uc.now = now }
}

// WithDryRun marks the resulting report as produced without API writes.
func WithDryRun(dryRun bool) ConvertOption {
	return func(uc *ConvertOntology) { uc.dryRun = dryRun }
}

// NewConvertOntology wires the orchestrator. reports may be nil to skip
// artifact persistence.
func NewConvertOntology(loader ports.OntologyLoader, store ports.LinkStore, writer ports.EntityWriter, reports ports.ReportStore, rules *domain.RuleTable, cfg domain.Config, log *slog.Logger, opts ...ConvertOption) *ConvertOntology {
	uc := &ConvertOntology{
		loader:   loader,
		store:    store,
		writer:   writer,
		reports:  reports,
		rules:    rules,
		cfg:      cfg,
		log:      log,
		progress: io.Discard,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs the full conversion: load, authenticate, seed the
// correspondence store from the rule table, create a skeleton for every
// subject in dependency order, then fill in claims. The returned report
// carries per-node outcomes even when the run aborts mid-way.
func (uc *ConvertOntology) Execute(ctx context.Context, source, user, password string) (domain.Report, string, error) {
	report := domain.Report{
		Source:    source,
		Endpoint:  uc.cfg.APIURL,
		DryRun:    uc.dryRun,
		StartedAt: uc.now(),
	}

	graph, err := uc.loader.Load(ctx, source)
	if err != nil {
		return report, "", err
	}
	uc.log.Info("ontology.loaded", "source", source, "triples", graph.Len(), "subjects", len(graph.Subjects()))

	if err := uc.writer.Login(ctx, user, password); err != nil {
		return report, "", err
	}

	if err := uc.seed(); err != nil {
		return report, "", err
	}

	resolver := NewResolver(graph, uc.rules, uc.store, uc.writer, uc.cfg, uc.log, WithResolverNow(uc.now))
	builder := NewBuilder(graph, uc.rules, uc.store, resolver, uc.log)

	order := visitOrder(graph, uc.rules)
	nodes := make([]domain.NodeResult, 0, len(order))

	// Skeleton pass: after it, every convertible subject has an ID, which
	// is what lets mutually referencing nodes link up in the claims pass.
	for _, subject := range order {
		id, created, err := resolver.Resolve(ctx, subject)
		if err != nil {
			if domain.IsKind(err, domain.KindMappingGap) {
				fmt.Fprintf(uc.progress, "- [SKIP]    %s\n", subject)
				report.AddGap(domain.Gap{Subject: subject, Detail: err.Error()})
				nodes = append(nodes, domain.NodeResult{URI: subject, Outcome: domain.OutcomeSkipped, Reason: "mapping gap"})
				continue
			}
			return uc.finish(report, nodes), "", err
		}

		outcome := domain.OutcomeReused
		if created {
			outcome = domain.OutcomeCreated
		}
		fmt.Fprintf(uc.progress, "- [%s] %s -> %s\n", strings.ToUpper(string(outcome)), subject, id)
		nodes = append(nodes, domain.NodeResult{URI: subject, Entity: id, Outcome: outcome})
	}

	// Claims pass.
	for i := range nodes {
		n := &nodes[i]
		if n.Outcome == domain.OutcomeSkipped {
			continue
		}

		ent, gaps, err := builder.Build(ctx, n.URI, n.Entity)
		for _, g := range gaps {
			report.AddGap(g)
			fmt.Fprintf(uc.progress, "  ! gap on %s: %s\n", g.Predicate, g.Detail)
		}
		if err != nil {
			return uc.finish(report, nodes), "", err
		}

		if len(ent.Claims) > 0 {
			if err := uc.writer.SubmitClaims(ctx, n.Entity, ent.Claims); err != nil {
				return uc.finish(report, nodes), "", err
			}
		}
		n.Claims = len(ent.Claims)
		fmt.Fprintf(uc.progress, "- [CLAIMS]  %s: %d\n", n.URI, len(ent.Claims))
	}

	report = uc.finish(report, nodes)

	runID := ""
	if uc.reports != nil {
		runID, err = uc.reports.SaveReport(report)
		if err != nil {
			return report, "", err
		}
	}

	uc.log.Info("convert.done",
		"created", report.Created, "reused", report.Reused,
		"skipped", report.Skipped, "claims", report.Claims, "gaps", len(report.Gaps))
	return report, runID, nil
}

func (uc *ConvertOntology) finish(report domain.Report, nodes []domain.NodeResult) domain.Report {
	for _, n := range nodes {
		report.AddNode(n)
	}
	report.EndedAt = uc.now()
	return report
}

// seed records the rule table's fixed targets so claim assembly resolves
// external predicates the same way as ontology-defined ones. Already
// recorded seeds (a rerun) are left untouched.
func (uc *ConvertOntology) seed() error {
	for _, l := range uc.rules.SeedLinks(uc.now()) {
		if _, ok, err := uc.store.Lookup(l.URI); err != nil {
			return err
		} else if ok {
			continue
		}
		if err := uc.store.Record(l); err != nil {
			return err
		}
	}
	return nil
}

// visitOrder returns the convertible subjects grouped into dependency
// tiers: property definitions first, class definitions second, everything
// else (the individuals referencing them) last. Within a tier the stable
// input order is kept for reproducible logs. Ignored subjects (the
// ontology header) are dropped here.
func visitOrder(g *domain.Graph, rules *domain.RuleTable) []string {
	var props, classes, rest []string
	for _, s := range g.Subjects() {
		types := g.TypesOf(s)
		if rules.Ignored(types) {
			continue
		}
		kind, ok := rules.KindFor(types)
		switch {
		case ok && kind == domain.EntityProperty:
			props = append(props, s)
		case ok && hasType(types, vocab.OWLClass):
			classes = append(classes, s)
		default:
			rest = append(rest, s)
		}
	}

	out := make([]string, 0, len(props)+len(classes)+len(rest))
	out = append(out, props...)
	out = append(out, classes...)
	out = append(out, rest...)
	return out
}

func hasType(types []string, iri string) bool {
	for _, t := range types {
		if t == iri {
			return true
		}
	}
	return false
}
