package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/ports"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/vocab"
)

// Resolver maps RDF subjects to Wikibase entity IDs, creating a skeleton
// entity (labels and descriptions only, no claims) on first sight. The
// correspondence store makes every resolve after the first a lookup, which
// is what makes rerunning a whole conversion safe.
type Resolver struct {
	graph  *domain.Graph
	rules  *domain.RuleTable
	store  ports.LinkStore
	writer ports.EntityWriter
	cfg    domain.Config
	log    *slog.Logger
	now    func() time.Time
}

type ResolverOption func(*Resolver)

// WithResolverNow is useful for tests.
func WithResolverNow(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

func NewResolver(graph *domain.Graph, rules *domain.RuleTable, store ports.LinkStore, writer ports.EntityWriter, cfg domain.Config, log *slog.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		graph:  graph,
		rules:  rules,
		store:  store,
		writer: writer,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the entity ID for a subject, creating the entity if no
// correspondence record exists yet. created reports whether this call
// performed the creation. Subjects with an ignored type return
// domain.ErrSkip; subjects with an unknown type set fail with a
// mapping-gap error, which callers recover from by skipping the node.
func (r *Resolver) Resolve(ctx context.Context, subject string) (id domain.EntityID, created bool, err error) {
	if id, ok, err := r.store.Lookup(subject); err != nil {
		return "", false, err
	} else if ok {
		return id, false, nil
	}

	types := r.graph.TypesOf(subject)
	if r.rules.Ignored(types) {
		return "", false, domain.ErrSkip
	}

	kind, ok := r.rules.KindFor(types)
	if !ok {
		return "", false, &domain.OpError{
			Op:   "resolver.classify",
			Kind: domain.KindMappingGap,
			Path: subject,
			Err:  fmt.Errorf("no rule for rdf:type set %v", types),
		}
	}

	id, err = r.writer.CreateEntity(ctx, r.skeleton(subject, kind, types))
	if err != nil {
		return "", false, err
	}

	if err := r.store.Record(domain.Link{URI: subject, Entity: id, CreatedAt: r.now()}); err != nil {
		return "", false, err
	}

	r.log.Debug("resolver.created", "uri", subject, "entity", string(id), "kind", string(kind))
	return id, true, nil
}

// skeleton assembles the claim-less entity definition for a subject: labels
// and descriptions from the annotation predicates, the local name as label
// of last resort, and a datatype for properties.
func (r *Resolver) skeleton(subject string, kind domain.EntityKind, types []string) domain.TargetEntity {
	labels := domain.MergeAnnotations(r.graph, subject, r.rules.LabelPredicates, r.cfg.DefaultLanguage, r.cfg.AnnotationSeparator)
	if len(labels) == 0 {
		labels = map[string]string{r.cfg.DefaultLanguage: domain.LocalName(subject)}
	}

	descs := domain.MergeAnnotations(r.graph, subject, r.rules.DescriptionPredicates, r.cfg.DefaultLanguage, r.cfg.AnnotationSeparator)
	for lang, d := range descs {
		descs[lang] = domain.Truncate(d, r.cfg.MaxDescriptionRunes)
	}

	ent := domain.TargetEntity{Kind: kind, Labels: labels, Descriptions: descs}
	if kind == domain.EntityProperty {
		ent.Datatype = propertyDatatype(types)
	}
	return ent
}

// propertyDatatype picks the Wikibase datatype of a created property:
// object properties hold entity references, datatype properties hold
// strings. rdfs:range is not consulted.
func propertyDatatype(types []string) string {
	for _, t := range types {
		if t == vocab.OWLObjectProperty {
			return "wikibase-item"
		}
	}
	return "string"
}
