package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/ports"
)

// Builder turns one subject's triples into a full entity definition by
// applying the rule table and resolving every referenced node through the
// Resolver. Predicates and values without a rule become gaps, not failures:
// the ontology evolves, and absent rules are expected.
type Builder struct {
	graph    *domain.Graph
	rules    *domain.RuleTable
	store    ports.LinkStore
	resolver *Resolver
	log      *slog.Logger
}

func NewBuilder(graph *domain.Graph, rules *domain.RuleTable, store ports.LinkStore, resolver *Resolver, log *slog.Logger) *Builder {
	return &Builder{
		graph:    graph,
		rules:    rules,
		store:    store,
		resolver: resolver,
		log:      log,
	}
}

// Build produces the full entity for a subject whose skeleton already
// exists as id. Claims keep triple input order. Returned gaps describe
// every claim that was dropped; an error means the run must stop
// (a broken resolver invariant or a remote failure).
func (b *Builder) Build(ctx context.Context, subject string, id domain.EntityID) (domain.TargetEntity, []domain.Gap, error) {
	ent := b.resolver.skeleton(subject, id.Kind(), b.graph.TypesOf(subject))

	var gaps []domain.Gap
	for _, t := range b.graph.Triples(subject) {
		if b.rules.NonClaim(t.Predicate) {
			continue
		}

		propID, gap, err := b.propertyFor(subject, t.Predicate)
		if err != nil {
			return domain.TargetEntity{}, gaps, err
		}
		if gap != nil {
			gaps = append(gaps, *gap)
			b.log.Warn("builder.gap", "subject", subject, "predicate", t.Predicate, "detail", gap.Detail)
			continue
		}

		val, gap, err := b.valueFor(ctx, subject, t)
		if err != nil {
			return domain.TargetEntity{}, gaps, err
		}
		if gap != nil {
			gaps = append(gaps, *gap)
			b.log.Warn("builder.gap", "subject", subject, "predicate", t.Predicate, "detail", gap.Detail)
			continue
		}

		ent.Claims = append(ent.Claims, domain.Claim{Property: propID, Value: val})
	}

	return ent, gaps, nil
}

// propertyFor resolves a predicate to the property ID its claims use. Both
// seeded rule targets and ontology-defined properties are looked up in the
// correspondence store; a convertible ontology predicate without a record
// means the skeleton pass was broken.
func (b *Builder) propertyFor(subject, predicate string) (domain.EntityID, *domain.Gap, error) {
	if id, ok, err := b.store.Lookup(predicate); err != nil {
		return "", nil, err
	} else if ok {
		return id, nil, nil
	}

	if b.graph.HasSubject(predicate) && b.convertible(predicate) {
		return "", nil, &domain.OpError{
			Op:   "builder.property",
			Kind: domain.KindConsistency,
			Path: predicate,
			Err:  errors.New("ontology-defined predicate has no correspondence record"),
		}
	}

	return "", &domain.Gap{Subject: subject, Predicate: predicate, Detail: "unmapped predicate"}, nil
}

// valueFor transforms a triple's object into a claim value. Without an
// overriding rule, literals pass through as strings and IRIs resolve to
// entity references.
func (b *Builder) valueFor(ctx context.Context, subject string, t domain.Triple) (domain.ClaimValue, *domain.Gap, error) {
	if rule, ok := b.rules.Rule(t.Predicate); ok {
		switch rule.Kind {
		case domain.RuleConstant:
			id, ok := rule.Values[t.Object.Value]
			if !ok {
				return domain.ClaimValue{}, &domain.Gap{
					Subject:   subject,
					Predicate: t.Predicate,
					Detail:    fmt.Sprintf("enumerated value %q has no constant mapping", t.Object.Value),
				}, nil
			}
			return domain.EntityValue(id), nil, nil

		case domain.RuleQuantity:
			amount, err := normalizeAmount(t.Object.Value)
			if !t.Object.IsLiteral() || err != nil {
				return domain.ClaimValue{}, &domain.Gap{
					Subject:   subject,
					Predicate: t.Predicate,
					Detail:    fmt.Sprintf("value %q is not a quantity", t.Object.Value),
				}, nil
			}
			unit := rule.Unit
			if unit == "" {
				unit = "1"
			}
			return domain.QuantityValue(amount, unit), nil, nil
		}
	}

	switch {
	case t.Object.IsLiteral():
		return domain.StringValue(t.Object.Value), nil, nil
	case t.Object.IsBlank():
		return domain.ClaimValue{}, &domain.Gap{
			Subject:   subject,
			Predicate: t.Predicate,
			Detail:    "blank node objects are not convertible",
		}, nil
	default:
		return b.referenceValue(ctx, subject, t)
	}
}

// referenceValue resolves an object IRI to an entity reference. Subjects of
// the graph must already hold a record from the skeleton pass; IRIs outside
// the graph go through the resolver and usually end as gaps (no triples, no
// type, no rule).
func (b *Builder) referenceValue(ctx context.Context, subject string, t domain.Triple) (domain.ClaimValue, *domain.Gap, error) {
	object := t.Object.Value

	if id, ok, err := b.store.Lookup(object); err != nil {
		return domain.ClaimValue{}, nil, err
	} else if ok {
		return domain.EntityValue(id), nil, nil
	}

	if b.graph.HasSubject(object) {
		if b.convertible(object) {
			return domain.ClaimValue{}, nil, &domain.OpError{
				Op:   "builder.reference",
				Kind: domain.KindConsistency,
				Path: object,
				Err:  errors.New("referenced subject has no correspondence record"),
			}
		}
		return domain.ClaimValue{}, &domain.Gap{
			Subject:   subject,
			Predicate: t.Predicate,
			Detail:    fmt.Sprintf("reference to skipped subject %s", object),
		}, nil
	}

	id, _, err := b.resolver.Resolve(ctx, object)
	if err != nil {
		if errors.Is(err, domain.ErrSkip) || domain.IsKind(err, domain.KindMappingGap) {
			return domain.ClaimValue{}, &domain.Gap{
				Subject:   subject,
				Predicate: t.Predicate,
				Detail:    fmt.Sprintf("unresolvable reference %s", object),
			}, nil
		}
		return domain.ClaimValue{}, nil, err
	}
	return domain.EntityValue(id), nil, nil
}

// convertible reports whether the rule table can classify the subject at
// all. References to unconvertible subjects are gaps; references to
// convertible ones without a record are consistency violations.
func (b *Builder) convertible(subject string) bool {
	types := b.graph.TypesOf(subject)
	if b.rules.Ignored(types) {
		return false
	}
	_, ok := b.rules.KindFor(types)
	return ok
}

// normalizeAmount validates a numeric lexical form and adds the explicit
// sign Wikibase quantity values require.
func normalizeAmount(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		return "", err
	}
	if strings.HasPrefix(trimmed, "+") || strings.HasPrefix(trimmed, "-") {
		return trimmed, nil
	}
	return "+" + trimmed, nil
}
