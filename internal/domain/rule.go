package domain

import (
	"sort"
	"time"
)

// RuleKind selects how a mapped predicate's object becomes a claim value.
type RuleKind string

const (
	// RuleLiteral passes the literal's lexical form through as a string.
	RuleLiteral RuleKind = "literal"
	// RuleReference resolves the object IRI to an entity reference.
	RuleReference RuleKind = "reference"
	// RuleConstant maps an enumerated object value to a fixed item ID.
	RuleConstant RuleKind = "constant"
	// RuleQuantity renders a numeric literal as a unit-typed quantity.
	RuleQuantity RuleKind = "quantity"
)

// MappingRule translates one source predicate into a Wikibase claim shape.
type MappingRule struct {
	// Source is the predicate IRI the rule applies to.
	Source string

	// Target is the fixed property ID the predicate corresponds to. Targets
	// are seeded into the correspondence store before conversion, so claim
	// assembly resolves seeded and ontology-defined predicates the same way.
	Target EntityID

	Kind RuleKind

	// Values maps enumerated object values to item IDs (RuleConstant only).
	Values map[string]EntityID

	// Unit qualifies RuleQuantity amounts; "1" means dimensionless.
	Unit string
}

// RuleTable is the declarative mapping data driving the conversion. It is
// versioned, embedded with the binary, and edited by maintainers whenever the
// ontology gains external predicates; a predicate absent from the table and
// not defined in the ontology itself is a mapping gap.
type RuleTable struct {
	Version int

	Rules map[string]MappingRule

	// LabelPredicates and DescriptionPredicates feed entity labels and
	// descriptions instead of claims.
	LabelPredicates       []string
	DescriptionPredicates []string

	// SkipPredicates produce neither claims nor annotations.
	SkipPredicates []string

	// ItemTypes, PropertyTypes and IgnoredTypes classify a subject's
	// rdf:type set into the entity kind to create, or exclude it outright.
	ItemTypes     []string
	PropertyTypes []string
	IgnoredTypes  []string
}

// Rule looks up the mapping rule for a predicate.
func (t *RuleTable) Rule(predicate string) (MappingRule, bool) {
	r, ok := t.Rules[predicate]
	return r, ok
}

// IsLabel reports whether the predicate feeds labels.
func (t *RuleTable) IsLabel(predicate string) bool {
	return contains(t.LabelPredicates, predicate)
}

// IsDescription reports whether the predicate feeds descriptions.
func (t *RuleTable) IsDescription(predicate string) bool {
	return contains(t.DescriptionPredicates, predicate)
}

// NonClaim reports whether the predicate is excluded from claim assembly,
// either because it is an annotation or because it is skipped outright.
func (t *RuleTable) NonClaim(predicate string) bool {
	return t.IsLabel(predicate) || t.IsDescription(predicate) || contains(t.SkipPredicates, predicate)
}

// KindFor classifies a subject's rdf:type set. ok is false when no type is
// known to the table, which callers treat as a mapping gap.
func (t *RuleTable) KindFor(types []string) (EntityKind, bool) {
	for _, typ := range types {
		if contains(t.PropertyTypes, typ) {
			return EntityProperty, true
		}
	}
	for _, typ := range types {
		if contains(t.ItemTypes, typ) {
			return EntityItem, true
		}
	}
	return "", false
}

// Ignored reports whether any of the types excludes the subject from
// conversion (the owl:Ontology document header, typically).
func (t *RuleTable) Ignored(types []string) bool {
	for _, typ := range types {
		if contains(t.IgnoredTypes, typ) {
			return true
		}
	}
	return false
}

// SeedLinks returns the correspondence links for every rule with a fixed
// target, in stable source order.
func (t *RuleTable) SeedLinks(now time.Time) []Link {
	sources := make([]string, 0, len(t.Rules))
	for src, r := range t.Rules {
		if r.Target != "" {
			sources = append(sources, src)
		}
	}
	sort.Strings(sources)

	links := make([]Link, 0, len(sources))
	for _, src := range sources {
		links = append(links, Link{URI: src, Entity: t.Rules[src].Target, CreatedAt: now})
	}
	return links
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
