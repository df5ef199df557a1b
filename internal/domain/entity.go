package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// EntityKind is the Wikibase side of the divide: a thing or a relation.
type EntityKind string

const (
	EntityItem     EntityKind = "item"
	EntityProperty EntityKind = "property"
)

// EntityID is a Wikibase entity identifier such as "Q42" or "P279". IDs are
// allocated by the target store at creation time and treated as opaque apart
// from their kind prefix and numeric part.
type EntityID string

// Kind derives item/property from the ID prefix.
func (id EntityID) Kind() EntityKind {
	if strings.HasPrefix(string(id), "P") {
		return EntityProperty
	}
	return EntityItem
}

// Numeric returns the number after the kind prefix, as required by
// wikibase-entityid data values.
func (id EntityID) Numeric() (int, error) {
	if len(id) < 2 {
		return 0, fmt.Errorf("entity id %q too short", id)
	}
	n, err := strconv.Atoi(string(id)[1:])
	if err != nil {
		return 0, fmt.Errorf("entity id %q: %w", id, err)
	}
	return n, nil
}

// Valid reports whether the ID has a Q/P prefix followed by digits.
func (id EntityID) Valid() bool {
	if len(id) < 2 || (id[0] != 'Q' && id[0] != 'P') {
		return false
	}
	_, err := strconv.Atoi(string(id)[1:])
	return err == nil
}

// ValueKind discriminates the payload of a claim value.
type ValueKind string

const (
	ValueString   ValueKind = "string"
	ValueEntity   ValueKind = "entity"
	ValueQuantity ValueKind = "quantity"
)

// ClaimValue is the object side of a claim. Exactly one of the payload
// groups is meaningful, selected by Kind.
type ClaimValue struct {
	Kind ValueKind

	Text   string   // ValueString
	Entity EntityID // ValueEntity

	// ValueQuantity. Unit is "1" for dimensionless amounts, otherwise the
	// IRI of the unit entity.
	Amount string
	Unit   string
}

// StringValue builds a plain string claim value.
func StringValue(text string) ClaimValue {
	return ClaimValue{Kind: ValueString, Text: text}
}

// EntityValue builds a claim value referencing another entity.
func EntityValue(id EntityID) ClaimValue {
	return ClaimValue{Kind: ValueEntity, Entity: id}
}

// QuantityValue builds a unit-typed quantity claim value.
func QuantityValue(amount, unit string) ClaimValue {
	return ClaimValue{Kind: ValueQuantity, Amount: amount, Unit: unit}
}

// Claim attaches a property and value to an entity.
type Claim struct {
	Property EntityID
	Value    ClaimValue
}

// TargetEntity is a full Wikibase entity definition: what the converter
// wants one ontology node to become. Labels and descriptions are keyed by
// language tag. Claims keep the input order of the triples they came from.
type TargetEntity struct {
	Kind         EntityKind
	Labels       map[string]string
	Descriptions map[string]string

	// Datatype applies to properties only (e.g. "string", "wikibase-item").
	Datatype string

	Claims []Claim
}
