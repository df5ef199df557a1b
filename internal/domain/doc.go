// Package domain contains the core domain model for the ontology conversion.
//
// The domain is transport- and persistence-agnostic: it does not depend on the
// RDF parser, net/http, sqlite, or the filesystem. Infra/adapters map into/from
// these types.
package domain
