package ports

import (
	"context"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
)

// EntityWriter creates and amends entities in the target Wikibase instance.
// Every call is a blocking remote operation that may fail; implementations
// classify failures with domain error kinds (auth, remote).
type EntityWriter interface {
	// Login authenticates the session. It must be called before any write.
	Login(ctx context.Context, user, password string) error

	// CreateEntity creates a new item or property from the entity's kind,
	// labels, descriptions and (for properties) datatype. Claims on the
	// entity are ignored here; they are submitted separately once every
	// referenced identifier exists.
	CreateEntity(ctx context.Context, e domain.TargetEntity) (domain.EntityID, error)

	// SubmitClaims attaches claims to an existing entity.
	SubmitClaims(ctx context.Context, id domain.EntityID, claims []domain.Claim) error

	// Clear removes all data from an existing entity.
	Clear(ctx context.Context, id domain.EntityID) error
}
