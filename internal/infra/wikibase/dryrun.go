package wikibase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/ports"
)

// DryRun allocates sequential entity IDs locally and never touches the
// network, so a conversion can be rehearsed end to end.
type DryRun struct {
	log        *slog.Logger
	items      int
	properties int
}

func NewDryRun(log *slog.Logger) *DryRun {
	return &DryRun{log: log}
}

var _ ports.EntityWriter = (*DryRun)(nil)

func (d *DryRun) Login(ctx context.Context, user, password string) error {
	d.log.Info("wikibase.dryrun.login", "user", user)
	return nil
}

func (d *DryRun) CreateEntity(ctx context.Context, e domain.TargetEntity) (domain.EntityID, error) {
	if e.Kind == domain.EntityProperty {
		d.properties++
		return domain.EntityID(fmt.Sprintf("P%d", d.properties)), nil
	}
	d.items++
	return domain.EntityID(fmt.Sprintf("Q%d", d.items)), nil
}

func (d *DryRun) SubmitClaims(ctx context.Context, id domain.EntityID, claims []domain.Claim) error {
	d.log.Debug("wikibase.dryrun.claims", "entity", string(id), "claims", len(claims))
	return nil
}

func (d *DryRun) Clear(ctx context.Context, id domain.EntityID) error {
	return nil
}
