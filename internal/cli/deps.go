package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/infra/linkstore"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/infra/logger"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/infra/reportstore"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/infra/rules"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/infra/turtle"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/infra/wikibase"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/ports"
)

type convertOptions struct {
	dryRun  bool
	noState bool
	noSave  bool
	debug   bool
}

type convertDeps struct {
	loader  ports.OntologyLoader
	store   ports.LinkStore
	writer  ports.EntityWriter
	reports ports.ReportStore
	rules   *domain.RuleTable
	log     *slog.Logger
}

// buildDeps assembles the adapters a convert run needs. The returned
// cleanup closes the link store and the log file.
func buildDeps(cfg domain.Config, o convertOptions) (*convertDeps, func(), error) {
	logCleanup, _ := logger.Setup(logger.Config{
		Dir:   filepath.Join(cfg.Paths.StateDir, cfg.Paths.LogsDir),
		Debug: o.debug,
	})
	log := logger.L()

	table, err := rules.Load()
	if err != nil {
		return nil, nil, err
	}

	var store ports.LinkStore
	if o.noState {
		store = linkstore.NewMemory()
	} else {
		if err := os.MkdirAll(cfg.Paths.StateDir, 0o755); err != nil {
			return nil, nil, err
		}
		store, err = linkstore.Open(filepath.Join(cfg.Paths.StateDir, cfg.Paths.LinksFile))
		if err != nil {
			return nil, nil, err
		}
	}

	var writer ports.EntityWriter
	if o.dryRun {
		writer = wikibase.NewDryRun(log)
	} else {
		writer = wikibase.New(cfg.APIURL, log)
	}

	var reports ports.ReportStore
	if !o.noSave {
		reports = reportstore.NewJSONStore(cfg.Paths.StateDir, cfg)
	}

	cleanup := func() {
		_ = store.Close()
		if logCleanup != nil {
			_ = logCleanup()
		}
	}

	return &convertDeps{
		loader:  turtle.NewLoader(),
		store:   store,
		writer:  writer,
		reports: reports,
		rules:   table,
		log:     log,
	}, cleanup, nil
}
