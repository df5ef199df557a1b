package ports

import "github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"

// ReportStore persists conversion reports for reproducibility.
type ReportStore interface {
	// SaveReport writes the report and returns its run ID.
	SaveReport(r domain.Report) (id string, err error)
}
