package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/usecase"
)

func convertCmd() *cobra.Command {
	var api string
	var ontology string
	var stateDir string
	var format string
	var dryRun bool
	var noState bool
	var noSave bool
	var debug bool

	c := &cobra.Command{
		Use:   "convert <user> <password>",
		Short: "Run the full ontology conversion against the target Wikibase",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := domain.DefaultConfig()
			if api != "" {
				cfg.APIURL = api
			}
			cfg.Paths.StateDir = stateDir

			deps, cleanup, err := buildDeps(cfg, convertOptions{
				dryRun:  dryRun,
				noState: noState,
				noSave:  noSave,
				debug:   debug,
			})
			if err != nil {
				return err
			}
			defer cleanup()

			uc := usecase.NewConvertOntology(
				deps.loader, deps.store, deps.writer, deps.reports,
				deps.rules, cfg, deps.log,
				usecase.WithProgress(os.Stdout),
				usecase.WithDryRun(dryRun),
			)

			source := resolveSource(ontology)
			report, runID, err := uc.Execute(cmd.Context(), source, args[0], args[1])
			if err != nil {
				// Print what we have; partial outcomes still tell the
				// operator where the run stopped.
				_ = printReport(os.Stdout, report, runID, format)
				return err
			}

			return printReport(os.Stdout, report, runID, format)
		},
	}

	c.Flags().StringVar(&api, "api", "", "api.php endpoint of the target Wikibase (default: the OHO instance)")
	c.Flags().StringVar(&ontology, "ontology", "", "Ontology source: file path or URL (default: local osh-metadata.ttl, else the upstream document)")
	c.Flags().StringVar(&stateDir, "state-dir", domain.DefaultConfig().Paths.StateDir, "Directory for the link database, reports and logs")
	c.Flags().StringVar(&format, "format", "pretty", "Summary format: pretty|json")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Allocate IDs locally instead of calling the API")
	c.Flags().BoolVar(&noState, "no-state", false, "Keep the correspondence store in memory only")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not write a report artifact")
	c.Flags().BoolVar(&debug, "debug", false, "Verbose logging")

	return c
}

// resolveSource mirrors how the tool is usually run: a checked-out ontology
// file next to the binary wins, otherwise the published document is
// fetched.
func resolveSource(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if _, err := os.Stat(domain.DefaultLocalOntology); err == nil {
		return domain.DefaultLocalOntology
	}
	return domain.DefaultRemoteOntology
}

func printReport(w io.Writer, report domain.Report, runID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"run_id": runID,
			"report": report,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyReport(w, report, runID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyReport(w io.Writer, report domain.Report, runID string) {
	total := report.EndedAt.Sub(report.StartedAt)
	if report.StartedAt.IsZero() || report.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Source:   %s\n", report.Source)
	fmt.Fprintf(w, "Endpoint: %s\n", report.Endpoint)
	if report.DryRun {
		fmt.Fprintf(w, "Mode:     dry-run\n")
	}
	fmt.Fprintf(w, "Duration: %s\n", total)
	if runID != "" {
		fmt.Fprintf(w, "Run ID:   %s\n", runID)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%d created / %d reused / %d skipped, %d claims\n",
		report.Created, report.Reused, report.Skipped, report.Claims)

	if len(report.Gaps) > 0 {
		fmt.Fprintf(w, "\n%d mapping gap(s):\n", len(report.Gaps))
		for _, g := range report.Gaps {
			if g.Predicate != "" {
				fmt.Fprintf(w, "  ! %s %s: %s\n", g.Subject, g.Predicate, g.Detail)
			} else {
				fmt.Fprintf(w, "  ! %s: %s\n", g.Subject, g.Detail)
			}
		}
	}
}
