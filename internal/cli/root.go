package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/buildinfo"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "rdf2wb",
		Short:        "Convert the OKH-LOSH RDF ontology into Wikibase items and properties",
		SilenceUsage: true,
		Version:      buildinfo.Version,
	}
	cmd.SetVersionTemplate(buildinfo.String() + "\n")

	cmd.AddCommand(convertCmd())
	cmd.AddCommand(rulesCmd())
	return cmd
}
