package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/infra/rules"
)

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the embedded predicate mapping table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := rules.Load()
			if err != nil {
				return err
			}
			printRules(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func printRules(w io.Writer, table *domain.RuleTable) {
	fmt.Fprintf(w, "rule table version %d, %d predicate rules\n\n", table.Version, len(table.Rules))

	sources := make([]string, 0, len(table.Rules))
	for src := range table.Rules {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	for _, src := range sources {
		r := table.Rules[src]
		fmt.Fprintf(w, "%-9s %-6s %s\n", r.Kind, r.Target, src)
		if r.Kind == domain.RuleQuantity && r.Unit != "" {
			fmt.Fprintf(w, "%-9s %-6s   unit %s\n", "", "", r.Unit)
		}
		if len(r.Values) > 0 {
			vals := make([]string, 0, len(r.Values))
			for v := range r.Values {
				vals = append(vals, v)
			}
			sort.Strings(vals)
			for _, v := range vals {
				fmt.Fprintf(w, "%-9s %-6s   %s = %s\n", "", "", v, r.Values[v])
			}
		}
	}

	fmt.Fprintf(w, "\nlabels:       %v\n", table.LabelPredicates)
	fmt.Fprintf(w, "descriptions: %v\n", table.DescriptionPredicates)
	fmt.Fprintf(w, "skipped:      %v\n", table.SkipPredicates)
}
