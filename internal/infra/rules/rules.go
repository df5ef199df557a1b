// Package rules loads the embedded mapping table driving the conversion.
package rules

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
)

//go:embed rules.yaml
var embedded []byte

// Load parses and validates the rule table shipped with the binary.
func Load() (*domain.RuleTable, error) {
	return Parse(embedded)
}

// Parse builds a rule table from YAML data.
func Parse(data []byte) (*domain.RuleTable, error) {
	var yt yamlTable
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return nil, &domain.OpError{
			Op:   "rules.parse",
			Kind: domain.KindInvalidInput,
			Err:  err,
		}
	}
	return mapAndValidate(yt)
}

type yamlTable struct {
	Version       int        `yaml:"version"`
	Labels        []string   `yaml:"labels"`
	Descriptions  []string   `yaml:"descriptions"`
	Skip          []string   `yaml:"skip"`
	ItemTypes     []string   `yaml:"item_types"`
	PropertyTypes []string   `yaml:"property_types"`
	IgnoredTypes  []string   `yaml:"ignored_types"`
	Claims        []yamlRule `yaml:"claims"`
}

type yamlRule struct {
	Source string            `yaml:"source"`
	Target string            `yaml:"target"`
	Kind   string            `yaml:"kind"`
	Values map[string]string `yaml:"values"`
	Unit   string            `yaml:"unit"`
}

func mapAndValidate(yt yamlTable) (*domain.RuleTable, error) {
	if yt.Version <= 0 {
		return nil, invalidField("version", "a positive version is required")
	}
	if len(yt.Labels) == 0 {
		return nil, invalidField("labels", "at least one label predicate is required")
	}

	table := &domain.RuleTable{
		Version:               yt.Version,
		Rules:                 make(map[string]domain.MappingRule, len(yt.Claims)),
		LabelPredicates:       yt.Labels,
		DescriptionPredicates: yt.Descriptions,
		SkipPredicates:        yt.Skip,
		ItemTypes:             yt.ItemTypes,
		PropertyTypes:         yt.PropertyTypes,
		IgnoredTypes:          yt.IgnoredTypes,
	}

	for i, yr := range yt.Claims {
		field := fmt.Sprintf("claims[%d]", i)

		if yr.Source == "" {
			return nil, invalidField(field+".source", "source IRI is required")
		}
		if _, dup := table.Rules[yr.Source]; dup {
			return nil, invalidField(field+".source", fmt.Sprintf("duplicate rule for %s", yr.Source))
		}

		kind, err := parseKind(yr.Kind)
		if err != nil {
			return nil, invalidField(field+".kind", err.Error())
		}

		rule := domain.MappingRule{
			Source: yr.Source,
			Target: domain.EntityID(yr.Target),
			Kind:   kind,
			Unit:   yr.Unit,
		}
		if yr.Target != "" && !rule.Target.Valid() {
			return nil, invalidField(field+".target", fmt.Sprintf("%q is not an entity id", yr.Target))
		}

		if kind == domain.RuleConstant {
			if len(yr.Values) == 0 {
				return nil, invalidField(field+".values", "constant rules need a values map")
			}
			rule.Values = make(map[string]domain.EntityID, len(yr.Values))
			for k, v := range yr.Values {
				id := domain.EntityID(v)
				if !id.Valid() {
					return nil, invalidField(field+".values", fmt.Sprintf("%q is not an entity id", v))
				}
				rule.Values[k] = id
			}
		}

		table.Rules[yr.Source] = rule
	}

	return table, nil
}

func parseKind(s string) (domain.RuleKind, error) {
	switch domain.RuleKind(s) {
	case domain.RuleLiteral, domain.RuleReference, domain.RuleConstant, domain.RuleQuantity:
		return domain.RuleKind(s), nil
	default:
		return "", fmt.Errorf("unknown rule kind %q", s)
	}
}

func invalidField(field, msg string) error {
	return &domain.OpError{
		Op:   "rules.validate",
		Kind: domain.KindInvalidInput,
		Path: field,
		Err:  fmt.Errorf("%s", msg),
	}
}
