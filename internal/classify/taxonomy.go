// Package classify resolves each transaction's high-level category through
// an ordered override chain followed by a many-to-one taxonomy merge.
package classify

import (
	_ "embed"
	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

//go:embed taxonomy/george.yaml
var georgeTaxonomy []byte

//go:embed taxonomy/patron.yaml
var patronTaxonomy []byte

// Taxonomy is the per-source classification configuration: two exact-match
// override tables and the merge map collapsing raw categories into
// high-level buckets. It is immutable once loaded.
type Taxonomy struct {
	NameOverrides    map[string]string `yaml:"name_overrides"`
	AccountOverrides map[string]string `yaml:"account_overrides"`
	Merge            map[string]string `yaml:"merge"`
}

// LoadTaxonomy parses a YAML taxonomy document. Override keys are trimmed so
// config files with stray whitespace still match the normalizer's trimmed
// counter-party fields; merge keys are trimmed and lower-cased to line up
// with the classifier's normalization step.
func LoadTaxonomy(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}

	t.NameOverrides = trimKeys(t.NameOverrides)
	t.AccountOverrides = trimKeys(t.AccountOverrides)

	merge := make(map[string]string, len(t.Merge))
	for k, v := range t.Merge {
		merge[strings.ToLower(strings.TrimSpace(k))] = v
	}
	t.Merge = merge

	return &t, nil
}

// George returns the built-in taxonomy for the george ledger export.
func George() *Taxonomy {
	return mustLoad(georgeTaxonomy)
}

// Patron returns the built-in taxonomy for the patron ledger export.
func Patron() *Taxonomy {
	return mustLoad(patronTaxonomy)
}

func mustLoad(data []byte) *Taxonomy {
	t, err := LoadTaxonomy(data)
	if err != nil {
		panic(fmt.Sprintf("embedded taxonomy invalid: %v", err))
	}
	return t
}

func trimKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.TrimSpace(k)] = v
	}
	return out
}
