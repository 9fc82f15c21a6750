package classify

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ledgerchart/ledgerchart/internal/ledger"
)

// UnmappedCategory records a raw label that passed through the merge map
// unchanged, with the closest known label suggested for operator review.
type UnmappedCategory struct {
	Label      string
	Suggestion string
	Count      int
}

// Classifier applies the override chain and taxonomy merge to a batch.
// It mutates only the category fields and is idempotent: re-classifying an
// already-classified batch yields identical high-level values.
type Classifier struct {
	tax   *Taxonomy
	known []string
}

// New creates a classifier for one taxonomy. The merge-map keys double as
// the vocabulary for unmapped-label suggestions.
func New(tax *Taxonomy) *Classifier {
	known := make([]string, 0, len(tax.Merge))
	for k := range tax.Merge {
		known = append(known, k)
	}
	sort.Strings(known)
	return &Classifier{tax: tax, known: known}
}

// Classify resolves Category and CategoryHighLevel for every transaction,
// in place. The chain is: counter-party-name override, then counter-party
// account override (an account override wins even over a name override),
// then trim+lower normalization, then the merge map. Raw labels absent from
// the merge map leak through as the high-level category so novel labels
// surface in output instead of being dropped; they are returned as
// observations, most frequent first.
func (c *Classifier) Classify(txs []ledger.Transaction) []UnmappedCategory {
	unmapped := make(map[string]*UnmappedCategory)

	for i := range txs {
		tx := &txs[i]

		cat := tx.CategoryRaw
		if v, ok := c.tax.NameOverrides[tx.CounterName]; ok {
			cat = v
		}
		if v, ok := c.tax.AccountOverrides[tx.CounterAccount]; ok {
			cat = v
		}
		cat = strings.ToLower(strings.TrimSpace(cat))
		tx.Category = cat

		if high, ok := c.tax.Merge[cat]; ok {
			tx.CategoryHighLevel = high
			continue
		}

		tx.CategoryHighLevel = cat
		if cat == "" {
			continue
		}
		obs, ok := unmapped[cat]
		if !ok {
			obs = &UnmappedCategory{Label: cat, Suggestion: c.suggest(cat)}
			unmapped[cat] = obs
		}
		obs.Count++
	}

	out := make([]UnmappedCategory, 0, len(unmapped))
	for _, obs := range unmapped {
		out = append(out, *obs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// suggest returns the known raw label closest to the unmapped one by
// Levenshtein distance, or "" when nothing is remotely similar. The cutoff
// is half the label length so short labels don't get far-fetched matches.
func (c *Classifier) suggest(label string) string {
	best := ""
	bestDist := len([]rune(label))/2 + 1
	for _, candidate := range c.known {
		if d := fuzzy.LevenshteinDistance(label, candidate); d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best
}
