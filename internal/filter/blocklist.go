// Package filter removes transactions whose counter-party matches a
// configured blocklist. The filter runs before classification so blocked
// rows never influence refund matching or aggregation.
package filter

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/ledgerchart/ledgerchart/internal/ledger"
)

// Blocklist matches counter-party names case-insensitively: exact names via
// a set lookup, optional substring patterns via a single Aho-Corasick pass.
type Blocklist struct {
	names   map[string]struct{}
	matcher *ahocorasick.Matcher
}

// New builds a blocklist from exact names and substring patterns. Both lists
// may be empty; an empty blocklist blocks nothing.
func New(names, patterns []string) *Blocklist {
	b := &Blocklist{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		b.names[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}

	cleaned := make([][]byte, 0, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			cleaned = append(cleaned, []byte(p))
		}
	}
	if len(cleaned) > 0 {
		b.matcher = ahocorasick.NewMatcher(cleaned)
	}
	return b
}

// Blocked reports whether a counter-party name matches the blocklist.
func (b *Blocklist) Blocked(counterName string) bool {
	lower := strings.ToLower(strings.TrimSpace(counterName))
	if _, ok := b.names[lower]; ok {
		return true
	}
	if b.matcher != nil && len(b.matcher.Match([]byte(lower))) > 0 {
		return true
	}
	return false
}

// Apply returns the transactions whose counter-party is not blocked.
// Surviving rows are not mutated; input order is preserved.
func (b *Blocklist) Apply(txs []ledger.Transaction) []ledger.Transaction {
	if len(b.names) == 0 && b.matcher == nil {
		return txs
	}
	kept := make([]ledger.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !b.Blocked(tx.CounterName) {
			kept = append(kept, tx)
		}
	}
	return kept
}
