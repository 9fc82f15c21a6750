// Package refund pairs debit and credit legs that represent mutual
// reversals of the same economic event and removes both from the batch.
//
// The matching is greedy and order-dependent by design: credits are
// processed in ascending booking-date order and each takes the
// earliest-dated unconsumed debit that satisfies the predicate. This is not
// a maximum matching; it trades optimality for determinism and O(n*m)
// simplicity over small per-run batches.
package refund

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerchart/ledgerchart/internal/ledger"
)

// DefaultWindowDays is the booking-date window within which a credit and a
// debit can be considered the same reversal.
const DefaultWindowDays = 20

// Pair records one removed reversal by the origin indices of its legs.
type Pair struct {
	CreditIndex int
	DebitIndex  int
}

// Remove strips refund pairs from the batch and returns the surviving rows
// in their original order plus the pairs that were removed. Rows without a
// valid booking date are never eligible as either leg and are retained
// unconditionally. Zero pairs is a valid outcome.
//
// Removal is by OriginIndex, never by value equality, so an unrelated row
// with identical fields is never removed by accident.
func Remove(txs []ledger.Transaction, windowDays int) ([]ledger.Transaction, []Pair) {
	var debits, credits []*ledger.Transaction
	for i := range txs {
		tx := &txs[i]
		if !tx.HasDate() {
			continue
		}
		switch {
		case tx.Amount.IsNegative():
			debits = append(debits, tx)
		case tx.Amount.IsPositive():
			credits = append(credits, tx)
		}
	}

	// Stable sort: same-date legs keep original row order, which makes the
	// earliest-eligible tie-break reproducible across runs.
	byDate := func(legs []*ledger.Transaction) {
		sort.SliceStable(legs, func(i, j int) bool {
			return legs[i].BookingDate.Before(legs[j].BookingDate)
		})
	}
	byDate(debits)
	byDate(credits)

	consumedDebits := make(map[int]struct{})
	consumedCredits := make(map[int]struct{})
	var pairs []Pair

	for _, credit := range credits {
		creditAmount := credit.Amount.Round(2)
		for _, debit := range debits {
			if _, used := consumedDebits[debit.OriginIndex]; used {
				continue
			}
			if debit.CounterName != credit.CounterName {
				continue
			}
			if !debit.Amount.Abs().Round(2).Equal(creditAmount) {
				continue
			}
			if !withinWindow(credit.BookingDate, debit.BookingDate, windowDays) {
				continue
			}
			consumedDebits[debit.OriginIndex] = struct{}{}
			consumedCredits[credit.OriginIndex] = struct{}{}
			pairs = append(pairs, Pair{CreditIndex: credit.OriginIndex, DebitIndex: debit.OriginIndex})
			// A credit leg is consumed at most once.
			break
		}
	}

	kept := make([]ledger.Transaction, 0, len(txs)-2*len(pairs))
	for _, tx := range txs {
		if _, used := consumedDebits[tx.OriginIndex]; used {
			continue
		}
		if _, used := consumedCredits[tx.OriginIndex]; used {
			continue
		}
		kept = append(kept, tx)
	}
	return kept, pairs
}

// RemovedDebitTotal sums the debit legs of the removed pairs, for
// conservation checks against the input batch.
func RemovedDebitTotal(txs []ledger.Transaction, pairs []Pair) decimal.Decimal {
	byOrigin := make(map[int]*ledger.Transaction, len(txs))
	for i := range txs {
		byOrigin[txs[i].OriginIndex] = &txs[i]
	}
	total := decimal.Zero
	for _, p := range pairs {
		if tx, ok := byOrigin[p.DebitIndex]; ok {
			total = total.Add(tx.Debit)
		}
	}
	return total
}

func withinWindow(a, b time.Time, days int) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours()/24) <= days
}
