// Package reconcile decides which imported transactions already exist in
// the store.
package reconcile

import (
	"fmt"
	"time"

	"github.com/ledgerlight/backend/internal/models"
)

// Policy controls how duplicates are detected during import.
type Policy string

const (
	// PolicyStrict treats an incoming transaction as a duplicate iff an
	// existing transaction matches on all three of date (exact instant),
	// raw payee (exact string) and amount (exact value).
	//
	// Matching on the bank-issued transaction ID alone is deliberately not
	// supported: re-exports of overlapping date ranges often omit or
	// regenerate IDs, and ID-only matching has caused near-total data loss
	// on re-import. The three-field match is exact rather than fuzzy to
	// avoid false positives; the rare true duplicate with a typo'd field
	// slips through, and two genuinely identical purchases on the same day
	// are collapsed. Both are accepted trade-offs.
	PolicyStrict Policy = "strict"

	// PolicyOff accepts every incoming transaction.
	PolicyOff Policy = "off"
)

// ParsePolicy returns the Policy for a string, defaulting to strict.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyStrict, "":
		return PolicyStrict, nil
	case PolicyOff:
		return PolicyOff, nil
	}

	return PolicyStrict, fmt.Errorf("unknown duplicate detection policy: %q", s)
}

// key identifies a transaction for duplicate detection.
type key struct {
	date   time.Time
	payee  string
	amount string
}

func keyOf(t models.Transaction) key {
	return key{
		// Compare instants, not wall clock representations
		date:  t.Date.Round(0).UTC(),
		payee: t.Payee,
		// The decimal's canonical string preserves exact numeric equality
		amount: t.Amount.String(),
	}
}

// Reconcile filters incoming transactions against the existing store.
// It returns the transactions to import and the number of skipped
// duplicates. The existing set is indexed once, so the comparison stays
// fast for tens of thousands of records.
func Reconcile(incoming, existing []models.Transaction, policy Policy) (accepted []models.Transaction, skipped int) {
	accepted = make([]models.Transaction, 0, len(incoming))

	if policy == PolicyOff {
		return append(accepted, incoming...), 0
	}

	index := make(map[key]struct{}, len(existing))
	for _, t := range existing {
		index[keyOf(t)] = struct{}{}
	}

	for _, t := range incoming {
		if _, ok := index[keyOf(t)]; ok {
			skipped++
			continue
		}

		accepted = append(accepted, t)
	}

	return accepted, skipped
}
