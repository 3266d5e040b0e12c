package calculator

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContentForBalance carries the minimal content information needed for
// balance aggregation and bulk settlement.
type ContentForBalance struct {
	ID          string
	CreditorID  int64
	Liquidation []Entry
}

// BalanceEntry is the aggregated net amount one member (the liquidator)
// owes another (the creditor), together with the contents that contribute
// to it. Entries are a read-side projection rebuilt on every aggregation
// pass; the ID is unique within one run only.
type BalanceEntry struct {
	ID           string
	CreditorID   int64
	LiquidatorID int64

	// TotalAmount is what the liquidator still owes the creditor after
	// any opposite-direction balance has been netted against it.
	TotalAmount int64

	// ContentIDs lists the contributing contents, without duplicates.
	ContentIDs []string
}

// Aggregate scans the contents' split tables and collapses them into net
// balances between member pairs.
//
// Unpaid entries are accumulated per ordered (creditor, liquidator) pair in
// first-appearance order; contents without a creditor and entries without a
// resolvable liquidator are tolerated and skipped. The accumulated list is
// then sorted descending by amount, and a single left-to-right pass merges
// each entry into an already-accepted mirror entry (reversed pair) when one
// exists, subtracting the amount and pooling the content ids.
//
// The output preserves acceptance order: merges happen in descending-amount
// order and the result is not re-sorted afterwards, so the grouping order
// is largest-unmerged-balance-first rather than strictly sorted. Netting is
// two-party only — chains across three or more mutually indebted members
// are left alone.
func Aggregate(contents []ContentForBalance) []BalanceEntry {
	type pair struct {
		creditor, liquidator int64
	}

	totals := make(map[pair]*BalanceEntry)
	var order []pair

	for _, content := range contents {
		if content.CreditorID == 0 {
			continue
		}
		for _, entry := range content.Liquidation {
			if entry.Paid || entry.Payer == 0 {
				continue
			}

			key := pair{creditor: content.CreditorID, liquidator: entry.Payer}
			amount := paymentAmount(entry.Payment)

			if existing, seen := totals[key]; seen {
				existing.TotalAmount += amount
				existing.ContentIDs = appendContentID(existing.ContentIDs, content.ID)
				continue
			}
			totals[key] = &BalanceEntry{
				ID:           uuid.New().String(),
				CreditorID:   key.creditor,
				LiquidatorID: key.liquidator,
				TotalAmount:  amount,
				ContentIDs:   []string{content.ID},
			}
			order = append(order, key)
		}
	}

	sorted := make([]*BalanceEntry, 0, len(order))
	for _, key := range order {
		sorted = append(sorted, totals[key])
	}
	// Stable so that equal totals keep first-appearance order, which keeps
	// repeated aggregation runs over the same input identical.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalAmount > sorted[j].TotalAmount
	})

	merged := make([]BalanceEntry, 0, len(sorted))
	for _, entry := range sorted {
		if mirror := findMirror(merged, entry); mirror != nil {
			mirror.TotalAmount -= entry.TotalAmount
			for _, id := range entry.ContentIDs {
				mirror.ContentIDs = appendContentID(mirror.ContentIDs, id)
			}
			continue
		}
		merged = append(merged, *entry)
	}
	return merged
}

// findMirror locates an accepted entry whose pair is the reverse of the
// candidate's.
func findMirror(accepted []BalanceEntry, candidate *BalanceEntry) *BalanceEntry {
	for i := range accepted {
		if accepted[i].CreditorID == candidate.LiquidatorID &&
			accepted[i].LiquidatorID == candidate.CreditorID {
			return &accepted[i]
		}
	}
	return nil
}

// appendContentID appends id unless it is already present. Tables stay
// tiny, so a linear scan beats carrying a set alongside.
func appendContentID(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// paymentAmount parses a payment string into an integer amount, truncating
// any fractional part. Unparseable payments count as zero — partially
// populated records are expected and skipped rather than rejected.
func paymentAmount(payment string) int64 {
	d, err := decimal.NewFromString(payment)
	if err != nil {
		return 0
	}
	return d.IntPart()
}
