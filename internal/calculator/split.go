// Package calculator implements the settlement computation engine: preset
// resolution, split-table editing, balance aggregation, and bulk settlement.
// It operates purely on in-memory values supplied by callers and performs
// no I/O; the service layer converts between these types and the domain
// models.
package calculator

import "github.com/shopspring/decimal"

// MaxLiquidators is the maximum number of entries in a split table.
const MaxLiquidators = 3

// Entry is one row of a split table.
type Entry struct {
	Payer   int64  // member who owes this share, 0 = unselected
	Rate    string // percentage of the content amount, may be empty
	Payment string // monetary amount, computed or manually overridden
	Paid    bool
}

// SplitTable is the ordered, size-bounded list of split entries for one
// content. It always holds between 1 and MaxLiquidators entries; by
// convention the first entry represents the content's creditor.
type SplitTable struct {
	entries []Entry
}

// NewSplitTable returns a table with the single blank default entry.
func NewSplitTable() SplitTable {
	return SplitTable{entries: []Entry{{}}}
}

// SplitTableFrom builds a table replaying an already-persisted liquidation
// list, as happens when editing an existing content. An empty list falls
// back to the blank default so the table is never empty.
func SplitTableFrom(entries []Entry) SplitTable {
	if len(entries) == 0 {
		return NewSplitTable()
	}
	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return SplitTable{entries: copied}
}

// Clone returns an independent copy of the table.
func (t SplitTable) Clone() SplitTable {
	return SplitTableFrom(t.entries)
}

// Len returns the number of entries.
func (t SplitTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table's rows in order.
func (t SplitTable) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// SetCreditor marks the first entry as the content's creditor: the payer
// cannot owe themselves, so the entry is forced paid.
func (t *SplitTable) SetCreditor(memberID int64) {
	t.entries[0].Payer = memberID
	t.entries[0].Paid = true
}

// SetPayer updates the payer of the addressed entry. Out-of-range indexes
// are ignored.
func (t *SplitTable) SetPayer(i int, memberID int64) {
	if i < 0 || i >= len(t.entries) {
		return
	}
	t.entries[i].Payer = memberID
}

// SetRate updates the rate of the addressed entry and recomputes its
// payment from the content amount. If either the rate or the amount is not
// a valid decimal the payment is left unchanged — partial input during
// editing is expected, not an error. Only the addressed entry is touched.
func (t *SplitTable) SetRate(i int, rate, amount string) {
	if i < 0 || i >= len(t.entries) {
		return
	}
	t.entries[i].Rate = rate
	if payment, ok := ratePayment(rate, amount); ok {
		t.entries[i].Payment = payment
	}
}

// SetPayment overrides the payment of the addressed entry by hand.
func (t *SplitTable) SetPayment(i int, payment string) {
	if i < 0 || i >= len(t.entries) {
		return
	}
	t.entries[i].Payment = payment
}

// SetPaid updates the paid flag of the addressed entry.
func (t *SplitTable) SetPaid(i int, paid bool) {
	if i < 0 || i >= len(t.entries) {
		return
	}
	t.entries[i].Paid = paid
}

// AddEntry appends a blank entry. Adding beyond MaxLiquidators is a silent
// no-op: the affordance should already be disabled upstream, but the table
// defends the bound regardless.
func (t *SplitTable) AddEntry() {
	if len(t.entries) >= MaxLiquidators {
		return
	}
	t.entries = append(t.entries, Entry{})
}

// RemoveEntry deletes the addressed entry. A table may never be emptied,
// so removing the last remaining entry is a silent no-op.
func (t *SplitTable) RemoveEntry(i int) {
	if len(t.entries) <= 1 || i < 0 || i >= len(t.entries) {
		return
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
}

// Finished reports whether every entry in the table is paid.
func (t SplitTable) Finished() bool {
	for _, e := range t.entries {
		if !e.Paid {
			return false
		}
	}
	return len(t.entries) > 0
}

// Submission is the split table projected into four parallel sequences of
// equal length, in table order, for transmission to the persistence layer.
type Submission struct {
	Payers   []int64
	Rates    []string
	Payments []string
	Paid     []bool
}

// Submission projects the table for persistence.
func (t SplitTable) Submission() Submission {
	sub := Submission{
		Payers:   make([]int64, len(t.entries)),
		Rates:    make([]string, len(t.entries)),
		Payments: make([]string, len(t.entries)),
		Paid:     make([]bool, len(t.entries)),
	}
	for i, e := range t.entries {
		sub.Payers[i] = e.Payer
		sub.Rates[i] = e.Rate
		sub.Payments[i] = e.Payment
		sub.Paid[i] = e.Paid
	}
	return sub
}

// ratePayment computes round-half-up(rate × amount / 100) as a decimal
// string. Returns false when either operand fails to parse.
func ratePayment(rate, amount string) (string, bool) {
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return "", false
	}
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return "", false
	}
	// Round(0) rounds half away from zero, which is half-up for the
	// non-negative values reachable here.
	return r.Mul(a).Div(decimal.NewFromInt(100)).Round(0).String(), true
}
