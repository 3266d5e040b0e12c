package models

// LiquidationEntry is one row of a content's split table: who owes this
// share, at what percentage, for how much, and whether it has been paid.
type LiquidationEntry struct {
	// PayerID identifies the member who owes this share. 0 means unset.
	PayerID int64 `json:"payer_id"`

	// Rate is the percentage of the content amount this entry owes, as a
	// decimal string. May be empty while the row is being edited.
	Rate string `json:"rate"`

	// Payment is the monetary amount for this entry, as a decimal string.
	// Usually derived from Rate and the content amount, but can be
	// overridden by hand.
	Payment string `json:"payment"`

	// Paid reports whether this share has been settled.
	Paid bool `json:"-"`
}

// Content represents one shared expense ("content" in the upstream store):
// a subject, an amount, the member who paid (creditor), and the liquidation
// table describing who owes what.
type Content struct {
	// ID is the unique identifier for the content (UUID format).
	ID string `json:"id"`

	// Subject is the human-readable description of the expense.
	Subject string `json:"subject"`

	// Amount is the total expense amount as a decimal string.
	Amount string `json:"amount"`

	// Purpose is an optional free-text note.
	Purpose string `json:"purpose,omitempty"`

	// Ymd is the expense date in YYYY-MM-DD form.
	Ymd string `json:"ymd"`

	// CategoryID references the expense category. 0 means uncategorized.
	CategoryID int64 `json:"category_id"`

	// CreditorID references the member who paid for the expense and is
	// owed by the liquidators. 0 means no creditor chosen yet.
	CreditorID int64 `json:"creditor_id"`

	// Liquidation is the ordered split table for this content. Holds
	// between 1 and 3 entries once the content has been through a draft.
	Liquidation []LiquidationEntry `json:"liquidation"`

	// Finished reports whether every liquidation entry is paid. Derived;
	// must be recomputed after every mutation of the table.
	Finished bool `json:"-"`

	// CreatedAt and UpdatedAt are Unix timestamps maintained by the store.
	CreatedAt int64 `json:"created_at,omitempty"`
	UpdatedAt int64 `json:"updated_at,omitempty"`
}

// RecomputeFinished re-derives the finished flag from the liquidation
// table. A content with no entries is not finished.
func (c *Content) RecomputeFinished() {
	if len(c.Liquidation) == 0 {
		c.Finished = false
		return
	}
	for _, e := range c.Liquidation {
		if !e.Paid {
			c.Finished = false
			return
		}
	}
	c.Finished = true
}

// Filter selects contents by their finished flag.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterUnpaid Filter = "unpaid"
	FilterPaid   Filter = "paid"
)

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterUnpaid, FilterPaid:
		return true
	}
	return false
}
