package calculator

// Draft is the in-progress edit state for one content: the fields that
// drive split-table recomputation plus the table itself. Handlers take a
// draft by value and return the updated copy, so callers hold an explicit
// before/after pair instead of shared mutable state wired to UI events.
type Draft struct {
	// Edit marks a draft for an existing content. Edit drafts replay the
	// persisted split table as-is and never re-derive it from category
	// presets.
	Edit bool

	Amount     string
	CategoryID int64
	CreditorID int64
	Table      SplitTable
}

// NewDraft returns a fresh draft for a new content, with the blank
// single-entry table.
func NewDraft() Draft {
	return Draft{Table: NewSplitTable()}
}

// EditDraft returns a draft replaying an existing content.
func EditDraft(amount string, categoryID, creditorID int64, entries []Entry) Draft {
	return Draft{
		Edit:       true,
		Amount:     amount,
		CategoryID: categoryID,
		CreditorID: creditorID,
		Table:      SplitTableFrom(entries),
	}
}

// WithCreditor records a creditor change. For new drafts the first table
// entry becomes the creditor (forced paid), and preset resolution runs if
// a category is also chosen. Edit drafts only record the id. Clearing the
// creditor (id 0) records the id and nothing else.
func (d Draft) WithCreditor(creditorID int64, presets map[int64]string) Draft {
	d.CreditorID = creditorID
	if d.Edit || creditorID == 0 {
		return d
	}
	table := d.Table.Clone()
	table.SetCreditor(creditorID)
	d.Table = table
	return d.maybePreset(presets)
}

// WithCategory records a category change and runs preset resolution if a
// creditor is also chosen.
func (d Draft) WithCategory(categoryID int64, presets map[int64]string) Draft {
	d.CategoryID = categoryID
	return d.maybePreset(presets)
}

// WithAmount records an amount change. Presets are re-resolved so that the
// preset payments pick up the new amount.
func (d Draft) WithAmount(amount string, presets map[int64]string) Draft {
	d.Amount = amount
	return d.maybePreset(presets)
}

// maybePreset applies the category preset to the table. It is skipped
// entirely for edit drafts and until both a category and a creditor are
// chosen — before that the table stays at whatever it currently holds.
func (d Draft) maybePreset(presets map[int64]string) Draft {
	if d.Edit || d.CategoryID == 0 || d.CreditorID == 0 {
		return d
	}
	rules, ok := ParsePresetRules(presets[d.CategoryID])
	if !ok {
		// Malformed preset payload: degrade to the blank default with the
		// creditor applied rather than surfacing an error.
		table := NewSplitTable()
		table.SetCreditor(d.CreditorID)
		d.Table = table
		return d
	}
	d.Table = ResolvePreset(rules, d.CreditorID, d.Amount)
	return d
}

// WithRate updates the addressed entry's rate, recomputing its payment
// from the draft amount when both parse.
func (d Draft) WithRate(i int, rate string) Draft {
	table := d.Table.Clone()
	table.SetRate(i, rate, d.Amount)
	d.Table = table
	return d
}

// WithPayer updates the addressed entry's payer.
func (d Draft) WithPayer(i int, memberID int64) Draft {
	table := d.Table.Clone()
	table.SetPayer(i, memberID)
	d.Table = table
	return d
}

// WithPayment overrides the addressed entry's payment by hand.
func (d Draft) WithPayment(i int, payment string) Draft {
	table := d.Table.Clone()
	table.SetPayment(i, payment)
	d.Table = table
	return d
}

// WithPaid toggles the addressed entry's paid flag.
func (d Draft) WithPaid(i int, paid bool) Draft {
	table := d.Table.Clone()
	table.SetPaid(i, paid)
	d.Table = table
	return d
}

// WithEntryAdded appends a blank entry, a no-op at the size bound.
func (d Draft) WithEntryAdded() Draft {
	table := d.Table.Clone()
	table.AddEntry()
	d.Table = table
	return d
}

// WithEntryRemoved removes the addressed entry, a no-op for the last one.
func (d Draft) WithEntryRemoved(i int) Draft {
	table := d.Table.Clone()
	table.RemoveEntry(i)
	d.Table = table
	return d
}

// Finished reports the derived finished flag of the draft's table.
func (d Draft) Finished() bool {
	return d.Table.Finished()
}
