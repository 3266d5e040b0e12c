package calculator

// SettlementUpdate is the minimal per-content payload produced by bulk
// settlement: only the recomputed finished flag and the paid-flag sequence,
// never the full content.
type SettlementUpdate struct {
	ContentID string
	Finished  bool
	Paid      []bool
}

// ApplyBulk closes out one aggregated balance: for every content the entry
// references, it marks the matching split rows paid and recomputes the
// content's finished flag.
//
// A row matches when its payer is the balance's liquidator, and also when
// its payer is the balance's creditor while the content's own creditor is
// the liquidator — that second case is a debt that ran in the opposite
// direction before the aggregator merged it.
//
// Content ids that cannot be found are skipped; they still count toward
// batch completion at the caller but never fail it. The input contents are
// not mutated — each update carries the full new paid sequence for its
// content.
func ApplyBulk(balance BalanceEntry, contents []ContentForBalance) []SettlementUpdate {
	byID := make(map[string]ContentForBalance, len(contents))
	for _, c := range contents {
		byID[c.ID] = c
	}

	updates := make([]SettlementUpdate, 0, len(balance.ContentIDs))
	seen := make(map[string]bool, len(balance.ContentIDs))
	for _, id := range balance.ContentIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		content, found := byID[id]
		if !found {
			continue
		}

		paid := make([]bool, len(content.Liquidation))
		allPaid := len(content.Liquidation) > 0
		for i, entry := range content.Liquidation {
			paid[i] = entry.Paid
			if entry.Payer == balance.LiquidatorID {
				paid[i] = true
			} else if entry.Payer == balance.CreditorID && content.CreditorID == balance.LiquidatorID {
				paid[i] = true
			}
			if !paid[i] {
				allPaid = false
			}
		}

		updates = append(updates, SettlementUpdate{
			ContentID: id,
			Finished:  allPaid,
			Paid:      paid,
		})
	}
	return updates
}
