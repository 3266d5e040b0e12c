package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/seisan-app/seisan/internal/calculator"
	"github.com/seisan-app/seisan/internal/metrics"
	"github.com/seisan-app/seisan/internal/models"
	"github.com/seisan-app/seisan/internal/storage"
)

// SettlementService builds the settlement summary and closes out
// aggregated balances in bulk.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given
// storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// BatchResult reports the outcome of one bulk settlement batch. Failures
// are isolated per content: the batch always runs to completion and the
// caller decides how to surface FirstErr.
type BatchResult struct {
	Updated  int
	Skipped  int
	Failed   int
	FirstErr error
}

// Summary aggregates the contents matching the filter into net balances.
func (s *SettlementService) Summary(ctx context.Context, filter models.Filter) ([]calculator.BalanceEntry, error) {
	if !filter.Valid() {
		return nil, ErrInvalidFilter
	}
	contents, err := s.store.ListContents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load contents for summary: %w", err)
	}
	return calculator.Aggregate(balanceViews(contents)), nil
}

// SettleBalance marks every split entry covered by the aggregated balance
// as paid, one independent store update per content.
//
// The updates are dispatched concurrently and are not ordered with respect
// to each other; the only guarantee is the join — SettleBalance returns
// (and the caller may rebuild the summary) only after every update has
// completed, successfully or not. A failed update never rolls back or
// stops the others.
func (s *SettlementService) SettleBalance(ctx context.Context, balance calculator.BalanceEntry) (BatchResult, error) {
	contents, err := s.store.ListContents(ctx, models.FilterAll)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to load contents for settlement: %w", err)
	}

	updates := calculator.ApplyBulk(balance, balanceViews(contents))

	var updated, failed atomic.Int64
	var g errgroup.Group
	for _, update := range updates {
		g.Go(func() error {
			if err := s.store.UpdateLiquidation(ctx, update.ContentID, update.Finished, update.Paid); err != nil {
				failed.Add(1)
				metrics.SettlementUpdatesTotal.WithLabelValues("error").Inc()
				slog.Error("Settlement update failed", "content_id", update.ContentID, "error", err)
				return fmt.Errorf("content %s: %w", update.ContentID, err)
			}
			updated.Add(1)
			metrics.SettlementUpdatesTotal.WithLabelValues("ok").Inc()
			return nil
		})
	}
	firstErr := g.Wait()

	result := BatchResult{
		Updated:  int(updated.Load()),
		Skipped:  uniqueCount(balance.ContentIDs) - len(updates),
		Failed:   int(failed.Load()),
		FirstErr: firstErr,
	}

	outcome := "ok"
	if result.Failed > 0 {
		outcome = "partial"
	}
	metrics.SettlementBatchesTotal.WithLabelValues(outcome).Inc()
	slog.Info("Settlement batch completed",
		"creditor_id", balance.CreditorID,
		"liquidator_id", balance.LiquidatorID,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}

// balanceViews projects domain contents into the calculator's view type.
func balanceViews(contents []*models.Content) []calculator.ContentForBalance {
	views := make([]calculator.ContentForBalance, len(contents))
	for i, content := range contents {
		entries := make([]calculator.Entry, len(content.Liquidation))
		for j, e := range content.Liquidation {
			entries[j] = calculator.Entry{
				Payer:   e.PayerID,
				Rate:    e.Rate,
				Payment: e.Payment,
				Paid:    e.Paid,
			}
		}
		views[i] = calculator.ContentForBalance{
			ID:          content.ID,
			CreditorID:  content.CreditorID,
			Liquidation: entries,
		}
	}
	return views
}

func uniqueCount(ids []string) int {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return len(seen)
}
