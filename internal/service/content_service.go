// Package service implements the application services: content CRUD on top
// of the store, and the settlement summary / bulk-apply workflows built on
// the calculator.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/seisan-app/seisan/internal/calculator"
	"github.com/seisan-app/seisan/internal/models"
	"github.com/seisan-app/seisan/internal/storage"
)

var (
	ErrInvalidSubmission = errors.New("liquidation sequences must be equal length and hold 1 to 3 entries")
	ErrInvalidFilter     = errors.New("filter must be one of all, unpaid, paid")
)

// ContentService manages contents and their liquidation tables.
type ContentService struct {
	store storage.Store
}

// NewContentService creates a new ContentService with the given storage
// backend.
func NewContentService(store storage.Store) *ContentService {
	return &ContentService{store: store}
}

// ContentSubmission is the create/update payload: the content's scalar
// fields plus the split table projected into four parallel sequences, in
// table order (the first entry is the creditor's by convention).
type ContentSubmission struct {
	Subject    string
	Amount     string
	Purpose    string
	Ymd        string
	CategoryID int64
	CreditorID int64

	Payers   []int64
	Rates    []string
	Payments []string
	Paid     []bool
}

// liquidation validates the parallel sequences and assembles the table.
func (sub ContentSubmission) liquidation() ([]models.LiquidationEntry, error) {
	n := len(sub.Payers)
	if n < 1 || n > calculator.MaxLiquidators {
		return nil, ErrInvalidSubmission
	}
	if len(sub.Rates) != n || len(sub.Payments) != n || len(sub.Paid) != n {
		return nil, ErrInvalidSubmission
	}

	entries := make([]models.LiquidationEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = models.LiquidationEntry{
			PayerID: sub.Payers[i],
			Rate:    sub.Rates[i],
			Payment: sub.Payments[i],
			Paid:    sub.Paid[i],
		}
	}
	return entries, nil
}

// Create persists a new content. The finished flag is derived here from
// the submitted paid flags, never taken from the caller.
func (s *ContentService) Create(ctx context.Context, sub ContentSubmission) (*models.Content, error) {
	entries, err := sub.liquidation()
	if err != nil {
		return nil, err
	}

	content := &models.Content{
		Subject:     sub.Subject,
		Amount:      sub.Amount,
		Purpose:     sub.Purpose,
		Ymd:         sub.Ymd,
		CategoryID:  sub.CategoryID,
		CreditorID:  sub.CreditorID,
		Liquidation: entries,
	}
	content.RecomputeFinished()

	if err := s.store.CreateContent(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}
	slog.Info("Content created", "content_id", content.ID, "creditor_id", content.CreditorID)
	return content, nil
}

// Update replaces an existing content with the submission.
func (s *ContentService) Update(ctx context.Context, id string, sub ContentSubmission) (*models.Content, error) {
	entries, err := sub.liquidation()
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Subject = sub.Subject
	existing.Amount = sub.Amount
	existing.Purpose = sub.Purpose
	existing.Ymd = sub.Ymd
	existing.CategoryID = sub.CategoryID
	existing.CreditorID = sub.CreditorID
	existing.Liquidation = entries
	existing.RecomputeFinished()

	if err := s.store.UpdateContent(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update content: %w", err)
	}
	slog.Info("Content updated", "content_id", existing.ID)
	return existing, nil
}

// ApplyLiquidation applies a liquidation-only update: one paid flag per
// stored row. The finished flag is re-derived from the flags.
func (s *ContentService) ApplyLiquidation(ctx context.Context, id string, paid []bool) (*models.Content, error) {
	existing, err := s.store.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(paid) != len(existing.Liquidation) {
		return nil, ErrInvalidSubmission
	}

	finished := true
	for i := range existing.Liquidation {
		existing.Liquidation[i].Paid = paid[i]
		if !paid[i] {
			finished = false
		}
	}
	existing.Finished = finished

	if err := s.store.UpdateLiquidation(ctx, id, finished, paid); err != nil {
		return nil, fmt.Errorf("failed to apply liquidation update: %w", err)
	}
	return existing, nil
}

// List returns contents matching the filter.
func (s *ContentService) List(ctx context.Context, filter models.Filter) ([]*models.Content, error) {
	if !filter.Valid() {
		return nil, ErrInvalidFilter
	}
	return s.store.ListContents(ctx, filter)
}

// Get returns one content by id.
func (s *ContentService) Get(ctx context.Context, id string) (*models.Content, error) {
	return s.store.GetContent(ctx, id)
}
