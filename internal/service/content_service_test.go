package service

import (
	"context"
	"testing"

	"github.com/seisan-app/seisan/internal/models"
)

func TestContentServiceCreate(t *testing.T) {
	store := newTestStore(t)
	service := NewContentService(store)
	ctx := context.Background()

	tests := []struct {
		name    string
		sub     ContentSubmission
		wantErr error
	}{
		{
			name: "valid two-payer submission",
			sub: ContentSubmission{
				Subject:    "Groceries",
				Amount:     "1200",
				CreditorID: 1,
				Payers:     []int64{1, 2},
				Rates:      []string{"50", "50"},
				Payments:   []string{"600", "600"},
				Paid:       []bool{true, false},
			},
		},
		{
			name: "empty table rejected",
			sub: ContentSubmission{
				Subject:    "Nothing",
				CreditorID: 1,
			},
			wantErr: ErrInvalidSubmission,
		},
		{
			name: "four payers rejected",
			sub: ContentSubmission{
				Subject:    "Crowd",
				CreditorID: 1,
				Payers:     []int64{1, 2, 3, 4},
				Rates:      []string{"25", "25", "25", "25"},
				Payments:   []string{"1", "1", "1", "1"},
				Paid:       []bool{false, false, false, false},
			},
			wantErr: ErrInvalidSubmission,
		},
		{
			name: "mismatched sequence lengths rejected",
			sub: ContentSubmission{
				Subject:    "Ragged",
				CreditorID: 1,
				Payers:     []int64{1, 2},
				Rates:      []string{"50"},
				Payments:   []string{"600", "600"},
				Paid:       []bool{true, false},
			},
			wantErr: ErrInvalidSubmission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := service.Create(ctx, tt.sub)
			if err != tt.wantErr {
				t.Fatalf("Create err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if content.ID == "" {
				t.Error("created content has no id")
			}
			if content.Finished {
				t.Error("content with an unpaid entry must not be finished")
			}
		})
	}
}

func TestContentServiceDerivesFinished(t *testing.T) {
	store := newTestStore(t)
	service := NewContentService(store)
	ctx := context.Background()

	content, err := service.Create(ctx, ContentSubmission{
		Subject:    "Solo",
		Amount:     "300",
		CreditorID: 1,
		Payers:     []int64{1},
		Rates:      []string{"100"},
		Payments:   []string{"300"},
		Paid:       []bool{true},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !content.Finished {
		t.Error("all-paid content should be created finished")
	}

	loaded, err := store.GetContent(ctx, content.ID)
	if err != nil {
		t.Fatalf("GetContent failed: %v", err)
	}
	if !loaded.Finished {
		t.Error("finished flag not persisted")
	}
}

func TestContentServiceUpdate(t *testing.T) {
	store := newTestStore(t)
	service := NewContentService(store)
	ctx := context.Background()

	content, err := service.Create(ctx, ContentSubmission{
		Subject:    "Draft",
		Amount:     "100",
		CreditorID: 1,
		Payers:     []int64{1, 2},
		Rates:      []string{"50", "50"},
		Payments:   []string{"50", "50"},
		Paid:       []bool{true, false},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := service.Update(ctx, content.ID, ContentSubmission{
		Subject:    "Final",
		Amount:     "900",
		CreditorID: 2,
		Payers:     []int64{2, 1, 3},
		Rates:      []string{"34", "33", "33"},
		Payments:   []string{"306", "297", "297"},
		Paid:       []bool{true, true, true},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Subject != "Final" || updated.CreditorID != 2 {
		t.Errorf("scalar fields not replaced: %+v", updated)
	}
	if len(updated.Liquidation) != 3 {
		t.Fatalf("liquidation length = %d, want 3", len(updated.Liquidation))
	}
	if !updated.Finished {
		t.Error("all-paid update should finish the content")
	}

	loaded, err := store.GetContent(ctx, content.ID)
	if err != nil {
		t.Fatalf("GetContent failed: %v", err)
	}
	if loaded.Subject != "Final" || len(loaded.Liquidation) != 3 {
		t.Errorf("update not persisted: %+v", loaded)
	}
}

func TestContentServiceApplyLiquidation(t *testing.T) {
	store := newTestStore(t)
	service := NewContentService(store)
	ctx := context.Background()

	content, err := service.Create(ctx, ContentSubmission{
		Subject:    "Shared",
		Amount:     "600",
		CreditorID: 1,
		Payers:     []int64{1, 2, 3},
		Rates:      []string{"34", "33", "33"},
		Payments:   []string{"204", "198", "198"},
		Paid:       []bool{true, false, false},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := service.ApplyLiquidation(ctx, content.ID, []bool{true, true, false}); err != nil {
		t.Fatalf("ApplyLiquidation failed: %v", err)
	}
	loaded, _ := store.GetContent(ctx, content.ID)
	if loaded.Finished {
		t.Error("partially paid content must stay unfinished")
	}
	if !loaded.Liquidation[1].Paid || loaded.Liquidation[2].Paid {
		t.Errorf("paid flags wrong after partial apply: %+v", loaded.Liquidation)
	}

	if _, err := service.ApplyLiquidation(ctx, content.ID, []bool{true, true, true}); err != nil {
		t.Fatalf("ApplyLiquidation failed: %v", err)
	}
	loaded, _ = store.GetContent(ctx, content.ID)
	if !loaded.Finished {
		t.Error("fully paid content should be finished")
	}
}

func TestContentServiceList(t *testing.T) {
	store := newTestStore(t)
	service := NewContentService(store)
	ctx := context.Background()

	for i, paid := range []bool{true, false} {
		_, err := service.Create(ctx, ContentSubmission{
			Subject:    "Item",
			Amount:     "100",
			Ymd:        "2025-04-0" + string(rune('1'+i)),
			CreditorID: 1,
			Payers:     []int64{1},
			Rates:      []string{"100"},
			Payments:   []string{"100"},
			Paid:       []bool{paid},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	unpaid, err := service.List(ctx, models.FilterUnpaid)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(unpaid) != 1 || unpaid[0].Finished {
		t.Errorf("unpaid filter returned %+v", unpaid)
	}

	if _, err := service.List(ctx, models.Filter("everything")); err != ErrInvalidFilter {
		t.Errorf("err = %v, want ErrInvalidFilter", err)
	}
}
