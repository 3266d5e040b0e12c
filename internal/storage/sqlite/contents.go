package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seisan-app/seisan/internal/models"
	"github.com/seisan-app/seisan/internal/storage"
)

// CreateContent persists a new content with its liquidation table.
func (s *SQLiteStore) CreateContent(ctx context.Context, content *models.Content) error {
	if content.ID == "" {
		content.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if content.CreatedAt == 0 {
		content.CreatedAt = now
	}
	content.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO contents (id, subject, amount, purpose, ymd, category_id, creditor_id, finished, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		content.ID, content.Subject, content.Amount, content.Purpose, content.Ymd,
		content.CategoryID, content.CreditorID, boolToInt(content.Finished),
		content.CreatedAt, content.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert content: %w", err)
	}

	if err := insertLiquidation(ctx, tx, content.ID, content.Liquidation); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit content: %w", err)
	}
	return nil
}

// UpdateContent replaces an existing content and its liquidation table.
func (s *SQLiteStore) UpdateContent(ctx context.Context, content *models.Content) error {
	content.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE contents SET subject = ?, amount = ?, purpose = ?, ymd = ?, category_id = ?,
		 creditor_id = ?, finished = ?, updated_at = ? WHERE id = ?`,
		content.Subject, content.Amount, content.Purpose, content.Ymd, content.CategoryID,
		content.CreditorID, boolToInt(content.Finished), content.UpdatedAt, content.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("content %s: %w", content.ID, storage.ErrNotFound)
	}

	// Replace the liquidation rows wholesale; tables hold at most three.
	if _, err := tx.ExecContext(ctx, "DELETE FROM liquidation_entries WHERE content_id = ?", content.ID); err != nil {
		return fmt.Errorf("failed to clear liquidation: %w", err)
	}
	if err := insertLiquidation(ctx, tx, content.ID, content.Liquidation); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit content update: %w", err)
	}
	return nil
}

// UpdateLiquidation applies the minimal bulk-settlement payload: the new
// finished flag plus one paid flag per stored liquidation row, in order.
func (s *SQLiteStore) UpdateLiquidation(ctx context.Context, id string, finished bool, paid []bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE contents SET finished = ?, updated_at = ? WHERE id = ?",
		boolToInt(finished), time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update finished flag: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("content %s: %w", id, storage.ErrNotFound)
	}

	for position, flag := range paid {
		if _, err := tx.ExecContext(ctx,
			"UPDATE liquidation_entries SET paid = ? WHERE content_id = ? AND position = ?",
			boolToInt(flag), id, position,
		); err != nil {
			return fmt.Errorf("failed to update paid flag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit liquidation update: %w", err)
	}
	return nil
}

// GetContent retrieves a content and its liquidation table by id.
func (s *SQLiteStore) GetContent(ctx context.Context, id string) (*models.Content, error) {
	content := &models.Content{}
	var finished int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, subject, amount, purpose, ymd, category_id, creditor_id, finished, created_at, updated_at
		 FROM contents WHERE id = ?`, id,
	).Scan(&content.ID, &content.Subject, &content.Amount, &content.Purpose, &content.Ymd,
		&content.CategoryID, &content.CreditorID, &finished, &content.CreatedAt, &content.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("content %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	content.Finished = finished == 1

	if err := s.loadLiquidation(ctx, []*models.Content{content}); err != nil {
		return nil, err
	}
	return content, nil
}

// ListContents returns contents matching the filter, newest first.
func (s *SQLiteStore) ListContents(ctx context.Context, filter models.Filter) ([]*models.Content, error) {
	query := `SELECT id, subject, amount, purpose, ymd, category_id, creditor_id, finished, created_at, updated_at
	 FROM contents`
	switch filter {
	case models.FilterUnpaid:
		query += " WHERE finished = 0"
	case models.FilterPaid:
		query += " WHERE finished = 1"
	}
	query += " ORDER BY ymd DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}
	defer rows.Close()

	var contents []*models.Content
	for rows.Next() {
		content := &models.Content{}
		var finished int
		if err := rows.Scan(&content.ID, &content.Subject, &content.Amount, &content.Purpose,
			&content.Ymd, &content.CategoryID, &content.CreditorID, &finished,
			&content.CreatedAt, &content.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		content.Finished = finished == 1
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contents: %w", err)
	}

	if err := s.loadLiquidation(ctx, contents); err != nil {
		return nil, err
	}
	return contents, nil
}

// loadLiquidation fills in the liquidation tables for the given contents.
func (s *SQLiteStore) loadLiquidation(ctx context.Context, contents []*models.Content) error {
	for _, content := range contents {
		rows, err := s.db.QueryContext(ctx,
			"SELECT payer_id, rate, payment, paid FROM liquidation_entries WHERE content_id = ? ORDER BY position",
			content.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to load liquidation: %w", err)
		}

		var entries []models.LiquidationEntry
		for rows.Next() {
			var entry models.LiquidationEntry
			var paid int
			if err := rows.Scan(&entry.PayerID, &entry.Rate, &entry.Payment, &paid); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan liquidation entry: %w", err)
			}
			entry.Paid = paid == 1
			entries = append(entries, entry)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("failed to iterate liquidation entries: %w", err)
		}
		rows.Close()
		content.Liquidation = entries
	}
	return nil
}

func insertLiquidation(ctx context.Context, tx *sql.Tx, contentID string, entries []models.LiquidationEntry) error {
	for position, entry := range entries {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO liquidation_entries (content_id, position, payer_id, rate, payment, paid) VALUES (?, ?, ?, ?, ?, ?)",
			contentID, position, entry.PayerID, entry.Rate, entry.Payment, boolToInt(entry.Paid),
		); err != nil {
			return fmt.Errorf("failed to insert liquidation entry: %w", err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
