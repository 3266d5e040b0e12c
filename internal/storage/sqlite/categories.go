package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/seisan-app/seisan/internal/models"
)

// CreateCategory persists a new expense category.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.CreatedAt == 0 {
		category.CreatedAt = time.Now().Unix()
	}

	var rules interface{} = nil
	if category.PresetRules != "" {
		rules = category.PresetRules
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (name, slug, preset_rules, created_at) VALUES (?, ?, ?, ?)",
		category.Name, category.Slug, rules, category.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read category id: %w", err)
	}
	category.ID = id
	return nil
}

// ListCategories returns all categories in id order.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, slug, preset_rules, created_at FROM categories ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		var rules sql.NullString
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &rules, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if rules.Valid {
			category.PresetRules = rules.String
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}
