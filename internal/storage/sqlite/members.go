package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/seisan-app/seisan/internal/models"
	"github.com/seisan-app/seisan/internal/storage"
)

// CreateMember registers a new member in the directory.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO members (slug, nickname, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		member.Slug, member.Nickname, member.Email, member.PasswordHash, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read member id: %w", err)
	}
	member.ID = id
	return nil
}

// GetMember retrieves a member by id.
func (s *SQLiteStore) GetMember(ctx context.Context, id int64) (*models.Member, error) {
	member := &models.Member{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, slug, nickname, email, password_hash, created_at FROM members WHERE id = ?",
		id,
	).Scan(&member.ID, &member.Slug, &member.Nickname, &member.Email, &member.PasswordHash, &member.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// GetMemberByEmail retrieves a member by email for authentication.
func (s *SQLiteStore) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	member := &models.Member{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, slug, nickname, email, password_hash, created_at FROM members WHERE email = ?",
		email,
	).Scan(&member.ID, &member.Slug, &member.Nickname, &member.Email, &member.PasswordHash, &member.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member by email: %w", err)
	}
	return member, nil
}

// ListMembers returns the full member directory in id order.
func (s *SQLiteStore) ListMembers(ctx context.Context) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, slug, nickname, email, password_hash, created_at FROM members ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		if err := rows.Scan(&member.ID, &member.Slug, &member.Nickname, &member.Email,
			&member.PasswordHash, &member.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}
