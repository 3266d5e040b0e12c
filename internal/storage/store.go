// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/seisan-app/seisan/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface the services need from the data store.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// a remote CMS, etc.) without changing the service layer.
type Store interface {
	// ListMembers returns the full member directory. The directory is
	// assumed small enough to load in full and cache for a session.
	ListMembers(ctx context.Context) ([]*models.Member, error)

	// GetMemberByEmail looks a member up for authentication.
	// Returns ErrNotFound when no member has that email.
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)

	// GetMember retrieves a member by id.
	GetMember(ctx context.Context, id int64) (*models.Member, error)

	// CreateMember registers a member and populates its ID.
	CreateMember(ctx context.Context, member *models.Member) error

	// ListCategories returns all expense categories.
	ListCategories(ctx context.Context) ([]*models.Category, error)

	// CreateCategory persists a category and populates its ID.
	CreateCategory(ctx context.Context, category *models.Category) error

	// ListContents returns contents matching the filter, newest first,
	// each with its liquidation table in stored order.
	ListContents(ctx context.Context, filter models.Filter) ([]*models.Content, error)

	// GetContent retrieves a content by id.
	// Returns ErrNotFound when the content does not exist.
	GetContent(ctx context.Context, id string) (*models.Content, error)

	// CreateContent persists a new content with its liquidation table.
	// The content's ID field will be populated by the store.
	CreateContent(ctx context.Context, content *models.Content) error

	// UpdateContent replaces an existing content and its liquidation table.
	UpdateContent(ctx context.Context, content *models.Content) error

	// UpdateLiquidation applies the minimal bulk-settlement payload: the
	// recomputed finished flag plus the paid flag per liquidation row in
	// stored order. The paid slice must match the stored row count.
	UpdateLiquidation(ctx context.Context, id string, finished bool, paid []bool) error

	// Close releases any resources held by the store.
	Close() error
}
