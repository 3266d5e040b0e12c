package models

// Category represents an expense category.
type Category struct {
	// ID is the unique integer identifier for the category.
	ID int64 `json:"category_id"`

	// Name is the display name of the category (e.g. "Groceries").
	Name string `json:"category_nm"`

	// Slug is a URL-safe identifier for the category.
	Slug string `json:"category_slug,omitempty"`

	// PresetRules is an opaque JSON payload mapping member ids to integer
	// percentages, used to pre-fill a new content's split table. It may be
	// empty, and it may be malformed — callers must parse it defensively
	// and degrade to "no preset" rather than fail.
	PresetRules string `json:"preset_rules,omitempty"`

	// CreatedAt is the Unix timestamp when the category was created.
	CreatedAt int64 `json:"created_at,omitempty"`
}
