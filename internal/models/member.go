package models

// Member represents a person in the member directory.
// Members are immutable once fetched; the directory owns them.
type Member struct {
	// ID is the unique integer identifier for the member.
	ID int64 `json:"member_id"`

	// Slug is a URL-safe identifier for the member.
	Slug string `json:"member_slug,omitempty"`

	// Nickname is the display name shown in split tables and summaries.
	Nickname string `json:"nickname"`

	// Email is the member's email address (unique). Used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the member's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the member was registered.
	CreatedAt int64 `json:"created_at,omitempty"`
}
