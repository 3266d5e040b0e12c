package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database tables.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS members (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    slug TEXT NOT NULL DEFAULT '',
    nickname TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    slug TEXT NOT NULL DEFAULT '',
    preset_rules TEXT,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS contents (
    id TEXT PRIMARY KEY,
    subject TEXT NOT NULL,
    amount TEXT NOT NULL,
    purpose TEXT NOT NULL DEFAULT '',
    ymd TEXT NOT NULL DEFAULT '',
    category_id INTEGER NOT NULL DEFAULT 0,
    creditor_id INTEGER NOT NULL DEFAULT 0,
    finished INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS liquidation_entries (
    content_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    payer_id INTEGER NOT NULL DEFAULT 0,
    rate TEXT NOT NULL DEFAULT '',
    payment TEXT NOT NULL DEFAULT '',
    paid INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (content_id, position),
    FOREIGN KEY (content_id) REFERENCES contents(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_contents_finished ON contents(finished);
CREATE INDEX IF NOT EXISTS idx_liquidation_content_id ON liquidation_entries(content_id);
`

// runMigrations applies the schema to the database.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
