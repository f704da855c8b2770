package repos

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// :memory: databases are per connection; keep a single one so every
	// query sees the same schema.
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Per-visitor key/value records (carrito, checkoutData)
CREATE TABLE IF NOT EXISTS local_storage(
  session_id TEXT NOT NULL,
  item_key   TEXT NOT NULL,
  value      TEXT NOT NULL,
  updated_at TEXT,
  PRIMARY KEY (session_id, item_key)
);
CREATE INDEX IF NOT EXISTS idx_local_storage_updated ON local_storage(updated_at);
`
	_, err := db.Exec(schema)
	return err
}
