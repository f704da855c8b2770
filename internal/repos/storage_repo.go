package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// Storage is a string-keyed store scoped per visitor, shaped like the
// browser's localStorage. Writes are last-write-wins.
type Storage interface {
	GetItem(ctx context.Context, sid, key string) (string, bool, error)
	SetItem(ctx context.Context, sid, key, value string) error
	RemoveItem(ctx context.Context, sid, key string) error
}

type SQLiteStorage struct{ db *sqlx.DB }

func NewSQLiteStorage(db *sqlx.DB) *SQLiteStorage { return &SQLiteStorage{db: db} }

func (r *SQLiteStorage) GetItem(ctx context.Context, sid, key string) (string, bool, error) {
	var v string
	err := r.db.GetContext(ctx, &v, `SELECT value FROM local_storage WHERE session_id = ? AND item_key = ?`, sid, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *SQLiteStorage) SetItem(ctx context.Context, sid, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO local_storage(session_id, item_key, value, updated_at)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(session_id, item_key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at
	`, sid, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *SQLiteStorage) RemoveItem(ctx context.Context, sid, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM local_storage WHERE session_id = ? AND item_key = ?`, sid, key)
	return err
}

// PurgeBefore drops records untouched since cutoff and reports how many went.
func (r *SQLiteStorage) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM local_storage WHERE updated_at < ?`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
