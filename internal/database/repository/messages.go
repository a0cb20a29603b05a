package repository

import (
	"context"
	"database/sql"
	"time"
)

// MessageRepo handles the session's message board.
type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Insert appends m. Later inserts list first.
func (r *MessageRepo) Insert(ctx context.Context, m Message) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO messages(id, author, content, created_at)
	VALUES (?, ?, ?, ?);
	`, m.ID, m.Author, m.Content, m.CreatedAt.UnixNano())
	return err
}

// InsertMany appends ms in order within one transaction.
func (r *MessageRepo) InsertMany(ctx context.Context, ms []Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, m := range ms {
		if _, err := tx.ExecContext(ctx, `INSERT INTO messages(id, author, content, created_at) VALUES (?, ?, ?, ?)`,
			m.ID, m.Author, m.Content, m.CreatedAt.UnixNano()); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// List returns messages newest insert first.
func (r *MessageRepo) List(ctx context.Context) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, author, content, created_at FROM messages ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Message
	for rows.Next() {
		var m Message
		var nanos int64
		if err := rows.Scan(&m.ID, &m.Author, &m.Content, &nanos); err != nil {
			return nil, err
		}
		m.CreatedAt = time.Unix(0, nanos)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MessageRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n)
	return n, err
}
