package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/qkart/internal/core/port"
)

var _ port.KeyValueStorage = (*SessionEntries)(nil)

// SessionEntries keeps session entries in the session_entries table.
type SessionEntries struct {
	sqldb sqldb
}

func NewSessionEntries(sqldb sqldb) SessionEntries {
	return SessionEntries{sqldb}
}

func (r SessionEntries) Get(
	ctx context.Context, sessionID string,
) (map[string]string, error) {
	const op = "SessionEntries.Get"
	log := slog.With("op", op)

	query := `
		SELECT key, value FROM session_entries
		WHERE session_id = $1;
	`

	rows, err := r.sqldb.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query: %w", op, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", "err", err)
		}
	}()

	entries := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("%s: failed to scan: %w", op, err)
		}
		entries[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

func (r SessionEntries) Set(
	ctx context.Context, sessionID string, entries map[string]string,
) (setErr error) {
	const op = "SessionEntries.Set"
	log := slog.With("op", op)

	if len(entries) == 0 {
		return nil
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if setErr == nil {
			if err := tx.Commit(); err != nil {
				setErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO session_entries (session_id, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (session_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for k, v := range entries {
		if _, err := stmt.ExecContext(ctx, sessionID, k, v); err != nil {
			return fmt.Errorf("%s: failed to upsert %q: %w", op, k, err)
		}
	}
	return nil
}

func (r SessionEntries) Clear(ctx context.Context, sessionID string) error {
	const op = "SessionEntries.Clear"

	query := `DELETE FROM session_entries WHERE session_id = $1;`

	if _, err := r.sqldb.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
