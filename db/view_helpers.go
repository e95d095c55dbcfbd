package db

import (
	"context"

	"forum-server/shared"

	"github.com/pkg/errors"
)

// RecordView counts a view of a thread at most once per session key. The dedupe row and the counter
// bump happen in one statement, so concurrent first views of the same pair can't double count.
func RecordView(ctx context.Context, threadId int64, sessionKey string) (bool, error) {
	if sessionKey == "" {
		return false, shared.InvalidArgumentError("session key is required")
	}

	res, err := Conn.ExecContext(ctx, `
		WITH ins AS (
			INSERT INTO thread_views (thread_id, session_key) VALUES ($1, $2)
			ON CONFLICT (thread_id, session_key) DO NOTHING
			RETURNING thread_id
		)
		UPDATE threads SET views_count = views_count + 1
		WHERE id IN (SELECT thread_id FROM ins)
	`, threadId, sessionKey)

	if err != nil {
		if IsForeignKeyErr(err) {
			return false, shared.NotFoundError("Thread not found")
		}
		return false, errors.Wrap(err, "error recording thread view")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "error reading affected rows")
	}

	return n > 0, nil
}
