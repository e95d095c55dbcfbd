package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"forum-server/shared"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// clock stamps typing rows. Liveness is judged against the app's time, never the database's NOW().
var clock = time.Now

// PingTyping records that userId is typing in the conversation right now.
func PingTyping(ctx context.Context, conversationId, userId int64) (*TypingStatus, error) {
	_, err := GetConversationFor(ctx, conversationId, userId)
	if err != nil {
		return nil, err
	}

	var status TypingStatus
	err = Conn.GetContext(ctx, &status, `
		INSERT INTO typing_statuses (conversation_id, user_id, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (conversation_id, user_id) DO UPDATE SET updated_at = GREATEST(typing_statuses.updated_at, EXCLUDED.updated_at)
		RETURNING *
	`, conversationId, userId, clock().UTC().Truncate(time.Microsecond))

	if err != nil {
		return nil, errors.Wrap(err, "error upserting typing status")
	}

	return &status, nil
}

func GetTypingStatus(ctx context.Context, conversationId, userId int64) (*TypingStatus, error) {
	var status TypingStatus
	err := Conn.GetContext(ctx, &status, "SELECT * FROM typing_statuses WHERE conversation_id = $1 AND user_id = $2", conversationId, userId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting typing status: %v", err)
	}

	return &status, nil
}

func IsTyping(ctx context.Context, conversationId, userId int64, now time.Time) (bool, error) {
	status, err := GetTypingStatus(ctx, conversationId, userId)
	if err != nil {
		return false, err
	}
	if status == nil {
		return false, nil
	}
	return shared.TypingActive(status.UpdatedAt, now), nil
}

// TypingStatuses loads the typing rows of every participant for a set of conversations. Liveness is
// left to the caller.
func TypingStatuses(ctx context.Context, conversationIds []int64) ([]*TypingStatus, error) {
	statuses := []*TypingStatus{}
	if len(conversationIds) == 0 {
		return statuses, nil
	}

	err := Conn.SelectContext(ctx, &statuses, "SELECT * FROM typing_statuses WHERE conversation_id = ANY($1)", pq.Array(conversationIds))

	if err != nil {
		return nil, fmt.Errorf("error getting typing statuses: %v", err)
	}

	return statuses, nil
}
