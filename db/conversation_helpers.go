package db

import (
	"context"
	"database/sql"
	"fmt"

	"forum-server/shared"

	"github.com/pkg/errors"
)

// CanonicalPair orders two user ids so that each unordered pair maps to a single key.
func CanonicalPair(userA, userB int64) (low, high int64) {
	if userA < userB {
		return userA, userB
	}
	return userB, userA
}

// GetOrCreateConversation returns the one conversation between two users, creating it if needed.
// Concurrent callers for the same pair converge on the same row through the unique pair index.
func GetOrCreateConversation(ctx context.Context, userA, userB int64) (*Conversation, error) {
	if userA == userB {
		return nil, shared.InvalidArgumentError("You can't start a conversation with yourself")
	}

	low, high := CanonicalPair(userA, userB)

	existing, err := getConversationByPair(ctx, low, high)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	for _, id := range []int64{low, high} {
		exists, err := userExists(ctx, Conn, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NotFoundError("User not found")
		}
	}

	var convo Conversation
	err = Conn.GetContext(ctx, &convo, `
		INSERT INTO conversations (user_low_id, user_high_id) VALUES ($1, $2)
		ON CONFLICT (user_low_id, user_high_id) DO NOTHING
		RETURNING *
	`, low, high)

	if err == nil {
		return &convo, nil
	}

	if err != sql.ErrNoRows && !IsNonUniqueErr(err) {
		if IsForeignKeyErr(err) {
			return nil, shared.NotFoundError("User not found")
		}
		return nil, errors.Wrap(err, "error creating conversation")
	}

	// another request created the pair first
	existing, err = getConversationByPair(ctx, low, high)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("conversation for pair (%d, %d) missing after conflict", low, high)
	}

	return existing, nil
}

func getConversationByPair(ctx context.Context, low, high int64) (*Conversation, error) {
	var convo Conversation
	err := Conn.GetContext(ctx, &convo, "SELECT * FROM conversations WHERE user_low_id = $1 AND user_high_id = $2", low, high)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting conversation: %v", err)
	}

	return &convo, nil
}

func GetConversation(ctx context.Context, id int64) (*Conversation, error) {
	var convo Conversation
	err := Conn.GetContext(ctx, &convo, "SELECT * FROM conversations WHERE id = $1", id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting conversation: %v", err)
	}

	return &convo, nil
}

// GetConversationFor loads a conversation and checks that userId takes part in it.
func GetConversationFor(ctx context.Context, id, userId int64) (*Conversation, error) {
	convo, err := GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	if convo == nil {
		return nil, shared.NotFoundError("Conversation not found")
	}
	if !convo.HasParticipant(userId) {
		return nil, shared.PermissionError("You are not a participant of this conversation")
	}
	return convo, nil
}

// ListConversationParties returns every conversation of userId together with the other participant,
// most recently active first. Conversations without messages sort after those with messages.
func ListConversationParties(ctx context.Context, userId int64) ([]*ConversationParty, error) {
	parties := []*ConversationParty{}
	err := Conn.SelectContext(ctx, &parties, `
		SELECT c.*, u.id AS other_user_id, u.username AS other_username, pr.avatar_path AS other_avatar_path
		FROM conversations c
		JOIN users u ON u.id = CASE WHEN c.user_low_id = $1 THEN c.user_high_id ELSE c.user_low_id END
		LEFT JOIN profiles pr ON pr.user_id = u.id
		WHERE c.user_low_id = $1 OR c.user_high_id = $1
		ORDER BY c.last_message_at DESC NULLS LAST, c.updated_at DESC, c.id DESC
	`, userId)

	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %v", err)
	}

	return parties, nil
}
