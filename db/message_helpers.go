package db

import (
	"context"
	"fmt"
	"time"

	"forum-server/sanitize"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const messageSelect = `SELECT m.*, u.username AS sender_name FROM messages m JOIN users u ON u.id = m.sender_id`

// SendMessage stores a message from senderId to the other participant and bumps the conversation's
// activity timestamps in the same transaction.
func SendMessage(ctx context.Context, conversationId, senderId int64, body string) (*Message, error) {
	body, err := sanitize.MessageBody(body)
	if err != nil {
		return nil, err
	}

	convo, err := GetConversationFor(ctx, conversationId, senderId)
	if err != nil {
		return nil, err
	}

	recipientId := convo.OtherParticipant(senderId)

	var msg Message

	err = WithTx(ctx, "send message", func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &msg, "INSERT INTO messages (conversation_id, sender_id, recipient_id, body) VALUES ($1, $2, $3, $4) RETURNING *", conversationId, senderId, recipientId, body)
		if err != nil {
			return errors.Wrap(err, "error inserting message")
		}

		_, err = tx.ExecContext(ctx, "UPDATE conversations SET last_message_at = $2, updated_at = NOW() WHERE id = $1", conversationId, msg.CreatedAt)
		if err != nil {
			return errors.Wrap(err, "error updating conversation")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &msg, nil
}

// MarkConversationRead marks every unread message addressed to readerId as read. Messages that are
// already read are untouched, so read_at keeps the time of the first read.
func MarkConversationRead(ctx context.Context, conversationId, readerId int64) (int64, error) {
	res, err := Conn.ExecContext(ctx, `
		UPDATE messages SET is_read = TRUE, read_at = NOW()
		WHERE conversation_id = $1 AND recipient_id = $2 AND is_read = FALSE
	`, conversationId, readerId)

	if err != nil {
		return 0, errors.Wrap(err, "error marking conversation read")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "error reading affected rows")
	}

	return n, nil
}

// ListMessagesAfter returns messages with id greater than afterId, oldest first. An afterId of 0
// returns the whole conversation.
func ListMessagesAfter(ctx context.Context, conversationId, afterId int64) ([]*Message, error) {
	msgs := []*Message{}
	err := Conn.SelectContext(ctx, &msgs, messageSelect+" WHERE m.conversation_id = $1 AND m.id > $2 ORDER BY m.created_at, m.id", conversationId, afterId)

	if err != nil {
		return nil, fmt.Errorf("error listing messages: %v", err)
	}

	return msgs, nil
}

// LastMessages returns the newest message of each conversation that has one.
func LastMessages(ctx context.Context, conversationIds []int64) (map[int64]*Message, error) {
	res := map[int64]*Message{}
	if len(conversationIds) == 0 {
		return res, nil
	}

	var msgs []*Message
	err := Conn.SelectContext(ctx, &msgs, `
		SELECT DISTINCT ON (conversation_id) *
		FROM messages
		WHERE conversation_id = ANY($1)
		ORDER BY conversation_id, created_at DESC, id DESC
	`, pq.Array(conversationIds))

	if err != nil {
		return nil, fmt.Errorf("error getting last messages: %v", err)
	}

	for _, m := range msgs {
		res[m.ConversationId] = m
	}

	return res, nil
}

// UnreadCounts returns, per conversation, how many messages addressed to userId are unread.
// Conversations with nothing unread are absent from the map.
func UnreadCounts(ctx context.Context, userId int64, conversationIds []int64) (map[int64]int, error) {
	res := map[int64]int{}
	if len(conversationIds) == 0 {
		return res, nil
	}

	var counts []UnreadCount
	err := Conn.SelectContext(ctx, &counts, `
		SELECT conversation_id, COUNT(*) AS count
		FROM messages
		WHERE recipient_id = $1 AND is_read = FALSE AND conversation_id = ANY($2)
		GROUP BY conversation_id
	`, userId, pq.Array(conversationIds))

	if err != nil {
		return nil, fmt.Errorf("error getting unread counts: %v", err)
	}

	for _, c := range counts {
		res[c.ConversationId] = c.Count
	}

	return res, nil
}

func CountUnreadForUser(ctx context.Context, userId int64) (int, error) {
	var count int
	err := Conn.GetContext(ctx, &count, "SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND is_read = FALSE", userId)

	if err != nil {
		return 0, fmt.Errorf("error counting unread messages: %v", err)
	}

	return count, nil
}

func CountMessagesSince(ctx context.Context, senderId int64, since time.Time) (int, error) {
	var count int
	err := Conn.GetContext(ctx, &count, "SELECT COUNT(*) FROM messages WHERE sender_id = $1 AND created_at > $2", senderId, since)

	if err != nil {
		return 0, fmt.Errorf("error counting messages: %v", err)
	}

	return count, nil
}
