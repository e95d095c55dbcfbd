package inbox

import (
	"context"

	"forum-server/db"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks forum-server/inbox Store

// Store is the subset of the db package the inbox reads from.
type Store interface {
	GetUser(ctx context.Context, userId int64) (*db.User, error)
	GetOrCreateProfile(ctx context.Context, userId int64) (*db.Profile, error)
	GetConversation(ctx context.Context, id int64) (*db.Conversation, error)
	ListConversationParties(ctx context.Context, userId int64) ([]*db.ConversationParty, error)
	LastMessages(ctx context.Context, conversationIds []int64) (map[int64]*db.Message, error)
	UnreadCounts(ctx context.Context, userId int64, conversationIds []int64) (map[int64]int, error)
	TypingStatuses(ctx context.Context, conversationIds []int64) ([]*db.TypingStatus, error)
	GetTypingStatus(ctx context.Context, conversationId, userId int64) (*db.TypingStatus, error)
	ListMessagesAfter(ctx context.Context, conversationId, afterId int64) ([]*db.Message, error)
	MarkConversationRead(ctx context.Context, conversationId, readerId int64) (int64, error)
}

type dbStore struct{}

// NewDbStore returns a Store backed by the shared db connection.
func NewDbStore() Store {
	return dbStore{}
}

func (dbStore) GetUser(ctx context.Context, userId int64) (*db.User, error) {
	return db.GetUser(ctx, userId)
}

func (dbStore) GetOrCreateProfile(ctx context.Context, userId int64) (*db.Profile, error) {
	return db.GetOrCreateProfile(ctx, userId)
}

func (dbStore) GetConversation(ctx context.Context, id int64) (*db.Conversation, error) {
	return db.GetConversation(ctx, id)
}

func (dbStore) ListConversationParties(ctx context.Context, userId int64) ([]*db.ConversationParty, error) {
	return db.ListConversationParties(ctx, userId)
}

func (dbStore) LastMessages(ctx context.Context, conversationIds []int64) (map[int64]*db.Message, error) {
	return db.LastMessages(ctx, conversationIds)
}

func (dbStore) UnreadCounts(ctx context.Context, userId int64, conversationIds []int64) (map[int64]int, error) {
	return db.UnreadCounts(ctx, userId, conversationIds)
}

func (dbStore) TypingStatuses(ctx context.Context, conversationIds []int64) ([]*db.TypingStatus, error) {
	return db.TypingStatuses(ctx, conversationIds)
}

func (dbStore) GetTypingStatus(ctx context.Context, conversationId, userId int64) (*db.TypingStatus, error) {
	return db.GetTypingStatus(ctx, conversationId, userId)
}

func (dbStore) ListMessagesAfter(ctx context.Context, conversationId, afterId int64) ([]*db.Message, error) {
	return db.ListMessagesAfter(ctx, conversationId, afterId)
}

func (dbStore) MarkConversationRead(ctx context.Context, conversationId, readerId int64) (int64, error) {
	return db.MarkConversationRead(ctx, conversationId, readerId)
}
