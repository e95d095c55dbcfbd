package inbox

import (
	"context"
	"fmt"
	"time"

	"forum-server/db"
	"forum-server/shared"
)

// Renderer produces the display-safe html for a message body.
type Renderer interface {
	Render(text string) string
}

// UrlResolver turns a stored media key into a public url.
type UrlResolver interface {
	Url(key string) string
}

// Service assembles the polling payloads for the messages pages. Its reads never write except for
// OpenConversation, which marks the conversation read for the viewer.
type Service struct {
	store    Store
	renderer Renderer
	media    UrlResolver
}

func NewService(store Store, renderer Renderer, media UrlResolver) *Service {
	return &Service{store: store, renderer: renderer, media: media}
}

// ListConversationsFor builds the conversation list of userId with a fixed number of store reads
// regardless of how many conversations the user has.
func (s *Service) ListConversationsFor(ctx context.Context, userId int64, now time.Time) ([]shared.ConversationSummary, error) {
	parties, err := s.store.ListConversationParties(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := make([]shared.ConversationSummary, 0, len(parties))
	if len(parties) == 0 {
		return res, nil
	}

	ids := make([]int64, len(parties))
	for i, p := range parties {
		ids[i] = p.Id
	}

	lastMessages, err := s.store.LastMessages(ctx, ids)
	if err != nil {
		return nil, err
	}

	unread, err := s.store.UnreadCounts(ctx, userId, ids)
	if err != nil {
		return nil, err
	}

	statuses, err := s.store.TypingStatuses(ctx, ids)
	if err != nil {
		return nil, err
	}

	typing := map[int64]bool{}
	for _, st := range statuses {
		if st.UserId == userId {
			continue
		}
		if shared.TypingActive(st.UpdatedAt, now) {
			typing[st.ConversationId] = true
		}
	}

	for _, p := range parties {
		summary := shared.ConversationSummary{
			ConversationId: p.Id,
			OtherUser: shared.UserRef{
				Id:        p.OtherUserId,
				Username:  p.OtherUsername,
				AvatarUrl: s.avatarUrl(p.OtherAvatarPath),
			},
			UnreadCount: unread[p.Id],
			IsTyping:    typing[p.Id],
		}

		if msg, ok := lastMessages[p.Id]; ok {
			summary.LastMessage = &shared.LastMessage{
				Body:      msg.Body,
				BodyHtml:  s.renderer.Render(msg.Body),
				CreatedAt: msg.CreatedAt,
			}
		}

		res = append(res, summary)
	}

	return res, nil
}

// PollConversation returns the messages after afterId and whether the other participant is typing.
// It only reads.
func (s *Service) PollConversation(ctx context.Context, conversationId, userId, afterId int64, now time.Time) (*shared.ConversationPoll, error) {
	convo, err := s.participantConversation(ctx, conversationId, userId)
	if err != nil {
		return nil, err
	}

	return s.poll(ctx, convo, userId, afterId, now)
}

// OpenConversation is the detail view: it marks everything addressed to userId as read and returns
// the full history.
func (s *Service) OpenConversation(ctx context.Context, conversationId, userId int64, now time.Time) (*shared.ConversationDetail, error) {
	convo, err := s.participantConversation(ctx, conversationId, userId)
	if err != nil {
		return nil, err
	}

	_, err = s.store.MarkConversationRead(ctx, convo.Id, userId)
	if err != nil {
		return nil, err
	}

	poll, err := s.poll(ctx, convo, userId, 0, now)
	if err != nil {
		return nil, err
	}

	otherId := convo.OtherParticipant(userId)
	other, err := s.store.GetUser(ctx, otherId)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return nil, fmt.Errorf("participant %d of conversation %d not found", otherId, convo.Id)
	}

	profile, err := s.store.GetOrCreateProfile(ctx, otherId)
	if err != nil {
		return nil, err
	}

	return &shared.ConversationDetail{
		ConversationId: convo.Id,
		OtherUser: shared.UserRef{
			Id:        other.Id,
			Username:  other.Username,
			AvatarUrl: s.avatarUrl(profile.AvatarPath),
		},
		Messages:     poll.Messages,
		TypingActive: poll.TypingActive,
	}, nil
}

func (s *Service) participantConversation(ctx context.Context, conversationId, userId int64) (*db.Conversation, error) {
	convo, err := s.store.GetConversation(ctx, conversationId)
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

func (s *Service) poll(ctx context.Context, convo *db.Conversation, userId, afterId int64, now time.Time) (*shared.ConversationPoll, error) {
	if afterId < 0 {
		afterId = 0
	}

	msgs, err := s.store.ListMessagesAfter(ctx, convo.Id, afterId)
	if err != nil {
		return nil, err
	}

	status, err := s.store.GetTypingStatus(ctx, convo.Id, convo.OtherParticipant(userId))
	if err != nil {
		return nil, err
	}

	res := &shared.ConversationPoll{
		Messages:     make([]shared.PolledMessage, len(msgs)),
		TypingActive: status != nil && shared.TypingActive(status.UpdatedAt, now),
	}

	for i, m := range msgs {
		res.Messages[i] = shared.PolledMessage{
			Id:         m.Id,
			SenderId:   m.SenderId,
			SenderName: m.SenderName,
			CreatedAt:  m.CreatedAt,
			Body:       m.Body,
			BodyHtml:   s.renderer.Render(m.Body),
		}
	}

	return res, nil
}

func (s *Service) avatarUrl(path *string) string {
	if path == nil || *path == "" || s.media == nil {
		return ""
	}
	return s.media.Url(*path)
}
