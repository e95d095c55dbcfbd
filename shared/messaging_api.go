package shared

import "time"

// Poll payloads keep the exact field names the browser poller reads.

type UserRef struct {
	Id        int64  `json:"id"`
	Username  string `json:"username"`
	AvatarUrl string `json:"avatar_url"`
}

type LastMessage struct {
	Body      string    `json:"body"`
	BodyHtml  string    `json:"body_html"`
	CreatedAt time.Time `json:"created_at"`
}

type ConversationSummary struct {
	ConversationId int64        `json:"conversation_id"`
	OtherUser      UserRef      `json:"other_user"`
	LastMessage    *LastMessage `json:"last_message"`
	UnreadCount    int          `json:"unread_count"`
	IsTyping       bool         `json:"is_typing"`
}

type PolledMessage struct {
	Id         int64     `json:"id"`
	SenderId   int64     `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	CreatedAt  time.Time `json:"created_at"`
	Body       string    `json:"body"`
	BodyHtml   string    `json:"body_html"`
}

type ConversationPoll struct {
	Messages     []PolledMessage `json:"messages"`
	TypingActive bool            `json:"typing_active"`
}

type ConversationDetail struct {
	ConversationId int64           `json:"conversation_id"`
	OtherUser      UserRef         `json:"other_user"`
	Messages       []PolledMessage `json:"messages"`
	TypingActive   bool            `json:"typing_active"`
	Flashes        []string        `json:"flashes,omitempty"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}

type TypingResponse struct {
	Ok bool `json:"ok"`
}

type EmojiEntry struct {
	Code string `json:"code"`
	Char string `json:"char"`
	Url  string `json:"url"`
}

type ConversationList struct {
	Conversations []ConversationSummary `json:"conversations"`
	UnreadCount   int                   `json:"unread_message_count"`
	Flashes       []string              `json:"flashes,omitempty"`
}
