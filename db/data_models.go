package db

import (
	"time"

	"forum-server/shared"
)

// The models below are server-side rows. Handlers convert them to the shared view types before
// anything is written to a response.

type User struct {
	Id        int64     `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	IsStaff   bool      `db:"is_staff"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type AuthToken struct {
	Id        int64      `db:"id"`
	UserId    int64      `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type Profile struct {
	UserId     int64     `db:"user_id"`
	AvatarPath *string   `db:"avatar_path"`
	Bio        string    `db:"bio"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type Section struct {
	Id          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Order       int       `db:"sort_order"`
	CreatedAt   time.Time `db:"created_at"`
}

type Subsection struct {
	Id          int64     `db:"id"`
	SectionId   int64     `db:"section_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Order       int       `db:"sort_order"`
	CreatedAt   time.Time `db:"created_at"`
}

func (s *Subsection) ToApi() shared.SubsectionView {
	return shared.SubsectionView{
		Id:          s.Id,
		SectionId:   s.SectionId,
		Title:       s.Title,
		Description: s.Description,
	}
}

type Thread struct {
	Id           int64     `db:"id"`
	Title        string    `db:"title"`
	AuthorId     int64     `db:"author_id"`
	SubsectionId int64     `db:"subsection_id"`
	CreatedAt    time.Time `db:"created_at"`
	LastReplyAt  time.Time `db:"last_reply_at"`
	IsPinned     bool      `db:"is_pinned"`
	ViewsCount   int64     `db:"views_count"`

	// joined from users on reads
	AuthorName string `db:"author_name"`
}

func (t *Thread) ToApi() shared.ThreadSummary {
	return shared.ThreadSummary{
		Id:           t.Id,
		Title:        t.Title,
		AuthorId:     t.AuthorId,
		AuthorName:   t.AuthorName,
		SubsectionId: t.SubsectionId,
		CreatedAt:    t.CreatedAt,
		LastReplyAt:  t.LastReplyAt,
		IsPinned:     t.IsPinned,
		ViewsCount:   t.ViewsCount,
	}
}

type Post struct {
	Id        int64     `db:"id"`
	ThreadId  int64     `db:"thread_id"`
	AuthorId  int64     `db:"author_id"`
	Text      string    `db:"text"`
	ImagePath *string   `db:"image_path"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	AuthorName       string  `db:"author_name"`
	AuthorAvatarPath *string `db:"author_avatar_path"`
}

type WallPost struct {
	Id        int64     `db:"id"`
	OwnerId   int64     `db:"owner_id"`
	AuthorId  int64     `db:"author_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	AuthorName string `db:"author_name"`
}

type WallComment struct {
	Id        int64     `db:"id"`
	PostId    int64     `db:"post_id"`
	AuthorId  int64     `db:"author_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	AuthorName string `db:"author_name"`
}

type Conversation struct {
	Id            int64      `db:"id"`
	UserLowId     int64      `db:"user_low_id"`
	UserHighId    int64      `db:"user_high_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	LastMessageAt *time.Time `db:"last_message_at"`
}

func (c *Conversation) HasParticipant(userId int64) bool {
	return c.UserLowId == userId || c.UserHighId == userId
}

// OtherParticipant returns the participant that isn't userId. Callers check HasParticipant first.
func (c *Conversation) OtherParticipant(userId int64) int64 {
	if c.UserLowId == userId {
		return c.UserHighId
	}
	return c.UserLowId
}

type Message struct {
	Id             int64      `db:"id"`
	ConversationId int64      `db:"conversation_id"`
	SenderId       int64      `db:"sender_id"`
	RecipientId    int64      `db:"recipient_id"`
	Body           string     `db:"body"`
	CreatedAt      time.Time  `db:"created_at"`
	IsRead         bool       `db:"is_read"`
	ReadAt         *time.Time `db:"read_at"`

	SenderName string `db:"sender_name"`
}

type TypingStatus struct {
	ConversationId int64     `db:"conversation_id"`
	UserId         int64     `db:"user_id"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ConversationParty is a conversation joined with the participant on the other side.
type ConversationParty struct {
	Conversation
	OtherUserId     int64   `db:"other_user_id"`
	OtherUsername   string  `db:"other_username"`
	OtherAvatarPath *string `db:"other_avatar_path"`
}

type UnreadCount struct {
	ConversationId int64 `db:"conversation_id"`
	Count          int   `db:"count"`
}
