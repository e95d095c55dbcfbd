package shared

import "time"

type PageInfo struct {
	Number      int  `json:"number"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

type SubsectionView struct {
	Id          int64  `json:"id"`
	SectionId   int64  `json:"section_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type SectionView struct {
	Id          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Subsections []SubsectionView `json:"subsections"`
}

type ThreadSummary struct {
	Id           int64     `json:"id"`
	Title        string    `json:"title"`
	AuthorId     int64     `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	SubsectionId int64     `json:"subsection_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastReplyAt  time.Time `json:"last_reply_at"`
	IsPinned     bool      `json:"is_pinned"`
	ViewsCount   int64     `json:"views_count"`
}

type ForumStats struct {
	Users   int `json:"users"`
	Threads int `json:"threads"`
	Posts   int `json:"posts"`
}

type Overview struct {
	Sections      []SectionView   `json:"sections"`
	PinnedThreads []ThreadSummary `json:"pinned_threads"`
	LatestThreads []ThreadSummary `json:"latest_threads"`
	Stats         ForumStats      `json:"stats"`
	UnreadCount   int             `json:"unread_message_count"`
	Flashes       []string        `json:"flashes,omitempty"`
}

type ThreadPage struct {
	Subsection SubsectionView  `json:"subsection"`
	Order      string          `json:"current_order"`
	Threads    []ThreadSummary `json:"threads"`
	Page       PageInfo        `json:"page"`
	Flashes    []string        `json:"flashes,omitempty"`
}

type PostView struct {
	Id              int64     `json:"id"`
	ThreadId        int64     `json:"thread_id"`
	AuthorId        int64     `json:"author_id"`
	AuthorName      string    `json:"author_name"`
	AuthorAvatarUrl string    `json:"author_avatar_url"`
	Text            string    `json:"text"`
	TextHtml        string    `json:"text_html"`
	ImageUrl        string    `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PostPage struct {
	Thread  ThreadSummary `json:"thread"`
	Posts   []PostView    `json:"posts"`
	Page    PageInfo      `json:"page"`
	Flashes []string      `json:"flashes,omitempty"`
}

type NewThreadForm struct {
	Subsection SubsectionView `json:"subsection"`
	TitleMin   int            `json:"title_min"`
	TitleMax   int            `json:"title_max"`
	BodyMin    int            `json:"body_min"`
	BodyMax    int            `json:"body_max"`
	Flashes    []string       `json:"flashes,omitempty"`
}

type WallCommentView struct {
	Id         int64     `json:"id"`
	AuthorId   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	BodyHtml   string    `json:"body_html"`
	CreatedAt  time.Time `json:"created_at"`
}

type WallPostView struct {
	Id         int64             `json:"id"`
	AuthorId   int64             `json:"author_id"`
	AuthorName string            `json:"author_name"`
	Body       string            `json:"body"`
	BodyHtml   string            `json:"body_html"`
	CreatedAt  time.Time         `json:"created_at"`
	Comments   []WallCommentView `json:"comments"`
}

type ProfileView struct {
	User        UserRef        `json:"user"`
	Bio         string         `json:"bio"`
	JoinedAt    time.Time      `json:"joined_at"`
	PostCount   int            `json:"post_count"`
	ThreadCount int            `json:"thread_count"`
	Wall        []WallPostView `json:"wall"`
	Flashes     []string       `json:"flashes,omitempty"`
}

type EditPostForm struct {
	Post    PostView `json:"post"`
	Flashes []string `json:"flashes,omitempty"`
}

type ChooseSubsection struct {
	Sections []SectionView `json:"sections"`
	Flashes  []string      `json:"flashes,omitempty"`
}
