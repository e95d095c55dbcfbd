package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"forum-server/sanitize"
	"forum-server/shared"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const (
	ThreadOrderLatest = "latest"
	ThreadOrderActive = "active"
)

const LatestThreadsLimit = 10

const threadSelect = `SELECT t.*, u.username AS author_name FROM threads t JOIN users u ON u.id = t.author_id`

// NormalizeThreadOrder maps anything other than "active" to the default ordering.
func NormalizeThreadOrder(order string) string {
	if order == ThreadOrderActive {
		return ThreadOrderActive
	}
	return ThreadOrderLatest
}

// CreateThread inserts a thread together with its opening post. Both rows share the transaction's
// timestamp, so the thread starts with last_reply_at equal to created_at.
func CreateThread(ctx context.Context, subsectionId, authorId int64, title, body string) (*Thread, *Post, error) {
	title, err := sanitize.ThreadTitle(title)
	if err != nil {
		return nil, nil, err
	}

	body, err = sanitize.ThreadBody(body)
	if err != nil {
		return nil, nil, err
	}

	var thread Thread
	var post Post

	err = WithTx(ctx, "create thread", func(tx *sqlx.Tx) error {
		var exists bool
		err := tx.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM subsections WHERE id = $1)", subsectionId)
		if err != nil {
			return fmt.Errorf("error checking subsection: %v", err)
		}
		if !exists {
			return shared.NotFoundError("Subsection not found")
		}

		err = tx.GetContext(ctx, &thread, "INSERT INTO threads (title, author_id, subsection_id) VALUES ($1, $2, $3) RETURNING *", title, authorId, subsectionId)
		if err != nil {
			if IsForeignKeyErr(err) {
				return shared.NotFoundError("Author not found")
			}
			return errors.Wrap(err, "error inserting thread")
		}

		err = tx.GetContext(ctx, &post, "INSERT INTO posts (thread_id, author_id, text, created_at, updated_at) VALUES ($1, $2, $3, $4, $4) RETURNING *", thread.Id, authorId, body, thread.CreatedAt)
		if err != nil {
			return errors.Wrap(err, "error inserting first post")
		}

		return nil
	})

	if err != nil {
		return nil, nil, err
	}

	return &thread, &post, nil
}

func GetThread(ctx context.Context, id int64) (*Thread, error) {
	var thread Thread
	err := Conn.GetContext(ctx, &thread, threadSelect+" WHERE t.id = $1", id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting thread: %v", err)
	}

	return &thread, nil
}

// TogglePin flips the pinned flag. Only staff may pin.
func TogglePin(ctx context.Context, threadId int64, actor *User) (bool, error) {
	if actor == nil || !actor.IsStaff {
		return false, shared.PermissionError("Only moderators can pin threads")
	}

	var pinned bool
	err := Conn.GetContext(ctx, &pinned, "UPDATE threads SET is_pinned = NOT is_pinned WHERE id = $1 RETURNING is_pinned", threadId)

	if err != nil {
		if err == sql.ErrNoRows {
			return false, shared.NotFoundError("Thread not found")
		}
		return false, errors.Wrap(err, "error toggling pin")
	}

	return pinned, nil
}

// ListThreads returns one page of a subsection. Pinned threads always come first.
func ListThreads(ctx context.Context, subsectionId int64, order string, page string) ([]*Thread, shared.PageInfo, error) {
	var total int
	err := Conn.GetContext(ctx, &total, "SELECT COUNT(*) FROM threads WHERE subsection_id = $1", subsectionId)
	if err != nil {
		return nil, shared.PageInfo{}, fmt.Errorf("error counting threads: %v", err)
	}

	pageInfo := shared.NewPageInfo(page, total, shared.ThreadsPerPage)

	orderBy := "t.is_pinned DESC, t.created_at DESC, t.id DESC"
	if NormalizeThreadOrder(order) == ThreadOrderActive {
		orderBy = "t.is_pinned DESC, t.last_reply_at DESC, t.id DESC"
	}

	threads := []*Thread{}
	err = Conn.SelectContext(ctx, &threads, threadSelect+" WHERE t.subsection_id = $1 ORDER BY "+orderBy+" LIMIT $2 OFFSET $3",
		subsectionId, shared.ThreadsPerPage, pageInfo.Offset(shared.ThreadsPerPage))
	if err != nil {
		return nil, shared.PageInfo{}, fmt.Errorf("error listing threads: %v", err)
	}

	return threads, pageInfo, nil
}

func ListPinnedThreads(ctx context.Context) ([]*Thread, error) {
	threads := []*Thread{}
	err := Conn.SelectContext(ctx, &threads, threadSelect+" WHERE t.is_pinned ORDER BY t.created_at DESC, t.id DESC")

	if err != nil {
		return nil, fmt.Errorf("error listing pinned threads: %v", err)
	}

	return threads, nil
}

func ListLatestThreads(ctx context.Context, limit int) ([]*Thread, error) {
	threads := []*Thread{}
	err := Conn.SelectContext(ctx, &threads, threadSelect+" WHERE NOT t.is_pinned ORDER BY t.created_at DESC, t.id DESC LIMIT $1", limit)

	if err != nil {
		return nil, fmt.Errorf("error listing latest threads: %v", err)
	}

	return threads, nil
}

func CountThreadsSince(ctx context.Context, authorId int64, since time.Time) (int, error) {
	var count int
	err := Conn.GetContext(ctx, &count, "SELECT COUNT(*) FROM threads WHERE author_id = $1 AND created_at > $2", authorId, since)

	if err != nil {
		return 0, fmt.Errorf("error counting threads: %v", err)
	}

	return count, nil
}

func ThreadsToApi(threads []*Thread) []shared.ThreadSummary {
	res := make([]shared.ThreadSummary, len(threads))
	for i, t := range threads {
		res[i] = t.ToApi()
	}
	return res
}
