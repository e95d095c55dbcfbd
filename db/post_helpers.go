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

const postSelect = `SELECT p.*, u.username AS author_name, pr.avatar_path AS author_avatar_path
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN profiles pr ON pr.user_id = p.author_id`

// AppendPost adds a reply and moves the thread's last_reply_at forward in the same transaction.
func AppendPost(ctx context.Context, threadId, authorId int64, text string, imagePath *string) (*Post, error) {
	text, err := sanitize.PostText(text)
	if err != nil {
		return nil, err
	}

	if text == "" && imagePath == nil {
		return nil, shared.ValidationError("Post must contain text or an image")
	}

	var post Post

	err = WithTx(ctx, "append post", func(tx *sqlx.Tx) error {
		var threadExists bool
		err := tx.GetContext(ctx, &threadExists, "SELECT EXISTS (SELECT 1 FROM threads WHERE id = $1)", threadId)
		if err != nil {
			return fmt.Errorf("error checking thread: %v", err)
		}
		if !threadExists {
			return shared.NotFoundError("Thread not found")
		}

		err = tx.GetContext(ctx, &post, "INSERT INTO posts (thread_id, author_id, text, image_path) VALUES ($1, $2, $3, $4) RETURNING *", threadId, authorId, text, imagePath)
		if err != nil {
			if IsForeignKeyErr(err) {
				return shared.NotFoundError("Author not found")
			}
			return errors.Wrap(err, "error inserting post")
		}

		_, err = tx.ExecContext(ctx, "UPDATE threads SET last_reply_at = GREATEST(last_reply_at, $2) WHERE id = $1", threadId, post.CreatedAt)
		if err != nil {
			return errors.Wrap(err, "error updating thread last reply")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &post, nil
}

func GetPost(ctx context.Context, id int64) (*Post, error) {
	var post Post
	err := Conn.GetContext(ctx, &post, postSelect+" WHERE p.id = $1", id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting post: %v", err)
	}

	return &post, nil
}

// EditPost replaces the text of a post. Only its author may edit it; the thread's last_reply_at is
// left alone.
func EditPost(ctx context.Context, postId, editorId int64, newText string) (*Post, error) {
	post, err := GetPost(ctx, postId)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, shared.NotFoundError("Post not found")
	}
	if post.AuthorId != editorId {
		return nil, shared.PermissionError("You can only edit your own posts")
	}

	text, err := sanitize.PostText(newText)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, shared.ValidationError("Post text cannot be empty")
	}

	err = Conn.QueryRowContext(ctx, "UPDATE posts SET text = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at", postId, text).Scan(&post.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.NotFoundError("Post not found")
		}
		return nil, errors.Wrap(err, "error updating post")
	}

	post.Text = text

	return post, nil
}

func ListPosts(ctx context.Context, threadId int64, page string) ([]*Post, shared.PageInfo, error) {
	var total int
	err := Conn.GetContext(ctx, &total, "SELECT COUNT(*) FROM posts WHERE thread_id = $1", threadId)
	if err != nil {
		return nil, shared.PageInfo{}, fmt.Errorf("error counting posts: %v", err)
	}

	pageInfo := shared.NewPageInfo(page, total, shared.PostsPerPage)

	posts := []*Post{}
	err = Conn.SelectContext(ctx, &posts, postSelect+" WHERE p.thread_id = $1 ORDER BY p.created_at, p.id LIMIT $2 OFFSET $3",
		threadId, shared.PostsPerPage, pageInfo.Offset(shared.PostsPerPage))
	if err != nil {
		return nil, shared.PageInfo{}, fmt.Errorf("error listing posts: %v", err)
	}

	return posts, pageInfo, nil
}

func CountPostsSince(ctx context.Context, authorId int64, since time.Time) (int, error) {
	var count int
	err := Conn.GetContext(ctx, &count, "SELECT COUNT(*) FROM posts WHERE author_id = $1 AND created_at > $2", authorId, since)

	if err != nil {
		return 0, fmt.Errorf("error counting posts: %v", err)
	}

	return count, nil
}
