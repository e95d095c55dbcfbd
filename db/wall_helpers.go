package db

import (
	"context"
	"database/sql"
	"fmt"

	"forum-server/sanitize"
	"forum-server/shared"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// Wall entries can be edited by their author only. Deleting is also open to the wall owner and to
// staff.

func CreateWallPost(ctx context.Context, ownerId, authorId int64, body string) (*WallPost, error) {
	body, err := sanitize.WallBody(body)
	if err != nil {
		return nil, err
	}

	var post WallPost
	err = Conn.GetContext(ctx, &post, "INSERT INTO wall_posts (owner_id, author_id, body) VALUES ($1, $2, $3) RETURNING *", ownerId, authorId, body)

	if err != nil {
		if IsForeignKeyErr(err) {
			return nil, shared.NotFoundError("User not found")
		}
		return nil, errors.Wrap(err, "error creating wall post")
	}

	return &post, nil
}

func GetWallPost(ctx context.Context, id int64) (*WallPost, error) {
	var post WallPost
	err := Conn.GetContext(ctx, &post, "SELECT p.*, u.username AS author_name FROM wall_posts p JOIN users u ON u.id = p.author_id WHERE p.id = $1", id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting wall post: %v", err)
	}

	return &post, nil
}

// EditWallPost lets the author or staff rewrite a wall post.
func EditWallPost(ctx context.Context, postId int64, actor *User, body string) (*WallPost, error) {
	post, err := GetWallPost(ctx, postId)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, shared.NotFoundError("Wall post not found")
	}
	if !canEditWall(actor, post.AuthorId) {
		return nil, shared.PermissionError("You can only edit your own wall posts")
	}

	body, err = sanitize.WallBody(body)
	if err != nil {
		return nil, err
	}

	err = Conn.QueryRowContext(ctx, "UPDATE wall_posts SET body = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at", postId, body).Scan(&post.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "error updating wall post")
	}
	post.Body = body

	return post, nil
}

func DeleteWallPost(ctx context.Context, postId int64, actor *User) (*WallPost, error) {
	post, err := GetWallPost(ctx, postId)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, shared.NotFoundError("Wall post not found")
	}
	if !canModerateWall(actor, post.AuthorId, post.OwnerId) {
		return nil, shared.PermissionError("You can't delete this wall post")
	}

	_, err = Conn.ExecContext(ctx, "DELETE FROM wall_posts WHERE id = $1", postId)
	if err != nil {
		return nil, errors.Wrap(err, "error deleting wall post")
	}

	return post, nil
}

func CreateWallComment(ctx context.Context, postId, authorId int64, body string) (*WallComment, error) {
	body, err := sanitize.WallBody(body)
	if err != nil {
		return nil, err
	}

	var comment WallComment
	err = Conn.GetContext(ctx, &comment, "INSERT INTO wall_comments (post_id, author_id, body) VALUES ($1, $2, $3) RETURNING *", postId, authorId, body)

	if err != nil {
		if IsForeignKeyErr(err) {
			return nil, shared.NotFoundError("Wall post not found")
		}
		return nil, errors.Wrap(err, "error creating wall comment")
	}

	return &comment, nil
}

// wallComment is a comment joined with the owner of the wall it sits on.
type wallComment struct {
	WallComment
	OwnerId int64 `db:"owner_id"`
}

func getWallComment(ctx context.Context, id int64) (*wallComment, error) {
	var comment wallComment
	err := Conn.GetContext(ctx, &comment, `
		SELECT c.*, u.username AS author_name, p.owner_id
		FROM wall_comments c
		JOIN wall_posts p ON p.id = c.post_id
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1
	`, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting wall comment: %v", err)
	}

	return &comment, nil
}

// GetWallCommentOwner returns the id of the user whose wall the comment belongs to, or 0 if the
// comment doesn't exist.
func GetWallCommentOwner(ctx context.Context, commentId int64) (int64, error) {
	comment, err := getWallComment(ctx, commentId)
	if err != nil || comment == nil {
		return 0, err
	}
	return comment.OwnerId, nil
}

func EditWallComment(ctx context.Context, commentId int64, actor *User, body string) (*WallComment, error) {
	comment, err := getWallComment(ctx, commentId)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, shared.NotFoundError("Comment not found")
	}
	if !canEditWall(actor, comment.AuthorId) {
		return nil, shared.PermissionError("You can only edit your own comments")
	}

	body, err = sanitize.WallBody(body)
	if err != nil {
		return nil, err
	}

	err = Conn.QueryRowContext(ctx, "UPDATE wall_comments SET body = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at", commentId, body).Scan(&comment.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "error updating wall comment")
	}
	comment.Body = body

	return &comment.WallComment, nil
}

func DeleteWallComment(ctx context.Context, commentId int64, actor *User) (*WallComment, error) {
	comment, err := getWallComment(ctx, commentId)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, shared.NotFoundError("Comment not found")
	}
	if !canModerateWall(actor, comment.AuthorId, comment.OwnerId) {
		return nil, shared.PermissionError("You can't delete this comment")
	}

	_, err = Conn.ExecContext(ctx, "DELETE FROM wall_comments WHERE id = $1", commentId)
	if err != nil {
		return nil, errors.Wrap(err, "error deleting wall comment")
	}

	return &comment.WallComment, nil
}

func canEditWall(actor *User, authorId int64) bool {
	if actor == nil {
		return false
	}
	return actor.IsStaff || actor.Id == authorId
}

func canModerateWall(actor *User, authorId, ownerId int64) bool {
	if actor == nil {
		return false
	}
	return actor.IsStaff || actor.Id == authorId || actor.Id == ownerId
}

// ListWall returns the owner's wall posts newest first, each with its comments oldest first.
func ListWall(ctx context.Context, ownerId int64) ([]*WallPost, map[int64][]*WallComment, error) {
	posts := []*WallPost{}
	err := Conn.SelectContext(ctx, &posts, `
		SELECT p.*, u.username AS author_name
		FROM wall_posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.owner_id = $1
		ORDER BY p.created_at DESC, p.id DESC
	`, ownerId)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing wall posts: %v", err)
	}

	comments := map[int64][]*WallComment{}
	if len(posts) == 0 {
		return posts, comments, nil
	}

	postIds := make([]int64, len(posts))
	for i, p := range posts {
		postIds[i] = p.Id
	}

	var rows []*WallComment
	err = Conn.SelectContext(ctx, &rows, `
		SELECT c.*, u.username AS author_name
		FROM wall_comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = ANY($1)
		ORDER BY c.created_at, c.id
	`, pq.Array(postIds))
	if err != nil {
		return nil, nil, fmt.Errorf("error listing wall comments: %v", err)
	}

	for _, c := range rows {
		comments[c.PostId] = append(comments[c.PostId], c)
	}

	return posts, comments, nil
}
