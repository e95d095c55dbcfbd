package db

import (
	"context"
	"strings"
	"testing"

	"forum-server/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersAndTokens(t *testing.T) {
	ctx := setupDb(t)

	user := createTestUser(t, ctx, "Alice")

	_, err := CreateUser(ctx, "alice", "", false)
	assert.True(t, shared.IsType(err, shared.ApiErrorTypeConflict), "usernames are case-insensitively unique")

	_, err = CreateUser(ctx, "al", "", false)
	assert.True(t, shared.IsType(err, shared.ApiErrorTypeValidation))

	found, err := GetUserByUsername(ctx, "ALICE")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.Id, found.Id)

	token, id, err := CreateAuthToken(ctx, user.Id)
	require.NoError(t, err)

	authToken, err := ValidateAuthToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.Id, authToken.UserId)
	assert.NotEqual(t, token, authToken.TokenHash)

	_, err = ValidateAuthToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, DeleteAuthToken(ctx, id))
	_, err = ValidateAuthToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestProfile(t *testing.T) {
	ctx := setupDb(t)

	user := createTestUser(t, ctx, "alice")

	profile, err := GetOrCreateProfile(ctx, user.Id)
	require.NoError(t, err)
	assert.Nil(t, profile.AvatarPath)

	previous, err := UpdateAvatar(ctx, user.Id, "avatars/one.png")
	require.NoError(t, err)
	assert.Nil(t, previous)

	previous, err = UpdateAvatar(ctx, user.Id, "avatars/two.png")
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, "avatars/one.png", *previous)

	profile, err = UpdateBio(ctx, user.Id, "<b>Hi</b>, I like cats")
	require.NoError(t, err)
	assert.Equal(t, "Hi, I like cats", profile.Bio)
	require.NotNil(t, profile.AvatarPath)
	assert.Equal(t, "avatars/two.png", *profile.AvatarPath)

	_, err = UpdateBio(ctx, user.Id, strings.Repeat("x", 501))
	assert.True(t, shared.IsType(err, shared.ApiErrorTypeValidation))
}

func TestWall(t *testing.T) {
	ctx := setupDb(t)

	owner := createTestUser(t, ctx, "alice")
	author := createTestUser(t, ctx, "bob")
	stranger := createTestUser(t, ctx, "mallory")
	staff, err := CreateUser(ctx, "moderator", "", true)
	require.NoError(t, err)

	post, err := CreateWallPost(ctx, owner.Id, author.Id, "<b>hello</b> wall")
	require.NoError(t, err)
	assert.Equal(t, "hello wall", post.Body)

	_, err = CreateWallPost(ctx, owner.Id, author.Id, "<i></i>")
	assert.True(t, shared.IsType(err, shared.ApiErrorTypeValidation))

	_, err = EditWallPost(ctx, post.Id, owner, "owner edit")
	assert.True(t, shared.IsType(err, shared.ApiErrorTypePermission), "only the author or staff edits")

	_, err = EditWallPost(ctx, post.Id, stranger, "stranger edit")
	assert.True(t, shared.IsType(err, shared.ApiErrorTypePermission))

	edited, err := EditWallPost(ctx, post.Id, author, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Body)

	edited, err = EditWallPost(ctx, post.Id, staff, "moderated")
	require.NoError(t, err, "staff can edit any wall post")
	assert.Equal(t, "moderated", edited.Body)
	assert.Equal(t, author.Id, edited.AuthorId)

	comment, err := CreateWallComment(ctx, post.Id, stranger.Id, "nice")
	require.NoError(t, err)
	second, err := CreateWallComment(ctx, post.Id, owner.Id, "thanks")
	require.NoError(t, err)

	ownerId, err := GetWallCommentOwner(ctx, comment.Id)
	require.NoError(t, err)
	assert.Equal(t, owner.Id, ownerId)

	posts, comments, err := ListWall(ctx, owner.Id)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "bob", posts[0].AuthorName)
	require.Len(t, comments[post.Id], 2)
	assert.Equal(t, comment.Id, comments[post.Id][0].Id)
	assert.Equal(t, second.Id, comments[post.Id][1].Id)

	_, err = EditWallComment(ctx, comment.Id, owner, "changed")
	assert.True(t, shared.IsType(err, shared.ApiErrorTypePermission))

	_, err = EditWallComment(ctx, comment.Id, author, "changed")
	assert.True(t, shared.IsType(err, shared.ApiErrorTypePermission), "post author doesn't own the comment")

	editedComment, err := EditWallComment(ctx, comment.Id, staff, "[removed by staff]")
	require.NoError(t, err, "staff can edit any wall comment")
	assert.Equal(t, "[removed by staff]", editedComment.Body)
	assert.Equal(t, stranger.Id, editedComment.AuthorId)

	_, err = DeleteWallComment(ctx, comment.Id, author)
	assert.True(t, shared.IsType(err, shared.ApiErrorTypePermission), "post author doesn't own the comment")

	_, err = DeleteWallComment(ctx, comment.Id, owner)
	require.NoError(t, err, "wall owner can delete comments")

	_, err = DeleteWallPost(ctx, post.Id, stranger)
	assert.True(t, shared.IsType(err, shared.ApiErrorTypePermission))

	_, err = DeleteWallPost(ctx, post.Id, staff)
	require.NoError(t, err)

	posts, _, err = ListWall(ctx, owner.Id)
	require.NoError(t, err)
	assert.Empty(t, posts)

	_, err = DeleteWallPost(context.Background(), post.Id, staff)
	assert.True(t, shared.IsType(err, shared.ApiErrorTypeNotFound))
}

func TestCountUserContent(t *testing.T) {
	ctx := setupDb(t)

	user := createTestUser(t, ctx, "alice")
	sub := createTestSubsection(t, ctx)
	thread, _, err := CreateThread(ctx, sub.Id, user.Id, "Counting", "Count my content please")
	require.NoError(t, err)
	_, err = AppendPost(ctx, thread.Id, user.Id, "another one", nil)
	require.NoError(t, err)

	posts, threads, err := CountUserContent(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, posts)
	assert.Equal(t, 1, threads)
}
