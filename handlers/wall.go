package handlers

import (
	"fmt"
	"log"
	"net/http"

	"forum-server/db"
	"forum-server/shared"
)

// Wall routes are nested under the owner's profile. An entry addressed through another user's wall
// is reported as missing.

func CreateWallPostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for CreateWallPostHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	ownerId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	back := fmt.Sprintf("/user/%d/", ownerId)

	values, err := formValues(r, "body")
	if err != nil {
		handleFormError(w, r, err, back, "reading wall form")
		return
	}

	post, err := db.CreateWallPost(r.Context(), ownerId, auth.User.Id, values["body"])
	if err != nil {
		handleFormError(w, r, err, back, "creating wall post")
		return
	}

	post.AuthorName = auth.User.Username

	formSuccess(w, r, back, "", wallToApi([]*db.WallPost{post}, nil)[0])
}

func EditWallPostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for EditWallPostHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	ownerId, postId, ok := wallPostIds(w, r)
	if !ok {
		return
	}

	back := fmt.Sprintf("/user/%d/", ownerId)

	values, err := formValues(r, "body")
	if err != nil {
		handleFormError(w, r, err, back, "reading wall form")
		return
	}

	post, err := db.EditWallPost(r.Context(), postId, auth.User, values["body"])
	if err != nil {
		handleFormError(w, r, err, back, "editing wall post")
		return
	}

	formSuccess(w, r, back, "Post updated", wallToApi([]*db.WallPost{post}, nil)[0])
}

func DeleteWallPostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for DeleteWallPostHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	ownerId, postId, ok := wallPostIds(w, r)
	if !ok {
		return
	}

	back := fmt.Sprintf("/user/%d/", ownerId)

	_, err := db.DeleteWallPost(r.Context(), postId, auth.User)
	if err != nil {
		handleFormError(w, r, err, back, "deleting wall post")
		return
	}

	formSuccess(w, r, back, "Post deleted", map[string]int64{"deleted": postId})
}

func CreateWallCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for CreateWallCommentHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	ownerId, postId, ok := wallPostIds(w, r)
	if !ok {
		return
	}

	back := fmt.Sprintf("/user/%d/", ownerId)

	values, err := formValues(r, "body")
	if err != nil {
		handleFormError(w, r, err, back, "reading comment form")
		return
	}

	comment, err := db.CreateWallComment(r.Context(), postId, auth.User.Id, values["body"])
	if err != nil {
		handleFormError(w, r, err, back, "creating wall comment")
		return
	}

	formSuccess(w, r, back, "", commentToApi(comment, auth.User.Username))
}

func EditWallCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for EditWallCommentHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	ownerId, commentId, ok := wallCommentIds(w, r)
	if !ok {
		return
	}

	back := fmt.Sprintf("/user/%d/", ownerId)

	values, err := formValues(r, "body")
	if err != nil {
		handleFormError(w, r, err, back, "reading comment form")
		return
	}

	comment, err := db.EditWallComment(r.Context(), commentId, auth.User, values["body"])
	if err != nil {
		handleFormError(w, r, err, back, "editing wall comment")
		return
	}

	formSuccess(w, r, back, "Comment updated", commentToApi(comment, comment.AuthorName))
}

func DeleteWallCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for DeleteWallCommentHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	ownerId, commentId, ok := wallCommentIds(w, r)
	if !ok {
		return
	}

	back := fmt.Sprintf("/user/%d/", ownerId)

	_, err := db.DeleteWallComment(r.Context(), commentId, auth.User)
	if err != nil {
		handleFormError(w, r, err, back, "deleting wall comment")
		return
	}

	formSuccess(w, r, back, "Comment deleted", map[string]int64{"deleted": commentId})
}

func wallPostIds(w http.ResponseWriter, r *http.Request) (ownerId, postId int64, ok bool) {
	ownerId, ok = pathId(w, r, "id")
	if !ok {
		return 0, 0, false
	}
	postId, ok = pathId(w, r, "post_id")
	if !ok {
		return 0, 0, false
	}

	post, err := db.GetWallPost(r.Context(), postId)
	if err != nil {
		writeError(w, err, "getting wall post")
		return 0, 0, false
	}
	if post == nil || post.OwnerId != ownerId {
		writeApiError(w, *shared.NotFoundError("Wall post not found"))
		return 0, 0, false
	}

	return ownerId, postId, true
}

func wallCommentIds(w http.ResponseWriter, r *http.Request) (ownerId, commentId int64, ok bool) {
	ownerId, ok = pathId(w, r, "id")
	if !ok {
		return 0, 0, false
	}
	commentId, ok = pathId(w, r, "comment_id")
	if !ok {
		return 0, 0, false
	}

	actualOwner, err := db.GetWallCommentOwner(r.Context(), commentId)
	if err != nil {
		writeError(w, err, "getting wall comment")
		return 0, 0, false
	}
	if actualOwner != ownerId {
		writeApiError(w, *shared.NotFoundError("Comment not found"))
		return 0, 0, false
	}

	return ownerId, commentId, true
}

func commentToApi(c *db.WallComment, authorName string) shared.WallCommentView {
	return shared.WallCommentView{
		Id:         c.Id,
		AuthorId:   c.AuthorId,
		AuthorName: authorName,
		Body:       c.Body,
		BodyHtml:   renderText(c.Body),
		CreatedAt:  c.CreatedAt,
	}
}
