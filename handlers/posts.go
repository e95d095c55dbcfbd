package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"forum-server/db"
	"forum-server/hooks"
	"forum-server/media"
	"forum-server/shared"
	"forum-server/types"
)

func PostListHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for PostListHandler")

	threadId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	thread, err := db.GetThread(r.Context(), threadId)
	if err != nil {
		writeError(w, err, "getting thread")
		return
	}
	if thread == nil {
		writeApiError(w, *shared.NotFoundError("Thread not found"))
		return
	}

	counted, err := db.RecordView(r.Context(), threadId, sessionKey(w, r))
	if err != nil {
		// a lost view shouldn't hide the thread
		log.Printf("Error recording view for thread %d: %v\n", threadId, err)
	} else if counted {
		thread.ViewsCount++
	}

	posts, page, err := db.ListPosts(r.Context(), threadId, r.URL.Query().Get("page"))
	if err != nil {
		writeError(w, err, "listing posts")
		return
	}

	writeJson(w, shared.PostPage{
		Thread:  thread.ToApi(),
		Posts:   postsToApi(posts),
		Page:    page,
		Flashes: popFlashes(w, r),
	})
}

func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for CreatePostHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	threadId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	back := fmt.Sprintf("/thread/%d/", threadId)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err := r.ParseMultipartForm(media.MaxPostBytes)
		if err != nil {
			handleFormError(w, r, shared.ValidationError("Invalid upload"), back, "parsing post form")
			return
		}
	}

	values, err := formValues(r, "text")
	if err != nil {
		handleFormError(w, r, err, back, "reading post form")
		return
	}

	hookErr := hooks.ExecHook(hooks.WillCreatePost, hooks.HookParams{User: auth.User, ThreadId: threadId})
	if hookErr != nil {
		handleFormError(w, r, hookErr, back, "creating post")
		return
	}

	var imagePath *string
	if r.MultipartForm != nil {
		file, header, err := r.FormFile("image")
		if err != nil && err != http.ErrMissingFile {
			handleFormError(w, r, shared.ValidationError("Invalid upload"), back, "reading post image")
			return
		}
		if err == nil {
			defer file.Close()

			key, err := media.Upload(r.Context(), mediaStore, media.KindPost, header.Filename, file)
			if err != nil {
				handleFormError(w, r, err, back, "uploading post image")
				return
			}
			imagePath = &key
		}
	}

	post, err := db.AppendPost(r.Context(), threadId, auth.User.Id, values["text"], imagePath)
	if err != nil {
		if imagePath != nil {
			discardMedia(r, *imagePath)
		}
		handleFormError(w, r, err, back, "creating post")
		return
	}

	post.AuthorName = auth.User.Username

	formSuccess(w, r, fmt.Sprintf("/thread/%d/#post-%d", threadId, post.Id), "", postToApi(post))
}

func EditPostFormHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for EditPostFormHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	postId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	post, err := db.GetPost(r.Context(), postId)
	if err != nil {
		writeError(w, err, "getting post")
		return
	}
	if post == nil {
		writeApiError(w, *shared.NotFoundError("Post not found"))
		return
	}
	if post.AuthorId != auth.User.Id {
		writeApiError(w, *shared.PermissionError("You can only edit your own posts"))
		return
	}

	writeJson(w, shared.EditPostForm{Post: postToApi(post), Flashes: popFlashes(w, r)})
}

func EditPostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for EditPostHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	postId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	back := fmt.Sprintf("/post/%d/edit/", postId)

	values, err := formValues(r, "text")
	if err != nil {
		handleFormError(w, r, err, back, "reading post form")
		return
	}

	post, err := db.EditPost(r.Context(), postId, auth.User.Id, values["text"])
	if err != nil {
		handleFormError(w, r, err, back, "editing post")
		return
	}

	formSuccess(w, r, fmt.Sprintf("/thread/%d/#post-%d", post.ThreadId, post.Id), "Post updated", postToApi(post))
}

func TogglePinHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for TogglePinHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	threadId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	back := fmt.Sprintf("/thread/%d/", threadId)

	if !auth.HasPermission(types.PermissionPinThread) {
		handleFormError(w, r, shared.PermissionError("Only staff can pin threads"), back, "toggling pin")
		return
	}

	pinned, err := db.TogglePin(r.Context(), threadId, auth.User)
	if err != nil {
		handleFormError(w, r, err, back, "toggling pin")
		return
	}

	flash := "Thread unpinned"
	if pinned {
		flash = "Thread pinned"
	}

	formSuccess(w, r, back, flash, map[string]bool{"is_pinned": pinned})
}

// discardMedia removes an upload whose owning row was never written.
func discardMedia(r *http.Request, key string) {
	err := mediaStore.Delete(r.Context(), key)
	if err != nil {
		log.Printf("Error deleting orphaned upload %s: %v\n", key, err)
	}
}
