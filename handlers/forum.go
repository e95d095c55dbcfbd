package handlers

import (
	"fmt"
	"log"
	"net/http"

	"forum-server/db"
	"forum-server/hooks"
	"forum-server/sanitize"
	"forum-server/shared"
)

func OverviewHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for OverviewHandler")

	auth := optionalAuth(r)
	ctx := r.Context()

	sections, err := db.ListSectionsWithSubsections(ctx)
	if err != nil {
		writeError(w, err, "listing sections")
		return
	}

	pinned, err := db.ListPinnedThreads(ctx)
	if err != nil {
		writeError(w, err, "listing pinned threads")
		return
	}

	latest, err := db.ListLatestThreads(ctx, db.LatestThreadsLimit)
	if err != nil {
		writeError(w, err, "listing latest threads")
		return
	}

	stats, err := db.GetForumStats(ctx)
	if err != nil {
		writeError(w, err, "getting forum stats")
		return
	}

	var unread int
	if auth != nil {
		unread, err = db.CountUnreadForUser(ctx, auth.User.Id)
		if err != nil {
			writeError(w, err, "counting unread messages")
			return
		}
	}

	writeJson(w, shared.Overview{
		Sections:      sections,
		PinnedThreads: db.ThreadsToApi(pinned),
		LatestThreads: db.ThreadsToApi(latest),
		Stats:         *stats,
		UnreadCount:   unread,
		Flashes:       popFlashes(w, r),
	})
}

func ThreadListHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for ThreadListHandler")

	subsectionId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	subsection, err := db.GetSubsection(r.Context(), subsectionId)
	if err != nil {
		writeError(w, err, "getting subsection")
		return
	}
	if subsection == nil {
		writeApiError(w, *shared.NotFoundError("Subsection not found"))
		return
	}

	order := db.NormalizeThreadOrder(r.URL.Query().Get("order"))

	threads, page, err := db.ListThreads(r.Context(), subsectionId, order, r.URL.Query().Get("page"))
	if err != nil {
		writeError(w, err, "listing threads")
		return
	}

	writeJson(w, shared.ThreadPage{
		Subsection: subsection.ToApi(),
		Order:      order,
		Threads:    db.ThreadsToApi(threads),
		Page:       page,
		Flashes:    popFlashes(w, r),
	})
}

func ChooseSubsectionHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for ChooseSubsectionHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	sections, err := db.ListSectionsWithSubsections(r.Context())
	if err != nil {
		writeError(w, err, "listing sections")
		return
	}

	writeJson(w, shared.ChooseSubsection{Sections: sections, Flashes: popFlashes(w, r)})
}

func NewThreadFormHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for NewThreadFormHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	subsectionId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	subsection, err := db.GetSubsection(r.Context(), subsectionId)
	if err != nil {
		writeError(w, err, "getting subsection")
		return
	}
	if subsection == nil {
		writeApiError(w, *shared.NotFoundError("Subsection not found"))
		return
	}

	writeJson(w, shared.NewThreadForm{
		Subsection: subsection.ToApi(),
		TitleMin:   sanitize.ThreadTitleMin,
		TitleMax:   sanitize.ThreadTitleMax,
		BodyMin:    sanitize.ThreadBodyMin,
		BodyMax:    sanitize.ThreadBodyMax,
		Flashes:    popFlashes(w, r),
	})
}

func CreateThreadHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for CreateThreadHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	subsectionId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	back := fmt.Sprintf("/subsection/%d/new_thread/", subsectionId)

	values, err := formValues(r, "title", "body")
	if err != nil {
		handleFormError(w, r, err, back, "reading thread form")
		return
	}

	hookErr := hooks.ExecHook(hooks.WillCreateThread, hooks.HookParams{User: auth.User, SubsectionId: subsectionId})
	if hookErr != nil {
		handleFormError(w, r, hookErr, back, "creating thread")
		return
	}

	thread, post, err := db.CreateThread(r.Context(), subsectionId, auth.User.Id, values["title"], values["body"])
	if err != nil {
		handleFormError(w, r, err, back, "creating thread")
		return
	}

	log.Printf("Created thread %d in subsection %d\n", thread.Id, subsectionId)

	thread.AuthorName = auth.User.Username
	post.AuthorName = auth.User.Username

	formSuccess(w, r, fmt.Sprintf("/thread/%d/", thread.Id), "Thread created", shared.PostPage{
		Thread: thread.ToApi(),
		Posts:  []shared.PostView{postToApi(post)},
		Page:   shared.NewPageInfo("1", 1, shared.PostsPerPage),
	})
}
