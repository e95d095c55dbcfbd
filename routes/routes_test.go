package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"forum-server/db"
	"forum-server/hooks"
	"forum-server/shared"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
	json        bool
	cookie      *http.Cookie
}

func do(r *mux.Router, req request) *httptest.ResponseRecorder {
	httpReq := httptest.NewRequest(req.method, req.path, req.body)
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.json {
		httpReq.Header.Set("Accept", "application/json")
	}
	if req.cookie != nil {
		httpReq.AddCookie(req.cookie)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httpReq)
	return rec
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestRoutingWithoutCredentials(t *testing.T) {
	r := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{"POST", "/thread/1/new_post/"},
		{"GET", "/messages/"},
		{"GET", "/messages/poll/"},
		{"GET", "/messages/3/poll/?after=1"},
		{"POST", "/messages/3/typing/"},
		{"GET", "/messages/start/2/"},
		{"POST", "/avatar/"},
		{"GET", "/new_thread/"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := do(r, request{method: tc.method, path: tc.path})
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var apiErr shared.ApiError
			decode(t, rec, &apiErr)
			assert.Equal(t, shared.ApiErrorTypeUnauthenticated, apiErr.Type)
		})
	}

	assert.Equal(t, http.StatusNotFound, do(r, request{method: "GET", path: "/thread/abc/"}).Code)
	assert.Equal(t, http.StatusNotFound, do(r, request{method: "GET", path: "/messages/nope/"}).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(r, request{method: "DELETE", path: "/thread/1/"}).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(r, request{method: "GET", path: "/messages/1/typing/"}).Code)
}

func TestEmojiCatalogRoute(t *testing.T) {
	r := newTestRouter(t)

	rec := do(r, request{method: "GET", path: "/emoji/"})
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []shared.EmojiEntry
	decode(t, rec, &entries)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		assert.NotEmpty(t, e.Code)
		assert.True(t, e.Char != "" || e.Url != "", e.Code)
	}
}

func TestMessagingFlow(t *testing.T) {
	ctx := setupDb(t)
	r := newTestRouter(t)

	alice := createTestUser(t, ctx, "alice", false)
	bob := createTestUser(t, ctx, "bob", false)
	carol := createTestUser(t, ctx, "carol", false)

	rec := do(r, request{method: "GET", path: fmt.Sprintf("/messages/start/%d/", bob.Id), token: alice.token})
	require.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get("Location")
	require.Regexp(t, `^/messages/\d+/$`, location)

	// starting again from the other side lands on the same conversation
	rec = do(r, request{method: "GET", path: fmt.Sprintf("/messages/start/%d/", alice.Id), token: bob.token})
	assert.Equal(t, location, rec.Header().Get("Location"))

	rec = do(r, request{method: "GET", path: fmt.Sprintf("/messages/start/%d/", alice.Id), token: alice.token, json: true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, request{method: "POST", path: location, token: alice.token, body: jsonBody(map[string]string{"body": "hi :fire:"}), contentType: "application/json", json: true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var sent shared.PolledMessage
	decode(t, rec, &sent)
	assert.Equal(t, alice.Id, sent.SenderId)
	assert.Equal(t, "hi :fire:", sent.Body)
	assert.Contains(t, sent.BodyHtml, "🔥")

	rec = do(r, request{method: "POST", path: location, token: alice.token, body: jsonBody(map[string]string{"body": "   "}), contentType: "application/json", json: true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// bob's list shows the message unread
	rec = do(r, request{method: "GET", path: "/messages/poll/", token: bob.token})
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]interface{}
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, float64(1), list[0]["unread_count"])
	assert.Equal(t, false, list[0]["is_typing"])
	assert.Equal(t, "alice", list[0]["other_user"].(map[string]interface{})["username"])
	assert.Equal(t, "hi :fire:", list[0]["last_message"].(map[string]interface{})["body"])

	rec = do(r, request{method: "POST", path: location + "typing/", token: bob.token})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(r, request{method: "GET", path: location + "poll/?after=0", token: alice.token})
	require.Equal(t, http.StatusOK, rec.Code)

	var poll map[string]interface{}
	decode(t, rec, &poll)
	assert.Equal(t, true, poll["typing_active"])
	require.Len(t, poll["messages"], 1)
	msg := poll["messages"].([]interface{})[0].(map[string]interface{})
	for _, field := range []string{"id", "sender_id", "sender_name", "created_at", "body", "body_html"} {
		assert.Contains(t, msg, field)
	}

	rec = do(r, request{method: "GET", path: fmt.Sprintf("%spoll/?after=%d", location, sent.Id), token: alice.token})
	decode(t, rec, &poll)
	assert.Len(t, poll["messages"], 0)

	// opening the conversation marks it read for bob
	rec = do(r, request{method: "GET", path: location, token: bob.token})
	require.Equal(t, http.StatusOK, rec.Code)

	var detail shared.ConversationDetail
	decode(t, rec, &detail)
	assert.Equal(t, "alice", detail.OtherUser.Username)
	assert.Len(t, detail.Messages, 1)

	rec = do(r, request{method: "GET", path: "/messages/", token: bob.token})
	var convoList shared.ConversationList
	decode(t, rec, &convoList)
	assert.Equal(t, 0, convoList.UnreadCount)
	require.Len(t, convoList.Conversations, 1)
	assert.Equal(t, 0, convoList.Conversations[0].UnreadCount)

	// outsiders can't read or type
	assert.Equal(t, http.StatusForbidden, do(r, request{method: "GET", path: location + "poll/", token: carol.token}).Code)
	assert.Equal(t, http.StatusForbidden, do(r, request{method: "POST", path: location + "typing/", token: carol.token}).Code)
	assert.Equal(t, http.StatusNotFound, do(r, request{method: "GET", path: "/messages/999/poll/", token: carol.token}).Code)
}

func TestMessageRateLimit(t *testing.T) {
	ctx := setupDb(t)
	r := newTestRouter(t)
	hooks.RegisterRateLimits(hooks.Limits{MessagesPerHour: 2})

	alice := createTestUser(t, ctx, "alice", false)
	bob := createTestUser(t, ctx, "bob", false)

	rec := do(r, request{method: "GET", path: fmt.Sprintf("/messages/start/%d/", bob.Id), token: alice.token})
	require.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get("Location")

	send := func(token, body string) *httptest.ResponseRecorder {
		return do(r, request{method: "POST", path: location, token: token, body: jsonBody(map[string]string{"body": body}), contentType: "application/json", json: true})
	}

	require.Equal(t, http.StatusOK, send(alice.token, "one").Code)
	require.Equal(t, http.StatusOK, send(alice.token, "two").Code)

	rec = send(alice.token, "three")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, rec.Body.String())

	// the limit is per sender
	assert.Equal(t, http.StatusOK, send(bob.token, "reply").Code)

	count, err := db.CountMessagesSince(ctx, alice.Id, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestForumFlow(t *testing.T) {
	ctx := setupDb(t)
	r := newTestRouter(t)

	alice := createTestUser(t, ctx, "alice", false)
	mod := createTestUser(t, ctx, "moderator", true)

	section, err := db.CreateSection(ctx, "General", "", 0)
	require.NoError(t, err)
	subsection, err := db.CreateSubsection(ctx, section.Id, "Chat", "", 0)
	require.NoError(t, err)

	newThreadPath := fmt.Sprintf("/subsection/%d/new_thread/", subsection.Id)

	// a title that's too short bounces back with a flash
	form := url.Values{"title": {"Hey"}, "body": {"A long enough body"}}
	rec := do(r, request{method: "POST", path: newThreadPath, token: alice.token, body: strings.NewReader(form.Encode()), contentType: "application/x-www-form-urlencoded"})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, newThreadPath, rec.Header().Get("Location"))

	rec = do(r, request{method: "GET", path: newThreadPath, token: alice.token, cookie: rec.Result().Cookies()[0]})
	var threadForm shared.NewThreadForm
	decode(t, rec, &threadForm)
	require.Len(t, threadForm.Flashes, 1)

	form = url.Values{"title": {"Hello forum"}, "body": {"My very first thread body"}}
	rec = do(r, request{method: "POST", path: newThreadPath, token: alice.token, body: strings.NewReader(form.Encode()), contentType: "application/x-www-form-urlencoded"})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	threadPath := rec.Header().Get("Location")
	require.Regexp(t, `^/thread/\d+/$`, threadPath)

	// views count once per session
	rec = do(r, request{method: "GET", path: threadPath})
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := rec.Result().Cookies()[0]

	var page shared.PostPage
	decode(t, rec, &page)
	assert.Equal(t, int64(1), page.Thread.ViewsCount)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "My very first thread body", page.Posts[0].Text)

	rec = do(r, request{method: "GET", path: threadPath, cookie: cookie})
	decode(t, rec, &page)
	assert.Equal(t, int64(1), page.Thread.ViewsCount)

	// a reply with an image
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("text", "nice :smile_okay:"))
	fw, err := mw.CreateFormFile("image", "pic.png")
	require.NoError(t, err)
	_, err = fw.Write(tinyPng(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec = do(r, request{method: "POST", path: threadPath + "new_post/", token: alice.token, body: &buf, contentType: mw.FormDataContentType(), json: true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var post shared.PostView
	decode(t, rec, &post)
	assert.Contains(t, post.TextHtml, "😊")
	assert.Regexp(t, `^/media/posts/[0-9a-f-]+\.png$`, post.ImageUrl)

	// pinning is staff only
	assert.Equal(t, http.StatusForbidden, do(r, request{method: "POST", path: threadPath + "toggle-pin/", token: alice.token, json: true}).Code)

	rec = do(r, request{method: "POST", path: threadPath + "toggle-pin/", token: mod.token, json: true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"is_pinned":true}`, rec.Body.String())

	rec = do(r, request{method: "GET", path: fmt.Sprintf("/subsection/%d/?order=active", subsection.Id)})
	var threads shared.ThreadPage
	decode(t, rec, &threads)
	assert.Equal(t, "active", threads.Order)
	require.Len(t, threads.Threads, 1)
	assert.True(t, threads.Threads[0].IsPinned)

	rec = do(r, request{method: "GET", path: "/"})
	var overview shared.Overview
	decode(t, rec, &overview)
	assert.Len(t, overview.PinnedThreads, 1)
	assert.Equal(t, 2, overview.Stats.Posts)

	// only the author may edit
	editPath := fmt.Sprintf("/post/%d/edit/", post.Id)
	assert.Equal(t, http.StatusForbidden, do(r, request{method: "GET", path: editPath, token: mod.token}).Code)

	rec = do(r, request{method: "POST", path: editPath, token: alice.token, body: jsonBody(map[string]string{"text": "edited"}), contentType: "application/json", json: true})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &post)
	assert.Equal(t, "edited", post.Text)
}

func TestProfileAndWall(t *testing.T) {
	ctx := setupDb(t)
	r := newTestRouter(t)

	alice := createTestUser(t, ctx, "alice", false)
	bob := createTestUser(t, ctx, "bob", false)

	profilePath := fmt.Sprintf("/user/%d/", alice.Id)

	rec := do(r, request{method: "POST", path: profilePath + "wall/", token: bob.token, body: jsonBody(map[string]string{"body": "hello <b>alice</b>"}), contentType: "application/json", json: true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var wallPost shared.WallPostView
	decode(t, rec, &wallPost)

	rec = do(r, request{method: "POST", path: fmt.Sprintf("%swall/%d/comment/", profilePath, wallPost.Id), token: alice.token, body: jsonBody(map[string]string{"body": "hi bob"}), contentType: "application/json", json: true})
	require.Equal(t, http.StatusOK, rec.Code)

	// a wall post addressed through the wrong profile is missing
	rec = do(r, request{method: "POST", path: fmt.Sprintf("/user/%d/wall/%d/delete/", bob.Id, wallPost.Id), token: alice.token, json: true})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, http.StatusForbidden, do(r, request{method: "POST", path: profilePath, token: bob.token, body: jsonBody(map[string]string{"bio": "not mine"}), contentType: "application/json", json: true}).Code)

	rec = do(r, request{method: "POST", path: profilePath, token: alice.token, body: jsonBody(map[string]string{"bio": "I like forums"}), contentType: "application/json", json: true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, request{method: "GET", path: profilePath})
	require.Equal(t, http.StatusOK, rec.Code)

	var profile shared.ProfileView
	decode(t, rec, &profile)
	assert.Equal(t, "alice", profile.User.Username)
	assert.Equal(t, "I like forums", profile.Bio)
	require.Len(t, profile.Wall, 1)
	assert.Equal(t, "bob", profile.Wall[0].AuthorName)
	require.Len(t, profile.Wall[0].Comments, 1)
	assert.NotContains(t, profile.Wall[0].BodyHtml, "<b>")

	// the wall owner may delete posts others left
	rec = do(r, request{method: "POST", path: fmt.Sprintf("%swall/%d/delete/", profilePath, wallPost.Id), token: alice.token, json: true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, request{method: "GET", path: profilePath})
	decode(t, rec, &profile)
	assert.Empty(t, profile.Wall)

	assert.Equal(t, http.StatusNotFound, do(r, request{method: "GET", path: "/user/999/"}).Code)
}

func TestSessionSignIn(t *testing.T) {
	ctx := setupDb(t)
	r := newTestRouter(t)

	alice := createTestUser(t, ctx, "alice", false)

	rec := do(r, request{method: "POST", path: "/accounts/sign_in", body: jsonBody(shared.SignInRequest{Token: "not-a-token"}), contentType: "application/json"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(r, request{method: "POST", path: "/accounts/sign_in", body: jsonBody(shared.SignInRequest{Token: alice.token}), contentType: "application/json"})
	require.Equal(t, http.StatusOK, rec.Code)

	var session shared.SessionResponse
	decode(t, rec, &session)
	assert.Equal(t, alice.Id, session.UserId)

	cookie := rec.Result().Cookies()[0]

	rec = do(r, request{method: "GET", path: "/messages/", cookie: cookie})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, request{method: "POST", path: "/accounts/sign_out", cookie: cookie})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(r, request{method: "GET", path: "/messages/", cookie: rec.Result().Cookies()[0]})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
