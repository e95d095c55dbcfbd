package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"forum-server/db"
	"forum-server/hooks"
	"forum-server/shared"
)

func ListConversationsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for ListConversationsHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	conversations, err := inboxService.ListConversationsFor(r.Context(), auth.User.Id, time.Now())
	if err != nil {
		writeError(w, err, "listing conversations")
		return
	}

	unread, err := db.CountUnreadForUser(r.Context(), auth.User.Id)
	if err != nil {
		writeError(w, err, "counting unread messages")
		return
	}

	writeJson(w, shared.ConversationList{
		Conversations: conversations,
		UnreadCount:   unread,
		Flashes:       popFlashes(w, r),
	})
}

func PollConversationsHandler(w http.ResponseWriter, r *http.Request) {
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	conversations, err := inboxService.ListConversationsFor(r.Context(), auth.User.Id, time.Now())
	if err != nil {
		writeError(w, err, "polling conversations")
		return
	}

	writeJson(w, conversations)
}

func ConversationDetailHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for ConversationDetailHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	conversationId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	detail, err := inboxService.OpenConversation(r.Context(), conversationId, auth.User.Id, time.Now())
	if err != nil {
		writeError(w, err, "opening conversation")
		return
	}

	detail.Flashes = popFlashes(w, r)

	writeJson(w, detail)
}

func SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for SendMessageHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	conversationId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	back := fmt.Sprintf("/messages/%d/", conversationId)

	values, err := formValues(r, "body")
	if err != nil {
		handleFormError(w, r, err, back, "reading message form")
		return
	}

	hookErr := hooks.ExecHook(hooks.WillSendMessage, hooks.HookParams{User: auth.User, ConversationId: conversationId})
	if hookErr != nil {
		handleFormError(w, r, hookErr, back, "sending message")
		return
	}

	msg, err := db.SendMessage(r.Context(), conversationId, auth.User.Id, values["body"])
	if err != nil {
		handleFormError(w, r, err, back, "sending message")
		return
	}

	formSuccess(w, r, back, "", shared.PolledMessage{
		Id:         msg.Id,
		SenderId:   msg.SenderId,
		SenderName: auth.User.Username,
		CreatedAt:  msg.CreatedAt,
		Body:       msg.Body,
		BodyHtml:   renderText(msg.Body),
	})
}

func PollMessagesHandler(w http.ResponseWriter, r *http.Request) {
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	conversationId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	// a missing or malformed cursor means "from the beginning"
	afterId, err := strconv.ParseInt(r.URL.Query().Get("after"), 10, 64)
	if err != nil {
		afterId = 0
	}

	poll, err := inboxService.PollConversation(r.Context(), conversationId, auth.User.Id, afterId, time.Now())
	if err != nil {
		writeError(w, err, "polling conversation")
		return
	}

	writeJson(w, poll)
}

func TypingHandler(w http.ResponseWriter, r *http.Request) {
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	conversationId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	_, err := db.PingTyping(r.Context(), conversationId, auth.User.Id)
	if err != nil {
		writeError(w, err, "recording typing")
		return
	}

	writeJson(w, shared.TypingResponse{Ok: true})
}

func StartConversationHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for StartConversationHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	otherId, ok := pathId(w, r, "user_id")
	if !ok {
		return
	}

	conversation, err := db.GetOrCreateConversation(r.Context(), auth.User.Id, otherId)
	if err != nil {
		handleFormError(w, r, err, "/messages/", "starting conversation")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/messages/%d/", conversation.Id), http.StatusFound)
}
