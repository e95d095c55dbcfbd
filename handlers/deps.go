package handlers

import (
	"forum-server/emoji"
	"forum-server/inbox"
	"forum-server/media"

	"github.com/gorilla/sessions"
)

// Deps are the long-lived collaborators the handlers share. They are installed once by setup.
type Deps struct {
	Sessions sessions.Store
	Inbox    *inbox.Service
	Emoji    *emoji.Renderer
	Media    media.Store
}

var (
	sessionStore  sessions.Store
	inboxService  *inbox.Service
	emojiRenderer *emoji.Renderer
	mediaStore    media.Store
)

func Init(deps Deps) {
	sessionStore = deps.Sessions
	inboxService = deps.Inbox
	emojiRenderer = deps.Emoji
	mediaStore = deps.Media
}
