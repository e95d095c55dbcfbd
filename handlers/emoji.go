package handlers

import (
	"log"
	"net/http"

	"forum-server/shared"
)

func EmojiCatalogHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for EmojiCatalogHandler")

	if emojiRenderer == nil {
		writeJson(w, []shared.EmojiEntry{})
		return
	}

	writeJson(w, emojiRenderer.Catalog())
}
