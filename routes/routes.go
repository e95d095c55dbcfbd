package routes

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"forum-server/config"
	"forum-server/db"
	"forum-server/handlers"

	"github.com/gorilla/mux"
)

func AddHealthRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		err := db.Ping()
		if err != nil {
			log.Printf("Error pinging database: %v\n", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}

		fmt.Fprint(w, "OK")
	}).Methods("GET")

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		execPath, err := os.Executable()
		if err != nil {
			http.Error(w, "Error getting version", http.StatusInternalServerError)
			return
		}

		bytes, err := os.ReadFile(filepath.Join(filepath.Dir(execPath), "version.txt"))
		if err != nil {
			// fall back to the working directory for `go run`
			bytes, err = os.ReadFile("version.txt")
		}
		if err != nil {
			http.Error(w, "Error getting version", http.StatusInternalServerError)
			return
		}

		fmt.Fprint(w, strings.TrimSpace(string(bytes)))
	}).Methods("GET")
}

func AddApiRoutes(r *mux.Router) {
	r.HandleFunc("/", handlers.OverviewHandler).Methods("GET")

	r.HandleFunc("/accounts/sign_in", handlers.SignInHandler).Methods("POST")
	r.HandleFunc("/accounts/sign_out", handlers.SignOutHandler).Methods("POST")
	r.HandleFunc("/accounts/session", handlers.GetSessionHandler).Methods("GET")

	r.HandleFunc("/new_thread/", handlers.ChooseSubsectionHandler).Methods("GET")
	r.HandleFunc("/subsection/{id:[0-9]+}/", handlers.ThreadListHandler).Methods("GET")
	r.HandleFunc("/subsection/{id:[0-9]+}/new_thread/", handlers.NewThreadFormHandler).Methods("GET")
	r.HandleFunc("/subsection/{id:[0-9]+}/new_thread/", handlers.CreateThreadHandler).Methods("POST")

	r.HandleFunc("/thread/{id:[0-9]+}/", handlers.PostListHandler).Methods("GET")
	r.HandleFunc("/thread/{id:[0-9]+}/new_post/", handlers.CreatePostHandler).Methods("POST")
	r.HandleFunc("/thread/{id:[0-9]+}/toggle-pin/", handlers.TogglePinHandler).Methods("POST")
	r.HandleFunc("/post/{id:[0-9]+}/edit/", handlers.EditPostFormHandler).Methods("GET")
	r.HandleFunc("/post/{id:[0-9]+}/edit/", handlers.EditPostHandler).Methods("POST")

	r.HandleFunc("/user/{id:[0-9]+}/", handlers.ProfileHandler).Methods("GET")
	r.HandleFunc("/user/{id:[0-9]+}/", handlers.UpdateBioHandler).Methods("POST")
	r.HandleFunc("/avatar/", handlers.UpdateAvatarHandler).Methods("POST")

	r.HandleFunc("/user/{id:[0-9]+}/wall/", handlers.CreateWallPostHandler).Methods("POST")
	r.HandleFunc("/user/{id:[0-9]+}/wall/{post_id:[0-9]+}/edit/", handlers.EditWallPostHandler).Methods("POST")
	r.HandleFunc("/user/{id:[0-9]+}/wall/{post_id:[0-9]+}/delete/", handlers.DeleteWallPostHandler).Methods("POST")
	r.HandleFunc("/user/{id:[0-9]+}/wall/{post_id:[0-9]+}/comment/", handlers.CreateWallCommentHandler).Methods("POST")
	r.HandleFunc("/user/{id:[0-9]+}/wall/comment/{comment_id:[0-9]+}/edit/", handlers.EditWallCommentHandler).Methods("POST")
	r.HandleFunc("/user/{id:[0-9]+}/wall/comment/{comment_id:[0-9]+}/delete/", handlers.DeleteWallCommentHandler).Methods("POST")

	// fixed paths first so they aren't taken for a conversation id
	r.HandleFunc("/messages/", handlers.ListConversationsHandler).Methods("GET")
	r.HandleFunc("/messages/poll/", handlers.PollConversationsHandler).Methods("GET")
	r.HandleFunc("/messages/start/{user_id:[0-9]+}/", handlers.StartConversationHandler).Methods("GET")
	r.HandleFunc("/messages/{id:[0-9]+}/", handlers.ConversationDetailHandler).Methods("GET")
	r.HandleFunc("/messages/{id:[0-9]+}/", handlers.SendMessageHandler).Methods("POST")
	r.HandleFunc("/messages/{id:[0-9]+}/poll/", handlers.PollMessagesHandler).Methods("GET")
	r.HandleFunc("/messages/{id:[0-9]+}/typing/", handlers.TypingHandler).Methods("POST")

	r.HandleFunc("/emoji/", handlers.EmojiCatalogHandler).Methods("GET")
}

// AddStaticRoutes serves uploaded media from disk when the local backend is active, plus the emoji
// assets. Absolute urls point somewhere else and are skipped.
func AddStaticRoutes(r *mux.Router, cfg *config.Config) {
	if cfg.Media.Backend == "local" {
		addFileServer(r, cfg.Media.Url, cfg.Media.Root)
	}
	addFileServer(r, cfg.Emoji.Url, cfg.Emoji.Dir)
}

func addFileServer(r *mux.Router, prefix, dir string) {
	if !strings.HasPrefix(prefix, "/") || prefix == "/" {
		return
	}
	prefix = strings.TrimRight(prefix, "/") + "/"

	r.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))).Methods("GET")
}

func AddRoutes(r *mux.Router, cfg *config.Config) {
	AddHealthRoutes(r)
	AddApiRoutes(r)
	AddStaticRoutes(r, cfg)
}
