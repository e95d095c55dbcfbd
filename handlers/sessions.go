package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"forum-server/db"
	"forum-server/shared"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName       = "forum_session"
	sessionAuthToken  = "auth_token"
	sessionKeyValue   = "session_key"
	sessionMaxAgeDays = 30
)

func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAgeDays * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func getSession(r *http.Request) *sessions.Session {
	if sessionStore == nil {
		return sessions.NewSession(nil, sessionName)
	}

	session, err := sessionStore.Get(r, sessionName)
	if err != nil {
		// a cookie signed with an old secret; the store still hands back a fresh session
		log.Printf("Error decoding session, starting a new one: %v\n", err)
	}
	return session
}

func saveSession(w http.ResponseWriter, r *http.Request, session *sessions.Session) {
	if sessionStore == nil {
		return
	}

	err := session.Save(r, w)
	if err != nil {
		log.Printf("Error saving session: %v\n", err)
	}
}

// sessionKey identifies the browsing session for view counting, creating it on first use.
func sessionKey(w http.ResponseWriter, r *http.Request) string {
	session := getSession(r)
	if key, ok := session.Values[sessionKeyValue].(string); ok && key != "" {
		return key
	}

	key := uuid.New().String()
	session.Values[sessionKeyValue] = key
	saveSession(w, r, session)
	return key
}

func addFlash(w http.ResponseWriter, r *http.Request, msg string) {
	session := getSession(r)
	session.AddFlash(msg)
	saveSession(w, r, session)
}

// popFlashes returns pending flash messages and clears them.
func popFlashes(w http.ResponseWriter, r *http.Request) []string {
	session := getSession(r)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}

	saveSession(w, r, session)

	res := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			res = append(res, s)
		}
	}
	return res
}

func SignInHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for SignInHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}

	var req shared.SignInRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		writeApiError(w, *shared.InvalidArgumentError("Invalid request body"))
		return
	}

	authToken, err := db.ValidateAuthToken(r.Context(), strings.TrimSpace(req.Token))
	if err != nil {
		if err == db.ErrInvalidToken {
			writeApiError(w, *shared.UnauthenticatedError("Invalid auth token"))
			return
		}
		writeError(w, err, "validating auth token")
		return
	}

	user, err := db.GetUser(r.Context(), authToken.UserId)
	if err != nil {
		writeError(w, err, "getting user")
		return
	}
	if user == nil {
		writeApiError(w, *shared.UnauthenticatedError("User not found"))
		return
	}

	session := getSession(r)
	session.Values[sessionAuthToken] = strings.TrimSpace(req.Token)
	saveSession(w, r, session)

	log.Println("Successfully processed request for SignInHandler")

	writeJson(w, shared.SessionResponse{UserId: user.Id, Username: user.Username, IsStaff: user.IsStaff})
}

func SignOutHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for SignOutHandler")

	session := getSession(r)
	delete(session.Values, sessionAuthToken)
	saveSession(w, r, session)

	w.WriteHeader(http.StatusNoContent)
}

func GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for GetSessionHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	writeJson(w, shared.SessionResponse{UserId: auth.User.Id, Username: auth.User.Username, IsStaff: auth.User.IsStaff})
}
