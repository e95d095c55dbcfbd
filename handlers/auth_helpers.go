package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"forum-server/db"
	"forum-server/shared"
	"forum-server/types"

	"github.com/gorilla/mux"
)

// authenticate resolves the caller from a bearer token or the session cookie. On failure it writes
// the error response and returns nil.
func authenticate(w http.ResponseWriter, r *http.Request) *types.ServerAuth {
	log.Println("authenticating request")

	auth, apiErr := resolveAuth(r)
	if apiErr != nil {
		writeApiError(w, *apiErr)
		return nil
	}

	if auth == nil {
		log.Println("no credentials")
		writeApiError(w, *shared.UnauthenticatedError("Sign in required"))
		return nil
	}

	return auth
}

// optionalAuth is for pages anonymous visitors may see. A bad token is treated as no token.
func optionalAuth(r *http.Request) *types.ServerAuth {
	auth, apiErr := resolveAuth(r)
	if apiErr != nil {
		log.Printf("ignoring invalid credentials: %v\n", apiErr.Msg)
		return nil
	}
	return auth
}

func resolveAuth(r *http.Request) (*types.ServerAuth, *shared.ApiError) {
	token := bearerToken(r)
	fromSession := false

	if token == "" && sessionStore != nil {
		if t, ok := getSession(r).Values[sessionAuthToken].(string); ok {
			token = t
			fromSession = true
		}
	}

	if token == "" {
		return nil, nil
	}

	authToken, err := db.ValidateAuthToken(r.Context(), token)
	if err != nil {
		if err != db.ErrInvalidToken {
			log.Printf("error validating auth token: %v\n", err)
		}
		msg := "Invalid auth token"
		if fromSession {
			msg = "Session expired, please sign in again"
		}
		return nil, shared.UnauthenticatedError(msg)
	}

	user, err := db.GetUser(r.Context(), authToken.UserId)
	if err != nil {
		log.Printf("error getting user: %v\n", err)
		return nil, &shared.ApiError{Type: shared.ApiErrorTypeOther, Status: http.StatusInternalServerError, Msg: "Error getting user"}
	}
	if user == nil {
		return nil, shared.UnauthenticatedError("User not found")
	}

	return &types.ServerAuth{AuthToken: authToken, User: user}, nil
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// pathId reads a numeric route variable. Routes constrain ids to digits, so failure means overflow.
func pathId(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 1 {
		writeApiError(w, *shared.NotFoundError("Not found"))
		return 0, false
	}
	return id, true
}
