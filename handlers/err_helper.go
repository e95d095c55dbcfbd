package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"forum-server/shared"
)

func writeApiError(w http.ResponseWriter, apiErr shared.ApiError) {
	bytes, err := json.Marshal(apiErr)
	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response", http.StatusInternalServerError)
		return
	}

	log.Printf("API Error: %v\n", apiErr.Msg)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)

	_, writeErr := w.Write(bytes)
	if writeErr != nil {
		log.Printf("Error writing response: %v\n", writeErr)
	}
}

func writeJson(w http.ResponseWriter, v interface{}) {
	bytes, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	if err != nil {
		log.Printf("Error writing response: %v\n", err)
	}
}

// writeError writes an ApiError as JSON. Anything else is logged and reported as a generic failure.
func writeError(w http.ResponseWriter, err error, context string) {
	if apiErr, ok := shared.AsApiError(err); ok {
		writeApiError(w, *apiErr)
		return
	}

	log.Printf("Error %s: %v\n", context, err)
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeOther,
		Status: http.StatusInternalServerError,
		Msg:    "Something went wrong, please try again",
	})
}

func wantsJson(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// handleFormError answers a failed form post. Browsers are sent back to the page they came from with
// a flash message; JSON clients get the error itself. Missing entities are always a 404.
func handleFormError(w http.ResponseWriter, r *http.Request, err error, back string, context string) {
	apiErr, ok := shared.AsApiError(err)
	if !ok || wantsJson(r) || apiErr.Type == shared.ApiErrorTypeNotFound || apiErr.Type == shared.ApiErrorTypeUnauthenticated {
		writeError(w, err, context)
		return
	}

	log.Printf("Form error %s: %v\n", context, apiErr.Msg)
	addFlash(w, r, apiErr.Msg)
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// formSuccess redirects a browser with an optional flash, or answers a JSON client with payload.
func formSuccess(w http.ResponseWriter, r *http.Request, target, flash string, payload interface{}) {
	if wantsJson(r) {
		writeJson(w, payload)
		return
	}

	if flash != "" {
		addFlash(w, r, flash)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
