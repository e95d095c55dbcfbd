package handlers

import (
	"fmt"
	"log"
	"net/http"

	"forum-server/db"
	"forum-server/media"
	"forum-server/shared"
)

func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for ProfileHandler")

	userId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	ctx := r.Context()

	user, err := db.GetUser(ctx, userId)
	if err != nil {
		writeError(w, err, "getting user")
		return
	}
	if user == nil {
		writeApiError(w, *shared.NotFoundError("User not found"))
		return
	}

	profile, err := db.GetOrCreateProfile(ctx, userId)
	if err != nil {
		writeError(w, err, "getting profile")
		return
	}

	posts, threads, err := db.CountUserContent(ctx, userId)
	if err != nil {
		writeError(w, err, "counting user content")
		return
	}

	wall, comments, err := db.ListWall(ctx, userId)
	if err != nil {
		writeError(w, err, "listing wall")
		return
	}

	writeJson(w, shared.ProfileView{
		User: shared.UserRef{
			Id:        user.Id,
			Username:  user.Username,
			AvatarUrl: mediaUrl(profile.AvatarPath),
		},
		Bio:         profile.Bio,
		JoinedAt:    user.CreatedAt,
		PostCount:   posts,
		ThreadCount: threads,
		Wall:        wallToApi(wall, comments),
		Flashes:     popFlashes(w, r),
	})
}

func UpdateBioHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for UpdateBioHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	userId, ok := pathId(w, r, "id")
	if !ok {
		return
	}

	back := fmt.Sprintf("/user/%d/", userId)

	if userId != auth.User.Id {
		handleFormError(w, r, shared.PermissionError("You can only edit your own profile"), back, "updating bio")
		return
	}

	values, err := formValues(r, "bio")
	if err != nil {
		handleFormError(w, r, err, back, "reading profile form")
		return
	}

	profile, err := db.UpdateBio(r.Context(), userId, values["bio"])
	if err != nil {
		handleFormError(w, r, err, back, "updating bio")
		return
	}

	formSuccess(w, r, back, "Profile updated", map[string]string{"bio": profile.Bio})
}

func UpdateAvatarHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for UpdateAvatarHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	back := fmt.Sprintf("/user/%d/", auth.User.Id)

	err := r.ParseMultipartForm(media.MaxAvatarBytes)
	if err != nil {
		handleFormError(w, r, shared.ValidationError("Invalid upload"), back, "parsing avatar form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		handleFormError(w, r, shared.ValidationError("Choose an image to upload"), back, "reading avatar")
		return
	}
	defer file.Close()

	key, err := media.Upload(r.Context(), mediaStore, media.KindAvatar, header.Filename, file)
	if err != nil {
		handleFormError(w, r, err, back, "uploading avatar")
		return
	}

	previous, err := db.UpdateAvatar(r.Context(), auth.User.Id, key)
	if err != nil {
		discardMedia(r, key)
		handleFormError(w, r, err, back, "updating avatar")
		return
	}

	if previous != nil && *previous != "" && *previous != key {
		discardMedia(r, *previous)
	}

	formSuccess(w, r, back, "Avatar updated", map[string]string{"avatar_url": mediaStore.Url(key)})
}
