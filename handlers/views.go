package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"forum-server/db"
	"forum-server/shared"
)

const maxFormBytes = 1 << 20

// formValues reads the named fields from a JSON body or a url-encoded/multipart form.
func formValues(r *http.Request, names ...string) (map[string]string, error) {
	res := make(map[string]string, len(names))

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxFormBytes))
		if err != nil {
			return nil, fmt.Errorf("error reading request body: %v", err)
		}

		var raw map[string]interface{}
		err = json.Unmarshal(body, &raw)
		if err != nil {
			return nil, shared.InvalidArgumentError("Invalid request body")
		}

		for _, name := range names {
			if s, ok := raw[name].(string); ok {
				res[name] = s
			}
		}
		return res, nil
	}

	for _, name := range names {
		res[name] = r.FormValue(name)
	}
	return res, nil
}

func mediaUrl(path *string) string {
	if path == nil || *path == "" || mediaStore == nil {
		return ""
	}
	return mediaStore.Url(*path)
}

func renderText(text string) string {
	if emojiRenderer == nil {
		return text
	}
	return emojiRenderer.Render(text)
}

func postToApi(p *db.Post) shared.PostView {
	textHtml := p.Text
	if emojiRenderer != nil {
		textHtml = emojiRenderer.RenderHTML(p.Text)
	}

	return shared.PostView{
		Id:              p.Id,
		ThreadId:        p.ThreadId,
		AuthorId:        p.AuthorId,
		AuthorName:      p.AuthorName,
		AuthorAvatarUrl: mediaUrl(p.AuthorAvatarPath),
		Text:            p.Text,
		TextHtml:        textHtml,
		ImageUrl:        mediaUrl(p.ImagePath),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func postsToApi(posts []*db.Post) []shared.PostView {
	res := make([]shared.PostView, len(posts))
	for i, p := range posts {
		res[i] = postToApi(p)
	}
	return res
}

func wallToApi(posts []*db.WallPost, comments map[int64][]*db.WallComment) []shared.WallPostView {
	res := make([]shared.WallPostView, 0, len(posts))
	for _, p := range posts {
		view := shared.WallPostView{
			Id:         p.Id,
			AuthorId:   p.AuthorId,
			AuthorName: p.AuthorName,
			Body:       p.Body,
			BodyHtml:   renderText(p.Body),
			CreatedAt:  p.CreatedAt,
			Comments:   []shared.WallCommentView{},
		}
		for _, c := range comments[p.Id] {
			view.Comments = append(view.Comments, shared.WallCommentView{
				Id:         c.Id,
				AuthorId:   c.AuthorId,
				AuthorName: c.AuthorName,
				Body:       c.Body,
				BodyHtml:   renderText(c.Body),
				CreatedAt:  c.CreatedAt,
			})
		}
		res = append(res, view)
	}
	return res
}
