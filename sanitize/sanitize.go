package sanitize

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"forum-server/shared"

	"github.com/microcosm-cc/bluemonday"
)

const (
	ThreadTitleMin = 5
	ThreadTitleMax = 200
	ThreadBodyMin  = 10
	ThreadBodyMax  = 5000
	PostTextMax    = 5000
	MessageBodyMax = 5000
	BioMax         = 500
)

var AllowedPostTags = []string{"p", "br", "b", "i", "strong", "em", "a", "code", "pre", "blockquote"}

var (
	strictPolicy = bluemonday.StrictPolicy()
	postPolicy   = newPostPolicy()
)

func newPostPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(AllowedPostTags...)
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnLinks(true)
	return p
}

// PlainText trims input and strips every tag, returning unescaped text. Callers escape again on render.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(strings.TrimSpace(s))))
}

// PostHTML trims input and keeps only the post allow-list of tags.
func PostHTML(s string) string {
	return strings.TrimSpace(postPolicy.Sanitize(strings.TrimSpace(s)))
}

func ThreadTitle(s string) (string, error) {
	title := PlainText(s)
	n := utf8.RuneCountInString(title)
	if n < ThreadTitleMin {
		return "", shared.ValidationError(fmt.Sprintf("Title must be at least %d characters", ThreadTitleMin))
	}
	if n > ThreadTitleMax {
		return "", shared.ValidationError(fmt.Sprintf("Title must be at most %d characters", ThreadTitleMax))
	}
	return title, nil
}

func ThreadBody(s string) (string, error) {
	if utf8.RuneCountInString(strings.TrimSpace(s)) > ThreadBodyMax {
		return "", shared.ValidationError(fmt.Sprintf("Text must be at most %d characters", ThreadBodyMax))
	}
	body := PostHTML(s)
	if utf8.RuneCountInString(body) < ThreadBodyMin {
		return "", shared.ValidationError(fmt.Sprintf("Text must be at least %d characters", ThreadBodyMin))
	}
	return body, nil
}

// PostText returns the sanitized text of a reply. An empty result is allowed here; whether the post
// also carries an image is checked by the caller.
func PostText(s string) (string, error) {
	if utf8.RuneCountInString(strings.TrimSpace(s)) > PostTextMax {
		return "", shared.ValidationError(fmt.Sprintf("Text must be at most %d characters", PostTextMax))
	}
	return PostHTML(s), nil
}

func MessageBody(s string) (string, error) {
	body := strings.TrimSpace(s)
	if body == "" {
		return "", shared.ValidationError("Message cannot be empty")
	}
	if utf8.RuneCountInString(body) > MessageBodyMax {
		return "", shared.ValidationError(fmt.Sprintf("Message must be at most %d characters", MessageBodyMax))
	}
	return body, nil
}

func WallBody(s string) (string, error) {
	body := PlainText(s)
	if body == "" {
		return "", shared.ValidationError("Text cannot be empty")
	}
	return body, nil
}

func Bio(s string) (string, error) {
	bio := PlainText(s)
	if utf8.RuneCountInString(bio) > BioMax {
		return "", shared.ValidationError(fmt.Sprintf("Bio must be at most %d characters", BioMax))
	}
	return bio, nil
}
