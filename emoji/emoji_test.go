package emoji

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"forum-server/sanitize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePng(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newTestRenderer(t *testing.T) *Renderer {
	dir := t.TempDir()
	writePng(t, filepath.Join(dir, "fire.png"))
	writePng(t, filepath.Join(dir, "party_parrot.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not an image"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))
	return NewRenderer(dir, "/static/emoji")
}

func TestRenderEscapesBeforeSubstituting(t *testing.T) {
	r := NewRenderer("", "/static/emoji/")

	out := r.Render(`<script>alert(":fire:")</script>`)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "🔥")
}

func TestRenderPrefersAssets(t *testing.T) {
	r := newTestRenderer(t)

	out := r.Render("hot :fire: and :heart:")
	assert.Equal(t, `hot <img src="/static/emoji/fire.png" alt=":fire:" class="emoji" width="20" height="20" loading="lazy"> and ❤️`, out)

	out = r.Render(":party_parrot:")
	assert.Contains(t, out, `src="/static/emoji/party_parrot.png"`)
}

func TestRenderLeavesUnknownCodes(t *testing.T) {
	r := newTestRenderer(t)

	assert.Equal(t, ":nope_nope:", r.Render(":nope_nope:"))
	assert.Equal(t, ":broken:", r.Render(":broken:"), "undecodable assets are ignored")
	assert.Equal(t, ":a:", r.Render(":a:"), "codes need at least two characters")
	assert.Equal(t, ":Fire:", r.Render(":Fire:"), "codes are lowercase")
}

func TestRenderNewlines(t *testing.T) {
	r := NewRenderer("", "/static/emoji/")
	assert.Equal(t, "one<br>two 😉", r.Render("one\ntwo :wink:"))
}

func TestRenderHTMLKeepsMarkup(t *testing.T) {
	r := NewRenderer("", "/static/emoji/")
	assert.Equal(t, "<p>great 👍</p>", r.RenderHTML("<p>great :thumbs_up:</p>"))
}

func TestRenderHTMLLeavesAttributesAlone(t *testing.T) {
	r := newTestRenderer(t)

	clean := sanitize.PostHTML(`<a href="https://example.com/:fire:" title="hot :fire: take">link :fire:</a>`)
	require.Contains(t, clean, `href="https://example.com/:fire:"`)

	out := r.RenderHTML(clean)

	assert.Contains(t, out, `href="https://example.com/:fire:"`)
	assert.Contains(t, out, `title="hot :fire: take"`)
	assert.Equal(t, 1, strings.Count(out, "<img "), "only the text node gets an image")
	assert.Contains(t, out, `link <img src="/static/emoji/fire.png"`)

	openTag := out[:strings.Index(out, ">")+1]
	assert.NotContains(t, openTag, "<img")
	assert.NotContains(t, openTag, "class=")
}

func TestRenderHTMLEscapesTextEntities(t *testing.T) {
	r := NewRenderer("", "/static/emoji/")

	out := r.RenderHTML("<p>a &lt;b&gt; :heart: &amp; c</p>")
	assert.Equal(t, "<p>a &lt;b&gt; ❤️ &amp; c</p>", out)
}

func TestCatalog(t *testing.T) {
	r := newTestRenderer(t)

	catalog := r.Catalog()
	codes := make([]string, len(catalog))
	for i, e := range catalog {
		codes[i] = e.Code
	}

	assert.Equal(t, []string{"clap", "fire", "heart", "party", "party_parrot", "sad", "smile_okay", "thumbs_up", "wink"}, codes)

	for _, e := range catalog {
		switch e.Code {
		case "fire":
			assert.Equal(t, "🔥", e.Char)
			assert.Equal(t, "/static/emoji/fire.png", e.Url)
		case "party_parrot":
			assert.Empty(t, e.Char)
			assert.NotEmpty(t, e.Url)
		case "clap":
			assert.Empty(t, e.Url)
		}
	}
}

func TestReloadPicksUpNewAssets(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, "/e/")
	assert.Equal(t, ":cat_wave:", r.Render(":cat_wave:"))

	writePng(t, filepath.Join(dir, "cat_wave.png"))
	r.Reload()
	assert.Contains(t, r.Render(":cat_wave:"), `src="/e/cat_wave.png"`)
}
