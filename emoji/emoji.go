package emoji

import (
	"fmt"
	"html"
	"image"
	_ "image/gif"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"forum-server/shared"

	_ "golang.org/x/image/webp"
	nethtml "golang.org/x/net/html"
)

var Chars = map[string]string{
	"smile_okay": "😊",
	"thumbs_up":  "👍",
	"heart":      "❤️",
	"fire":       "🔥",
	"clap":       "👏",
	"party":      "🥳",
	"wink":       "😉",
	"sad":        "😢",
}

// Exts in lookup order. The first extension present for a code wins.
var Exts = []string{"gif", "png", "webp"}

var codePattern = regexp.MustCompile(`:([a-z0-9_+-]{2,}):`)

// Renderer turns :code: tokens into image tags or characters. Assets are indexed from a directory
// on construction and on Reload.
type Renderer struct {
	dir     string
	baseUrl string

	mu     sync.RWMutex
	assets map[string]string
}

func NewRenderer(dir, baseUrl string) *Renderer {
	r := &Renderer{
		dir:     dir,
		baseUrl: strings.TrimRight(baseUrl, "/") + "/",
		assets:  map[string]string{},
	}
	r.Reload()
	return r
}

// Reload rescans the asset directory. Files that don't decode as one of the supported image formats
// are skipped.
func (r *Renderer) Reload() {
	assets := map[string]string{}

	if r.dir != "" {
		entries, err := os.ReadDir(r.dir)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("error reading emoji dir %s: %v", r.dir, err)
			}
		} else {
			byCode := map[string]map[string]string{}
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				name := entry.Name()
				ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
				code := strings.TrimSuffix(name, filepath.Ext(name))
				if code == "" || !isExt(ext) {
					continue
				}
				if !decodes(filepath.Join(r.dir, name)) {
					log.Printf("skipping emoji asset %s: not a readable image", name)
					continue
				}
				if byCode[code] == nil {
					byCode[code] = map[string]string{}
				}
				byCode[code][ext] = name
			}

			for code, files := range byCode {
				for _, ext := range Exts {
					if name, ok := files[ext]; ok {
						assets[code] = r.baseUrl + name
						break
					}
				}
			}
		}
	}

	r.mu.Lock()
	r.assets = assets
	r.mu.Unlock()
}

func isExt(ext string) bool {
	for _, e := range Exts {
		if e == ext {
			return true
		}
	}
	return false
}

func decodes(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, _, err = image.DecodeConfig(f)
	return err == nil
}

func (r *Renderer) assetUrl(code string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.assets[code]
}

// Render escapes plain text, substitutes emoji codes and converts newlines to <br>.
func (r *Renderer) Render(text string) string {
	out := r.substitute(html.EscapeString(text))
	return strings.ReplaceAll(out, "\n", "<br>")
}

// RenderHTML substitutes emoji codes in the text nodes of markup that has already been sanitized.
// Tags and attribute values are copied through untouched.
func (r *Renderer) RenderHTML(sanitized string) string {
	var b strings.Builder
	z := nethtml.NewTokenizer(strings.NewReader(sanitized))

	for {
		tt := z.Next()
		switch tt {
		case nethtml.ErrorToken:
			return b.String()
		case nethtml.TextToken:
			b.WriteString(r.substitute(html.EscapeString(string(z.Text()))))
		default:
			b.Write(z.Raw())
		}
	}
}

func (r *Renderer) substitute(escaped string) string {
	return codePattern.ReplaceAllStringFunc(escaped, func(token string) string {
		code := token[1 : len(token)-1]
		if url := r.assetUrl(code); url != "" {
			return fmt.Sprintf(`<img src="%s" alt=":%s:" class="emoji" width="20" height="20" loading="lazy">`, html.EscapeString(url), code)
		}
		if char, ok := Chars[code]; ok {
			return char
		}
		return token
	})
}

func (r *Renderer) Catalog() []shared.EmojiEntry {
	codes := map[string]bool{}
	for code := range Chars {
		codes[code] = true
	}

	r.mu.RLock()
	for code := range r.assets {
		codes[code] = true
	}
	r.mu.RUnlock()

	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	res := make([]shared.EmojiEntry, len(sorted))
	for i, code := range sorted {
		res[i] = shared.EmojiEntry{
			Code: code,
			Char: Chars[code],
			Url:  r.assetUrl(code),
		}
	}
	return res
}
