package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"forum-server/shared"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

type Kind string

const (
	KindAvatar Kind = "avatars"
	KindPost   Kind = "posts"
)

const (
	MaxAvatarBytes = 5 * 1024 * 1024
	MaxPostBytes   = 10 * 1024 * 1024
	AvatarMaxSide  = 300
)

var AllowedExts = []string{"jpg", "jpeg", "png", "gif"}

// formats reported by image.DecodeConfig for each allowed extension
var extFormats = map[string]string{
	"jpg":  "jpeg",
	"jpeg": "jpeg",
	"png":  "png",
	"gif":  "gif",
}

var contentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

func (k Kind) maxBytes() int64 {
	if k == KindAvatar {
		return MaxAvatarBytes
	}
	return MaxPostBytes
}

func Ext(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

func allowedExt(ext string) bool {
	_, ok := extFormats[ext]
	return ok
}

// Upload validates an uploaded image, normalizes avatars and saves the result under a generated key.
func Upload(ctx context.Context, store Store, kind Kind, filename string, r io.Reader) (string, error) {
	ext := Ext(filename)
	if !allowedExt(ext) {
		return "", shared.ValidationError(fmt.Sprintf("Allowed formats: %s", strings.Join(AllowedExts, ", ")))
	}

	data, tooLarge, err := readLimited(r, kind.maxBytes())
	if err != nil {
		return "", fmt.Errorf("error reading upload: %v", err)
	}
	if tooLarge {
		return "", shared.ValidationError(fmt.Sprintf("File must not exceed %dMB", kind.maxBytes()/(1024*1024)))
	}

	data, format, err := Prepare(kind, ext, data)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s.%s", kind, uuid.New().String(), ext)

	err = store.Save(ctx, key, data, contentTypes[format])
	if err != nil {
		return "", err
	}

	return key, nil
}

// Prepare checks that data decodes as the format its extension claims and, for avatars, scales it
// down to fit within AvatarMaxSide. It returns the bytes to store and the decoded format.
func Prepare(kind Kind, ext string, data []byte) ([]byte, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", shared.ValidationError("File is not a valid image")
	}
	if extFormats[ext] != format {
		return nil, "", shared.ValidationError(fmt.Sprintf("File content is %s but the name says %s", format, ext))
	}

	if kind != KindAvatar || (cfg.Width <= AvatarMaxSide && cfg.Height <= AvatarMaxSide) {
		return data, format, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", shared.ValidationError("File is not a valid image")
	}

	resized := Thumbnail(src, AvatarMaxSide)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 90})
	case "png":
		err = png.Encode(&buf, resized)
	case "gif":
		err = gif.Encode(&buf, resized, nil)
	}
	if err != nil {
		return nil, "", fmt.Errorf("error encoding resized avatar: %v", err)
	}

	return buf.Bytes(), format, nil
}

// Thumbnail scales src to fit within a maxSide square, preserving the aspect ratio.
func Thumbnail(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return src
	}

	if w >= h {
		h = max(1, h*maxSide/w)
		w = maxSide
	} else {
		w = max(1, w*maxSide/h)
		h = maxSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
