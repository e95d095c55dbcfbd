package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"forum-server/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{B: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadAvatarIsResized(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/media")

	key, err := Upload(context.Background(), store, KindAvatar, "me.PNG", bytes.NewReader(pngBytes(t, 600, 400)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "avatars/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, "/media/"+key, store.Url(key))

	f, err := os.Open(filepath.Join(store.Root, key))
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestUploadPostImageKeepsSize(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/media/")
	data := pngBytes(t, 640, 480)

	key, err := Upload(context.Background(), store, KindPost, "cat.png", bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "posts/"))

	stored, err := os.ReadFile(filepath.Join(store.Root, key))
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	require.NoError(t, store.Delete(context.Background(), key))
	require.NoError(t, store.Delete(context.Background(), key), "deleting twice is fine")
}

func TestUploadValidation(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/media/")
	ctx := context.Background()

	_, err := Upload(ctx, store, KindAvatar, "me.webp", bytes.NewReader(pngBytes(t, 10, 10)))
	assert.True(t, shared.IsType(err, shared.ApiErrorTypeValidation), "extension not allowed")

	_, err = Upload(ctx, store, KindAvatar, "me.jpg", bytes.NewReader(pngBytes(t, 10, 10)))
	assert.True(t, shared.IsType(err, shared.ApiErrorTypeValidation), "content doesn't match extension")

	_, err = Upload(ctx, store, KindPost, "notes.png", strings.NewReader("plain text"))
	assert.True(t, shared.IsType(err, shared.ApiErrorTypeValidation))

	big := bytes.Repeat([]byte{0}, MaxAvatarBytes+1)
	_, err = Upload(ctx, store, KindAvatar, "big.png", bytes.NewReader(big))
	assert.True(t, shared.IsType(err, shared.ApiErrorTypeValidation))
}

func TestThumbnail(t *testing.T) {
	tall := image.NewRGBA(image.Rect(0, 0, 100, 900))
	out := Thumbnail(tall, AvatarMaxSide)
	assert.Equal(t, 33, out.Bounds().Dx())
	assert.Equal(t, 300, out.Bounds().Dy())

	small := image.NewRGBA(image.Rect(0, 0, 50, 50))
	assert.Same(t, small, Thumbnail(small, AvatarMaxSide))
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/media/")
	err := store.Save(context.Background(), "../outside.png", []byte("x"), "image/png")
	assert.Error(t, err)
}
