package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/config"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
)

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadImage(t *testing.T) {
	var gotPath, gotAuth, gotType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAuth, gotType = r.URL.Path, r.Header.Get("Authorization"), r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(&config.Config{SupabaseURL: srv.URL + "/", SupabaseServiceKey: "svc", SupabaseStorageBucket: "attachments"}, logger.Nop())
	require.True(t, c.Enabled())

	up, err := c.UploadImage(context.Background(), samplePNG(t), "user-1")
	require.NoError(t, err)

	assert.Contains(t, gotPath, "/storage/v1/object/attachments/published/owner-user-1/")
	assert.Equal(t, "Bearer svc", gotAuth)
	assert.Equal(t, "image/webp", gotType)
	assert.Equal(t, "RIFF", string(gotBody[:4]))
	assert.Equal(t, int64(len(gotBody)), up.Size)
	assert.Contains(t, up.PublicURL, srv.URL+"/storage/v1/object/public/attachments/"+up.Path)
}

func TestUploadImage_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(&config.Config{SupabaseURL: srv.URL, SupabaseServiceKey: "svc", SupabaseStorageBucket: "missing"}, logger.Nop())
	_, err := c.UploadImage(context.Background(), samplePNG(t), "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, err = c.UploadImage(context.Background(), []byte("not an image"), "u")
	assert.Error(t, err)

	assert.False(t, NewClient(&config.Config{}, logger.Nop()).Enabled())
}
