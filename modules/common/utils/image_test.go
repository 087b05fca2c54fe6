package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestParseDataURI(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		src := InlineImage{MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff, 0x00}}
		got, err := ParseDataURI(src.DataURI())
		require.NoError(t, err)
		assert.Equal(t, src, got)
	})

	t.Run("missing mime falls back to sniffing", func(t *testing.T) {
		data := pngBytes(t, 2, 2)
		uri := InlineImage{Data: data}.DataURI()
		assert.Contains(t, uri, "data:image/png;base64,")

		got, err := ParseDataURI("data:;base64," + uri[len("data:image/png;base64,"):])
		require.NoError(t, err)
		assert.Equal(t, "image/png", got.MIMEType)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, in := range []string{"", "hello", "data:image/png;base64", "data:image/png,abc", "data:image/png;base64,***"} {
			_, err := ParseDataURI(in)
			assert.Error(t, err, in)
		}
	})
}

func TestFitWithin(t *testing.T) {
	small := InlineImage{MIMEType: "image/png", Data: pngBytes(t, 16, 8)}

	t.Run("small images pass through byte-identical", func(t *testing.T) {
		got, err := FitWithin(small, 32)
		require.NoError(t, err)
		assert.Equal(t, small, got)
	})

	t.Run("disabled limit", func(t *testing.T) {
		got, err := FitWithin(small, 0)
		require.NoError(t, err)
		assert.Equal(t, small, got)
	})

	t.Run("large images are downsized keeping the ratio", func(t *testing.T) {
		got, err := FitWithin(small, 4)
		require.NoError(t, err)
		assert.Equal(t, "image/png", got.MIMEType)

		cfg, _, err := image.DecodeConfig(bytes.NewReader(got.Data))
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Width)
		assert.Equal(t, 2, cfg.Height)
	})

	t.Run("undecodable data is forwarded", func(t *testing.T) {
		raw := InlineImage{MIMEType: "image/heic", Data: []byte("not an image")}
		got, err := FitWithin(raw, 4)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})
}

func TestReencode(t *testing.T) {
	data := pngBytes(t, 4, 4)

	out, err := Reencode(data, "image/jpeg")
	require.NoError(t, err)
	_, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	_, err = Reencode(data, "image/bmp")
	assert.Error(t, err)
}
