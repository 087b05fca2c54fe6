package sizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		token  string
		ratio  string
		suffix string
	}{
		{"", "", ""},
		{"original", "", ""},
		{"1:1", "1:1", ""},
		{"16:9", "16:9", ""},
		{"9:16", "9:16", ""},
		{"4:3", "4:3", ""},
		{"3:4", "3:4", ""},
		{"1080x1080", "1:1", ", exact resolution/aspect ratio: 1080×1080"},
		{"1080x1350", "3:4", ", exact resolution/aspect ratio: 1080×1350"},
		{"1080x1920", "9:16", ", exact resolution/aspect ratio: 1080×1920"},
		{"1280x720", "16:9", ", exact resolution/aspect ratio: 1280×720"},
		{"400x400", "1:1", ", exact resolution/aspect ratio: 400×400"},
		{"4:5", "3:4", ", exact resolution/aspect ratio: 4:5"},
		{"3:1", "16:9", ", exact resolution/aspect ratio: 3:1"},
		{"4:1", "16:9", ", exact resolution/aspect ratio: 4:1"},
		{"21:9", "16:9", ", exact resolution/aspect ratio: 21:9"},
		{"3:2", "16:9", ", exact resolution/aspect ratio: 3:2"},
		{"banner", "1:1", ", exact resolution/aspect ratio: banner"},
		{"2x3x4", "1:1", ", exact resolution/aspect ratio: 2×3x4"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got := Resolve(tt.token)
			assert.Equal(t, tt.ratio, got.AspectRatio)
			assert.Equal(t, tt.suffix, got.Suffix)
		})
	}
}

func TestResolveAlwaysNative(t *testing.T) {
	tokens := []string{"1080x1080", "1080x1350", "1080x1920", "1280x720", "400x400", "4:5", "3:1", "4:1", "21:9", "3:2", "unknown", "?", "1:1"}
	for _, token := range tokens {
		assert.True(t, IsNative(Resolve(token).AspectRatio), token)
	}
}

func TestRatioOrSquare(t *testing.T) {
	assert.Equal(t, "1:1", Resolve("original").RatioOrSquare())
	assert.False(t, Resolve("original").Set())
	assert.Equal(t, "9:16", Resolve("1080x1920").RatioOrSquare())
}

func TestOptionsResolve(t *testing.T) {
	for _, g := range Options() {
		for _, o := range g.Options {
			assert.True(t, Resolve(o.Value).Set(), o.Value)
		}
	}
}
