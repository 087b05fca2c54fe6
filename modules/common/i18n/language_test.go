package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Language
		ok   bool
	}{
		{"en", English, true},
		{"mm", Myanmar, true},
		{"MM", Myanmar, true},
		{"my", Myanmar, true},
		{"my-MM", Myanmar, true},
		{"en-US", English, true},
		{"fr", English, true},
		{"", "", false},
		{"!!", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, Myanmar, Negotiate("my-MM,my;q=0.9,en;q=0.5"))
	assert.Equal(t, English, Negotiate("en-GB,en;q=0.9"))
	assert.Equal(t, English, Negotiate(""))
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	lang, ok := FromRequest(r)
	assert.False(t, ok)
	assert.Equal(t, English, lang)

	r.Header.Set("Accept-Language", "my")
	lang, ok = FromRequest(r)
	assert.True(t, ok)
	assert.Equal(t, Myanmar, lang)

	r.Header.Set("X-Locale", "en")
	lang, _ = FromRequest(r)
	assert.Equal(t, English, lang)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Myanmar", Myanmar.DisplayName())
	assert.Equal(t, "English", English.DisplayName())
	assert.Equal(t, English, Language("").OrDefault())
}
