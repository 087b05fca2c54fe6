package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, v *Verifier, sub string, exp time.Time) string {
	t.Helper()
	tok, err := v.Sign(Claims{
		Email: "a@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	require.NoError(t, err)
	return tok
}

func TestResolve(t *testing.T) {
	v := NewVerifier("secret")

	t.Run("bearer token yields a user", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer "+signed(t, v, "user-1", time.Now().Add(time.Hour)))
		o, err := v.Resolve(r, false)
		require.NoError(t, err)
		assert.Equal(t, Owner{Kind: OwnerUser, ID: "user-1", Email: "a@example.com"}, o)
		assert.Equal(t, "user:user-1", o.Key())
	})

	t.Run("expired or foreign tokens are rejected", func(t *testing.T) {
		for _, tok := range []string{
			signed(t, v, "user-1", time.Now().Add(-time.Minute)),
			signed(t, NewVerifier("other"), "user-1", time.Now().Add(time.Hour)),
			signed(t, v, "", time.Now().Add(time.Hour)),
			"garbage",
		} {
			r := httptest.NewRequest("GET", "/", nil)
			r.Header.Set("Authorization", "Bearer "+tok)
			_, err := v.Resolve(r, true)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		}
	})

	t.Run("anonymous device", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set(DeviceHeader, "tablet-7")
		o, err := v.Resolve(r, true)
		require.NoError(t, err)
		assert.Equal(t, "device:tablet-7", o.Key())
		assert.False(t, o.IsUser())

		r.Header.Set(DeviceHeader, "../../etc")
		o, err = v.Resolve(r, true)
		require.NoError(t, err)
		assert.Equal(t, DefaultDeviceID, o.ID)

		_, err = v.Resolve(r, false)
		assert.ErrorIs(t, err, ErrAnonymousBlocked)
	})

	t.Run("unconfigured verifier", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer x.y.z")
		_, err := NewVerifier("").Resolve(r, true)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}

func TestOwnerContext(t *testing.T) {
	_, ok := OwnerFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithOwner(context.Background(), Owner{Kind: OwnerDevice, ID: "local"})
	o, ok := OwnerFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "local", o.ID)
}
