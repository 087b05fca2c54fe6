package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(ctx, "lumina_lang", []byte("en")))
			require.NoError(t, store.Set(ctx, "lumina_lang", []byte("mm")))

			v, err := store.Get(ctx, "lumina_lang")
			require.NoError(t, err)
			assert.Equal(t, "mm", string(v))

			require.NoError(t, store.Delete(ctx, "lumina_lang"))
			_, err = store.Get(ctx, "lumina_lang")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, store.Delete(ctx, "never-set"))
		})
	}
}

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	shared := NewMemory()

	a := Namespace(shared, "device:a")
	b := Namespace(shared, "device:b:")

	require.NoError(t, a.Set(ctx, "lumina_history", []byte(`[1]`)))
	require.NoError(t, b.Set(ctx, "lumina_history", []byte(`[2]`)))

	va, err := a.Get(ctx, "lumina_history")
	require.NoError(t, err)
	vb, err := b.Get(ctx, "lumina_history")
	require.NoError(t, err)

	assert.Equal(t, "[1]", string(va))
	assert.Equal(t, "[2]", string(vb))

	raw, err := shared.Get(ctx, "device:a:lumina_history")
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(raw))

	assert.NoError(t, a.Close())
	_, err = b.Get(ctx, "lumina_history")
	assert.NoError(t, err, "closing a namespace must not close the shared store")
}
