package gemini

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
)

type stubGenerator struct{ key string }

func (s *stubGenerator) GenerateContent(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return &genai.GenerateContentResponse{}, nil
}

func TestFactory_CachesPerKey(t *testing.T) {
	created := 0
	f := NewFactoryWith(func(_ context.Context, key string) (ContentGenerator, error) {
		created++
		return &stubGenerator{key: key}, nil
	}, logger.Nop())

	a1, err := f.For(context.Background(), "key-a")
	require.NoError(t, err)
	a2, err := f.For(context.Background(), "key-a")
	require.NoError(t, err)
	b, err := f.For(context.Background(), "key-b")
	require.NoError(t, err)

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)
	assert.Equal(t, 2, created)

	f.Forget("key-a")
	_, err = f.For(context.Background(), "key-a")
	require.NoError(t, err)
	assert.Equal(t, 3, created)
}

func TestFactory_Errors(t *testing.T) {
	f := NewFactoryWith(func(context.Context, string) (ContentGenerator, error) {
		return nil, errors.New("boom")
	}, logger.Nop())

	_, err := f.For(context.Background(), "")
	assert.Error(t, err)

	_, err = f.For(context.Background(), "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
