package errs

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Run("precondition", func(t *testing.T) {
		err := Precondition("edit", "Source image required.")
		assert.Equal(t, KindPrecondition, KindOf(err))
		assert.Equal(t, "Source image required.", err.Error())
	})

	t.Run("boundary keeps the provider message verbatim", func(t *testing.T) {
		err := Boundary("synthesize", errors.New("quota exceeded"))
		assert.Equal(t, KindBoundary, KindOf(err))
		assert.Equal(t, "quota exceeded", err.Error())
	})

	t.Run("wrapped further up the stack", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", Persistence("history.insert", errors.New("conn refused")))
		assert.True(t, Is(err, KindPersistence))
		assert.False(t, Is(err, KindBoundary))
	})

	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, Boundary("x", nil))
		assert.NoError(t, Persistence("x", nil))
		assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	})
}
