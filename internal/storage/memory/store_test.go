package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/stockroom/internal/storage"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := NewStore("")

	_, err := s.Get(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, "t1"))
	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", got)

	require.NoError(t, s.Remove(ctx))
	_, err = s.Get(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
