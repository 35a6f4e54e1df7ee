package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/its-jojoo/stringscope/internal/adapter/storage/memory"
	"github.com/its-jojoo/stringscope/internal/core"
	"github.com/its-jojoo/stringscope/internal/errors"
)

func TestCreate_ComputesProperties(t *testing.T) {
	svc := New(memory.New(), Config{})

	rec, err := svc.Create(context.Background(), "Race car")
	require.NoError(t, err)

	assert.Equal(t, "Race car", rec.Value)
	assert.Equal(t, core.ContentHash("Race car"), rec.ID)
	assert.Equal(t, rec.ID, rec.Properties.ContentHash)
	assert.True(t, rec.Properties.IsPalindrome)
	assert.Equal(t, 7, rec.Properties.Length)
	assert.Equal(t, 2, rec.Properties.WordCount)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestCreate_RejectsEmpty(t *testing.T) {
	svc := New(memory.New(), Config{})

	_, err := svc.Create(context.Background(), "")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput), "%v", err)
}

func TestCreate_AcceptsWhitespaceOnly(t *testing.T) {
	svc := New(memory.New(), Config{})

	rec, err := svc.Create(context.Background(), " \t\n")
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Properties.Length)
	assert.Equal(t, 0, rec.Properties.WordCount)
}

func TestCreate_DuplicateConflictKeepsFirst(t *testing.T) {
	st := memory.New()
	svc := New(st, Config{})
	ctx := context.Background()

	first, err := svc.Create(ctx, "hello")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))

	got, err := svc.Get(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestCreate_MaxValueLen(t *testing.T) {
	svc := New(memory.New(), Config{MaxValueLen: 4})

	_, err := svc.Create(context.Background(), strings.Repeat("a", 5))
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = svc.Create(context.Background(), "aaaa")
	assert.NoError(t, err)
}

func TestGetDelete_NotFound(t *testing.T) {
	svc := New(memory.New(), Config{})
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Equal(t, "string does not exist in the system", err.Error())

	err = svc.Delete(ctx, "missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = svc.Create(ctx, "present")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "present"))
	_, err = svc.Get(ctx, "present")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
