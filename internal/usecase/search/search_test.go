package search

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/its-jojoo/stringscope/internal/adapter/storage/memory"
	"github.com/its-jojoo/stringscope/internal/core"
	"github.com/its-jojoo/stringscope/internal/errors"
)

type fakeStore struct {
	items []core.Record
	err   error
}

func (f fakeStore) Find(ctx context.Context, flt core.Filter) ([]core.Record, error) {
	_ = ctx
	if f.err != nil {
		return nil, f.err
	}
	var out []core.Record
	for _, it := range f.items {
		if flt.Match(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f fakeStore) Count(ctx context.Context, flt core.Filter) (int, error) {
	out, err := f.Find(ctx, flt)
	return len(out), err
}

func seeded(t *testing.T, values ...string) *memory.Store {
	t.Helper()
	st := memory.New()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		rec, err := core.NewRecord(v, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.NoError(t, st.Create(context.Background(), rec))
	}
	return st
}

func TestParseParams(t *testing.T) {
	p, err := ParseParams(url.Values{
		"is_palindrome":      {"true"},
		"min_length":         {"5"},
		"max_length":         {"3"},
		"word_count":         {"0"},
		"contains_character": {"é"},
	})
	require.NoError(t, err)
	assert.True(t, *p.IsPalindrome)
	assert.Equal(t, 5, *p.MinLength)
	assert.Equal(t, 3, *p.MaxLength)
	assert.Equal(t, 0, *p.WordCount)
	assert.Equal(t, "é", *p.ContainsCharacter)

	empty, err := ParseParams(url.Values{})
	require.NoError(t, err)
	assert.Empty(t, empty.Filter())
}

func TestParseParamsInvalid(t *testing.T) {
	for _, q := range []url.Values{
		{"is_palindrome": {"yes"}},
		{"min_length": {"-1"}},
		{"max_length": {"abc"}},
		{"word_count": {"1.5"}},
		{"contains_character": {"ab"}},
		{"contains_character": {""}},
	} {
		_, err := ParseParams(q)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput), "params %v: %v", q, err)
	}
}

func TestList_RangeIsConjunction(t *testing.T) {
	svc := New(seeded(t, "abc", "abcdef", "a longer string"))

	lo, hi := 5, 3
	res, err := svc.List(context.Background(), Params{MinLength: &lo, MaxLength: &hi})
	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.NotNil(t, res.Data)
	assert.Equal(t, 0, res.Count)
}

func TestList_NewestFirst(t *testing.T) {
	svc := New(seeded(t, "level", "hello", "kayak"))

	yes := true
	res, err := svc.List(context.Background(), Params{IsPalindrome: &yes})
	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "kayak", res.Data[0].Value)
	assert.Equal(t, "level", res.Data[1].Value)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, &yes, res.FiltersApplied.IsPalindrome)
}

func TestInterpret(t *testing.T) {
	svc := New(seeded(t, "racecar", "abba", "banana", "a man a plan"))

	res, err := svc.Interpret(context.Background(), "find palindromes longer than 5 containing the letter a")
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "racecar", res.Data[0].Value)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "find palindromes longer than 5 containing the letter a", res.InterpretedQuery.Original)
	assert.Len(t, res.InterpretedQuery.ParsedFilters, 3)
}

func TestInterpretErrors(t *testing.T) {
	svc := New(fakeStore{})

	_, err := svc.Interpret(context.Background(), "   ")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = svc.Interpret(context.Background(), "hello")
	assert.True(t, errors.Is(err, errors.ErrUninterpretable))

	boom := errors.New("boom")
	_, err = New(fakeStore{err: boom}).Interpret(context.Background(), "palindromes")
	assert.True(t, errors.Is(err, boom))
}
