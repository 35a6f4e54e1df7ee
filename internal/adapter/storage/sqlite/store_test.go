package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/its-jojoo/stringscope/internal/adapter/storage"
	"github.com/its-jojoo/stringscope/internal/core"
	"github.com/its-jojoo/stringscope/internal/errors"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSQLiteStore_CreateGetCount(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()

	rec, err := core.NewRecord("hello world", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}

	n, err := st.Count(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected count=1, got %d", n)
	}

	got, err := st.Get(ctx, "hello world")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != rec.ID || got.Properties.ContentHash != rec.ID {
		t.Fatalf("unexpected id: %q", got.ID)
	}
	if got.Properties.CharacterFrequency["o"] != 2 {
		t.Fatalf("unexpected frequency map: %v", got.Properties.CharacterFrequency)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt.Truncate(time.Millisecond)) {
		t.Fatalf("unexpected created_at %v", got.CreatedAt)
	}
}

func TestSQLiteStore_DuplicateIsConflict(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()

	rec, _ := core.NewRecord("level", time.Now())
	if err := st.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := st.Create(ctx, rec); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSQLiteStore_FindFilters(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, v := range []string{"level", "Kayak", "banana split", "100% pure"} {
		rec, err := core.NewRecord(v, base.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatal(err)
		}
		if err := st.Create(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	got, err := st.Find(ctx, core.Filter{core.BoolClause(core.FieldIsPalindrome, true)})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Value != "Kayak" || got[1].Value != "level" {
		t.Fatalf("unexpected palindromes: %+v", got)
	}

	got, err = st.Find(ctx, core.Filter{core.ContainsClause(core.FieldValue, "K")})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Value != "Kayak" {
		t.Fatalf("unexpected contains result: %+v", got)
	}

	got, err = st.Find(ctx, core.Filter{core.ContainsClause(core.FieldValue, "%")})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Value != "100% pure" {
		t.Fatalf("expected literal percent match, got %+v", got)
	}

	n, err := st.Count(ctx, core.Filter{
		core.IntClause(core.FieldLength, core.OpGte, 5),
		core.IntClause(core.FieldLength, core.OpLte, 3),
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected empty range, got %d", n)
	}

	got, err = st.Find(ctx, core.Filter{core.IntClause(core.FieldWordCount, core.OpEq, 2)})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Value != "100% pure" {
		t.Fatalf("unexpected word_count result: %+v", got)
	}

	rec, err := core.NewRecord("Élan", base.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}
	for _, c := range []string{"é", "É"} {
		got, err = st.Find(ctx, core.Filter{core.ContainsClause(core.FieldValue, c)})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Value != "Élan" {
			t.Fatalf("contains %q: expected Élan, got %+v", c, got)
		}
	}
}

func TestSQLiteStore_SameInstantNewestFirst(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, v := range []string{"first", "second", "third"} {
		rec, err := core.NewRecord(v, at)
		if err != nil {
			t.Fatal(err)
		}
		if err := st.Create(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	got, err := st.Find(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].Value != "third" || got[2].Value != "first" {
		t.Fatalf("expected insertion order reversed, got %+v", got)
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	st := openTemp(t)
	ctx := context.Background()

	rec, _ := core.NewRecord("gone soon", time.Now())
	if err := st.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(ctx, "gone soon"); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(ctx, "gone soon"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := st.Get(ctx, "gone soon"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
