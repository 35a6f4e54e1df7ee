// Package surrealdb implements storage.Store on SurrealDB.
//
// Each record lives at strings:⟨raw value⟩, so CREATE on an existing value
// fails inside the database and uniqueness needs no separate index.
package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	surreal "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/its-jojoo/stringscope/internal/adapter/storage"
	"github.com/its-jojoo/stringscope/internal/core"
	"github.com/its-jojoo/stringscope/internal/errors"
)

const table = "strings"

type Config struct {
	URL       string // ws://localhost:8000/rpc
	Namespace string
	Database  string
	Username  string
	Password  string
}

type Store struct {
	db  *surreal.DB
	now func() time.Time
}

// stringDoc is the stored document shape.
type stringDoc struct {
	ID                 *models.RecordID      `json:"id,omitempty"`
	Value              string                `json:"value"`
	ContentHash        string                `json:"content_hash"`
	Length             int                   `json:"length"`
	IsPalindrome       bool                  `json:"is_palindrome"`
	UniqueCharacters   int                   `json:"unique_characters"`
	WordCount          int                   `json:"word_count"`
	CharacterFrequency map[string]int        `json:"character_frequency"`
	CreatedAt          models.CustomDateTime `json:"created_at"`
}

func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := surreal.FromEndpointURLString(ctx, cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "connect to surrealdb")
	}

	if cfg.Username != "" && cfg.Password != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": cfg.Username,
			"pass": cfg.Password,
		}); err != nil {
			_ = db.Close(ctx)
			return nil, errors.Wrap(err, "authenticate")
		}
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = db.Close(ctx)
		return nil, errors.Wrap(err, "use namespace/database")
	}

	return &Store{db: db, now: time.Now}, nil
}

// Migrate defines the table and the created_at index used for ordering.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := surreal.Query[any](ctx, s.db, `
DEFINE TABLE IF NOT EXISTS strings SCHEMALESS;
DEFINE INDEX IF NOT EXISTS strings_created_at ON strings FIELDS created_at;
`, nil)
	return err
}

func (s *Store) Close() error   { return s.db.Close(context.Background()) }
func (s *Store) Now() time.Time { return s.now() }

func (s *Store) Create(ctx context.Context, rec core.Record) error {
	p := rec.Properties
	doc := stringDoc{
		Value:              rec.Value,
		ContentHash:        rec.ID,
		Length:             p.Length,
		IsPalindrome:       p.IsPalindrome,
		UniqueCharacters:   p.UniqueCharacters,
		WordCount:          p.WordCount,
		CharacterFrequency: p.CharacterFrequency,
		CreatedAt:          models.CustomDateTime{Time: rec.CreatedAt},
	}

	res, err := surreal.Query[[]stringDoc](ctx, s.db,
		`CREATE type::thing($tb, $value) CONTENT $content`,
		map[string]any{"tb": table, "value": rec.Value, "content": doc})
	if err == nil {
		err = firstError(res)
	}
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return storage.Conflict(rec.Value)
		}
		return errors.Wrap(err, "create record")
	}
	return nil
}

func (s *Store) Get(ctx context.Context, value string) (core.Record, error) {
	docs, err := s.query(ctx, `SELECT * FROM type::thing($tb, $value)`,
		map[string]any{"tb": table, "value": value})
	if err != nil {
		return core.Record{}, err
	}
	if len(docs) == 0 {
		return core.Record{}, storage.NotFound(value)
	}
	return docs[0].record(), nil
}

func (s *Store) Find(ctx context.Context, f core.Filter) ([]core.Record, error) {
	where, vars, err := surrealWhere(f)
	if err != nil {
		return nil, err
	}

	q := "SELECT * FROM type::table($tb)"
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY created_at DESC"
	vars["tb"] = table

	docs, err := s.query(ctx, q, vars)
	if err != nil {
		return nil, err
	}
	out := make([]core.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.record())
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, f core.Filter) (int, error) {
	where, vars, err := surrealWhere(f)
	if err != nil {
		return 0, err
	}

	q := "SELECT count() AS n FROM type::table($tb)"
	if where != "" {
		q += " WHERE " + where
	}
	q += " GROUP ALL"
	vars["tb"] = table

	type countRow struct {
		N int `json:"n"`
	}
	res, err := surreal.Query[[]countRow](ctx, s.db, q, vars)
	if err == nil {
		err = firstError(res)
	}
	if err != nil {
		return 0, errors.Wrap(err, "count records")
	}
	if res == nil || len(*res) == 0 || len((*res)[0].Result) == 0 {
		return 0, nil
	}
	return (*res)[0].Result[0].N, nil
}

func (s *Store) Delete(ctx context.Context, value string) error {
	docs, err := s.query(ctx, `DELETE type::thing($tb, $value) RETURN BEFORE`,
		map[string]any{"tb": table, "value": value})
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return storage.NotFound(value)
	}
	return nil
}

func (s *Store) query(ctx context.Context, q string, vars map[string]any) ([]stringDoc, error) {
	res, err := surreal.Query[[]stringDoc](ctx, s.db, q, vars)
	if err == nil {
		err = firstError(res)
	}
	if err != nil {
		return nil, errors.Wrap(err, "query records")
	}
	if res == nil || len(*res) == 0 {
		return nil, nil
	}
	return (*res)[0].Result, nil
}

func firstError[T any](res *[]surreal.QueryResult[T]) error {
	if res == nil {
		return nil
	}
	for _, r := range *res {
		if r.Status != "OK" {
			return errors.Newf("surrealdb: %s: %v", r.Status, r.Result)
		}
	}
	return nil
}

func (d stringDoc) record() core.Record {
	return core.Record{
		ID:    d.ContentHash,
		Value: d.Value,
		Properties: core.Properties{
			Length:             d.Length,
			IsPalindrome:       d.IsPalindrome,
			UniqueCharacters:   d.UniqueCharacters,
			WordCount:          d.WordCount,
			ContentHash:        d.ContentHash,
			CharacterFrequency: d.CharacterFrequency,
		},
		CreatedAt: d.CreatedAt.Time.UTC(),
	}
}

// surrealWhere renders f as a SurrealQL condition with $pN parameters.
func surrealWhere(f core.Filter) (string, map[string]any, error) {
	parts := make([]string, 0, len(f))
	vars := make(map[string]any, len(f)+1)

	for i, c := range f {
		name := fmt.Sprintf("p%d", i)

		switch {
		case c.Field == core.FieldValue && c.Op == core.OpContains:
			parts = append(parts, "string::contains(string::lowercase(value), $"+name+")")
			vars[name] = strings.ToLower(c.Text())

		case c.Field == core.FieldValue && c.Op == core.OpEq:
			parts = append(parts, "value = $"+name)
			vars[name] = c.Text()

		case c.Field == core.FieldIsPalindrome && c.Op == core.OpEq:
			parts = append(parts, "is_palindrome = $"+name)
			vars[name] = c.Bool()

		case c.Field == core.FieldLength || c.Field == core.FieldWordCount:
			cmp, ok := comparators[c.Op]
			if !ok {
				return "", nil, errors.Newf("unsupported operator %q for %q", c.Op, c.Field)
			}
			parts = append(parts, string(c.Field)+" "+cmp+" $"+name)
			vars[name] = c.Int()

		default:
			return "", nil, errors.Newf("unsupported filter %q %q", c.Field, c.Op)
		}
	}
	return strings.Join(parts, " AND "), vars, nil
}

var comparators = map[core.Op]string{
	core.OpEq:  "=",
	core.OpGt:  ">",
	core.OpGte: ">=",
	core.OpLt:  "<",
	core.OpLte: "<=",
}
