package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"modernc.org/sqlite"

	"github.com/its-jojoo/stringscope/internal/adapter/storage"
	"github.com/its-jojoo/stringscope/internal/core"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// SQLite's builtin lower() folds ASCII only.
const lowerFunc = "unicode_lower"

var dialect = storage.SQLDialect{
	BoolArg: func(b bool) any { return boolToInt(b) },
	Lower:   lowerFunc,
}

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(lowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error   { return s.db.Close() }
func (s *Store) Now() time.Time { return s.now() }

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS strings (
  value               TEXT PRIMARY KEY,
  id                  TEXT NOT NULL,
  length              INTEGER NOT NULL,
  is_palindrome       INTEGER NOT NULL,
  unique_characters   INTEGER NOT NULL,
  word_count          INTEGER NOT NULL,
  character_frequency TEXT NOT NULL,
  created_at          INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_strings_created_at ON strings(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_strings_id         ON strings(id);
CREATE INDEX IF NOT EXISTS idx_strings_length     ON strings(length);
`)
	return err
}

const selectColumns = `
SELECT value, id, length, is_palindrome, unique_characters, word_count, character_frequency, created_at
FROM strings`

func (s *Store) Create(ctx context.Context, rec core.Record) error {
	freq, err := json.Marshal(rec.Properties.CharacterFrequency)
	if err != nil {
		return err
	}

	p := rec.Properties
	res, err := s.db.ExecContext(ctx, `
INSERT INTO strings(value, id, length, is_palindrome, unique_characters, word_count, character_frequency, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(value) DO NOTHING
`, rec.Value, rec.ID, p.Length, boolToInt(p.IsPalindrome), p.UniqueCharacters, p.WordCount,
		string(freq), rec.CreatedAt.UnixMilli())
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.Conflict(rec.Value)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, value string) (core.Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE value = ?`, value)
	rec, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, storage.NotFound(value)
	}
	return rec, err
}

func (s *Store) Find(ctx context.Context, f core.Filter) ([]core.Record, error) {
	where, args, err := storage.SQLWhere(f, dialect)
	if err != nil {
		return nil, err
	}

	q := selectColumns
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY created_at DESC, rowid DESC"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]core.Record, 0)
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Count(ctx context.Context, f core.Filter) (int, error) {
	where, args, err := storage.SQLWhere(f, dialect)
	if err != nil {
		return 0, err
	}

	q := `SELECT COUNT(1) FROM strings`
	if where != "" {
		q += " WHERE " + where
	}
	row := s.db.QueryRowContext(ctx, q, args...)
	var n int
	return n, row.Scan(&n)
}

func (s *Store) Delete(ctx context.Context, value string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM strings WHERE value=?`, value)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.NotFound(value)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(sc scanner) (core.Record, error) {
	var rec core.Record
	var pal int
	var freq string
	var cAt int64

	p := &rec.Properties
	if err := sc.Scan(&rec.Value, &rec.ID, &p.Length, &pal, &p.UniqueCharacters, &p.WordCount, &freq, &cAt); err != nil {
		return core.Record{}, err
	}
	if err := json.Unmarshal([]byte(freq), &p.CharacterFrequency); err != nil {
		return core.Record{}, err
	}
	p.IsPalindrome = pal == 1
	p.ContentHash = rec.ID
	rec.CreatedAt = time.UnixMilli(cAt).UTC()
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
