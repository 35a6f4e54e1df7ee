// Package postgres implements storage.Store on PostgreSQL through GORM.
//
// Uniqueness is enforced by the primary key on the raw value; Create issues
// INSERT ... ON CONFLICT DO NOTHING and reports a conflict when no row was
// written, so concurrent creates of one value cannot both succeed.
package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/its-jojoo/stringscope/internal/adapter/storage"
	"github.com/its-jojoo/stringscope/internal/core"
)

// stringRow is the table layout. The frequency map is stored as JSON.
type stringRow struct {
	Value              string         `gorm:"primaryKey"`
	ContentHash        string         `gorm:"not null;index"`
	Length             int            `gorm:"not null;index"`
	IsPalindrome       bool           `gorm:"not null"`
	UniqueCharacters   int            `gorm:"not null"`
	WordCount          int            `gorm:"not null"`
	CharacterFrequency map[string]int `gorm:"serializer:json;type:jsonb;not null"`
	CreatedAt          time.Time      `gorm:"not null;index:,sort:desc"`
}

func (stringRow) TableName() string { return "string_records" }

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Open connects with a DSN such as
// "host=localhost user=postgres dbname=stringscope sslmode=disable".
func Open(dsn string) (*Store, error) {
	return OpenDialector(postgres.Open(dsn))
}

// OpenDialector builds a store on any GORM postgres dialector; tests hand in
// one wrapping a mocked *sql.DB.
func OpenDialector(d gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(d, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

// Migrate creates or updates the table and its indexes.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&stringRow{})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Now() time.Time { return s.now() }

func (s *Store) Create(ctx context.Context, rec core.Record) error {
	row := toRow(rec)
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.Conflict(rec.Value)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, value string) (core.Record, error) {
	var row stringRow
	err := s.db.WithContext(ctx).Where("value = ?", value).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Record{}, storage.NotFound(value)
		}
		return core.Record{}, err
	}
	return row.record(), nil
}

func (s *Store) Find(ctx context.Context, f core.Filter) ([]core.Record, error) {
	q, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}

	var rows []stringRow
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]core.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.record())
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, f core.Filter) (int, error) {
	q, err := s.filtered(ctx, f)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *Store) Delete(ctx context.Context, value string) error {
	res := s.db.WithContext(ctx).Where("value = ?", value).Delete(&stringRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.NotFound(value)
	}
	return nil
}

func (s *Store) filtered(ctx context.Context, f core.Filter) (*gorm.DB, error) {
	where, args, err := storage.SQLWhere(f, storage.SQLDialect{})
	if err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Model(&stringRow{})
	if where != "" {
		q = q.Where(where, args...)
	}
	return q, nil
}

func toRow(rec core.Record) stringRow {
	p := rec.Properties
	return stringRow{
		Value:              rec.Value,
		ContentHash:        rec.ID,
		Length:             p.Length,
		IsPalindrome:       p.IsPalindrome,
		UniqueCharacters:   p.UniqueCharacters,
		WordCount:          p.WordCount,
		CharacterFrequency: p.CharacterFrequency,
		CreatedAt:          rec.CreatedAt,
	}
}

func (r stringRow) record() core.Record {
	return core.Record{
		ID:    r.ContentHash,
		Value: r.Value,
		Properties: core.Properties{
			Length:             r.Length,
			IsPalindrome:       r.IsPalindrome,
			UniqueCharacters:   r.UniqueCharacters,
			WordCount:          r.WordCount,
			ContentHash:        r.ContentHash,
			CharacterFrequency: r.CharacterFrequency,
		},
		CreatedAt: r.CreatedAt.UTC(),
	}
}
