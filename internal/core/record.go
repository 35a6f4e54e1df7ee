package core

import (
	"time"
)

// Record is a stored string. ID is the content hash, so values differing
// only in whitespace share an ID while remaining separate records.
type Record struct {
	ID         string     `json:"id"`
	Value      string     `json:"value"`
	Properties Properties `json:"properties"`
	CreatedAt  time.Time  `json:"created_at"`
}

func NewRecord(value string, now time.Time) (Record, error) {
	props, err := Analyze(value)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:         props.ContentHash,
		Value:      value,
		Properties: props,
		CreatedAt:  now.UTC(),
	}, nil
}
