package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/its-jojoo/stringscope/internal/config"
	"github.com/its-jojoo/stringscope/internal/core"
	"github.com/its-jojoo/stringscope/internal/errors"
)

func TestFormatFrequency(t *testing.T) {
	got := formatFrequency(map[string]int{"b": 1, "a": 3, "c": 2})
	if got != "a:3 b:1 c:2" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestWriteExport(t *testing.T) {
	rec, err := core.NewRecord("level", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}

	var buf bytes.Buffer
	if err := writeExport(&buf, []core.Record{rec}); err != nil {
		t.Fatalf("writeExport: %v", err)
	}

	var out []core.Record
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Value != "level" || !out[0].Properties.IsPalindrome {
		t.Fatalf("unexpected export %+v", out)
	}
}

func TestOpenStore(t *testing.T) {
	st, err := openStore(t.Context(), config.StorageConfig{Driver: config.DriverMemory})
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	_ = st.Close()

	st, err = openStore(t.Context(), config.StorageConfig{
		Driver: config.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: t.TempDir() + "/test.db"},
	})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	_ = st.Close()

	if _, err := openStore(t.Context(), config.StorageConfig{Driver: "mongo"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestTranslateCommandUninterpretable(t *testing.T) {
	err := translateCmd.RunE(translateCmd, []string{"hello"})
	if !errors.Is(err, errors.ErrUninterpretable) {
		t.Fatalf("expected uninterpretable error, got %v", err)
	}
}
