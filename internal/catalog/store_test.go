package catalog

import (
	"context"
	"path/filepath"
	"testing"
)

func TestRecordAndListFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	entry := Entry{
		Path:          "/data/de440s.eplk",
		Kind:          "ephemeris",
		FormatVersion: 1,
		Producer:      "ephemlake",
		Segments:      14,
		Checksum:      "ab12",
	}
	if err := store.RecordFile(ctx, entry); err != nil {
		t.Fatalf("RecordFile: %v", err)
	}

	rows, err := store.ListFiles(ctx)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	got := rows[0].Entry
	if got != entry {
		t.Fatalf("entry mismatch: want %+v, got %+v", entry, got)
	}
	if rows[0].RecordedAt == "" {
		t.Fatalf("missing recorded_at")
	}
}

func TestRecordFileDeduplicatesByChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	entry := Entry{Path: "/a", Kind: "constants", FormatVersion: 1, Segments: 0, Checksum: "cc"}
	if err := store.RecordFile(ctx, entry); err != nil {
		t.Fatalf("RecordFile: %v", err)
	}
	entry.Path = "/b"
	if err := store.RecordFile(ctx, entry); err != nil {
		t.Fatalf("RecordFile again: %v", err)
	}

	rows, err := store.ListFiles(ctx)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected dedup to 1 row, got %d", len(rows))
	}
	if rows[0].Entry.Path != "/b" {
		t.Fatalf("expected refreshed path /b, got %q", rows[0].Entry.Path)
	}
}

func TestRecordFileRequiresChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.RecordFile(context.Background(), Entry{Path: "/x"}); err == nil {
		t.Fatalf("expected error for missing checksum")
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.RecordFile(context.Background(), Entry{Path: "/a", Kind: "ephemeris", FormatVersion: 1, Checksum: "dd"}); err != nil {
		t.Fatalf("RecordFile: %v", err)
	}
	if err := store.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = store.Close() }()
	rows, err := store.ListFiles(context.Background())
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row after reopen, got %d", len(rows))
	}
}
