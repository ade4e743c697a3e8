package cache

import (
	"os"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	key := Key([]byte("file contents"))
	want := &Payload{
		Kind:          "ephemeris",
		FormatVersion: 1,
		Producer:      "test",
		Segments:      3,
		StartEpoch:    -10,
		EndEpoch:      10,
	}
	if err := c.Put(key, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected hit")
	}
	if got.Kind != want.Kind || got.Segments != want.Segments || got.StartEpoch != want.StartEpoch {
		t.Fatalf("payload mismatch: %+v", got)
	}
	if got.Schema != schemaVersion {
		t.Fatalf("expected schema %d, got %d", schemaVersion, got.Schema)
	}
}

func TestGetMiss(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok, err := c.Get(Key([]byte("absent"))); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
}

func TestGetCorruptEntryIsMiss(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	key := Key([]byte("stale"))
	if err := c.Put(key, &Payload{Kind: "constants"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// Corrupt the stored entry; decode failures must read as misses.
	if err := os.WriteFile(c.pathFor(key), []byte{0xc1}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("expected miss for corrupt entry, got ok=%v err=%v", ok, err)
	}
}

func TestDropAll(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	key := Key([]byte("drop"))
	if err := c.Put(key, &Payload{Kind: "ephemeris"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok, _ := c.Get(key); ok {
		t.Fatalf("expected miss after DropAll")
	}
}

func TestKeyIsStable(t *testing.T) {
	if Key([]byte("a")) != Key([]byte("a")) {
		t.Fatalf("digest not deterministic")
	}
	if Key([]byte("a")) == Key([]byte("b")) {
		t.Fatalf("digest collision on trivial inputs")
	}
}
