// Package cache is a small disk cache of dataset-file summaries keyed by
// content digest, so repeated inspects of an unchanged file skip the
// full decode.
package cache

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"
)

// schemaVersion invalidates cached payloads when the payload layout
// changes.
const schemaVersion uint16 = 1

// Digest identifies file contents.
type Digest [32]byte

// Key hashes raw file bytes into a cache key.
func Key(data []byte) Digest {
	return blake3.Sum256(data)
}

// Payload is the cached summary of one dataset file.
type Payload struct {
	Schema        uint16
	Kind          string
	FormatVersion uint32
	Producer      string
	Segments      int
	StartEpoch    float64
	EndEpoch      float64
}

// DiskCache stores msgpack-encoded payloads under a cache directory.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a disk cache rooted at dir.
func Open(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, errors.New("cache: dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes a payload. The stored copy
// always carries the current schema version.
func (c *DiskCache) Put(key Digest, payload *Payload) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := *payload
	stored.Schema = schemaVersion

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&stored); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads a payload; a missing file or a stale schema is a miss, not
// an error.
func (c *DiskCache) Get(key Digest) (*Payload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() { _ = f.Close() }()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, nil // corrupt entry, treat as miss
	}
	if payload.Schema != schemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}
