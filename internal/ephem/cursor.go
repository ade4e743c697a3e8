package ephem

import (
	"encoding/binary"
	"fmt"
	"math"

	"fortio.org/safecast"
)

func floatBits(v float64) uint64 {
	return math.Float64bits(v)
}

// cursor walks a byte slice with bounds-checked reads. Every read either
// advances the offset or fails with ErrTruncated; nothing ever reads past
// the end of data.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) remaining() int {
	return len(c.data) - c.off
}

func (c *cursor) done() bool {
	return c.off == len(c.data)
}

func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, c.off, c.remaining())
	}
	out := c.data[c.off : c.off+n]
	c.off += n
	return out, nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) u64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	return int32(v), err
}

func (c *cursor) f64() (float64, error) {
	v, err := c.u64()
	return math.Float64frombits(v), err
}

func (c *cursor) str() (string, error) {
	raw, err := c.u32()
	if err != nil {
		return "", err
	}
	n, err := safecast.Conv[int](raw)
	if err != nil {
		return "", fmt.Errorf("%w: string length %d", ErrTruncated, raw)
	}
	b, err := c.take(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
