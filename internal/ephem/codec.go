package ephem

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"fortio.org/safecast"
	"github.com/zeebo/blake3"
)

// minSegmentLen is the encoded size of a segment with an empty name and no
// coefficients: name length, three body ids, two epochs, coefficient count.
const minSegmentLen = 4 + 4 + 4 + 4 + 8 + 8 + 4

// EncodeFile serializes a file: fixed header, metadata, segment records,
// trailing blake3 checksum over everything after the header.
func EncodeFile(f *File) ([]byte, error) {
	if f == nil {
		return nil, errors.New("ephem: nil file")
	}
	if f.Version != VersionV1 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, f.Version)
	}
	if !f.Kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadKind, uint32(f.Kind))
	}
	count, err := safecast.Conv[uint32](len(f.Segments))
	if err != nil {
		return nil, fmt.Errorf("ephem: too many segments: %d", len(f.Segments))
	}

	buf := make([]byte, 0, 256)
	buf = AppendHeader(buf, NewHeader(f.Kind, count))
	buf = appendString(buf, f.Meta.Producer)
	buf = appendU64(buf, f.Meta.Created)
	for i := range f.Segments {
		seg := &f.Segments[i]
		if err := validateSegment(seg); err != nil {
			return nil, err
		}
		coeffs, err := safecast.Conv[uint32](len(seg.Coeffs))
		if err != nil {
			return nil, fmt.Errorf("ephem: segment %q: too many coefficients", seg.Name)
		}
		buf = appendString(buf, seg.Name)
		buf = appendI32(buf, seg.Target)
		buf = appendI32(buf, seg.Center)
		buf = appendI32(buf, seg.Frame)
		buf = appendF64(buf, seg.StartEpoch)
		buf = appendF64(buf, seg.EndEpoch)
		buf = appendU32(buf, coeffs)
		for _, c := range seg.Coeffs {
			buf = appendF64(buf, c)
		}
	}
	checksum := bodyChecksum(buf)
	return append(buf, checksum[:]...), nil
}

// bodyChecksum hashes everything between the fixed header and the
// trailing checksum.
func bodyChecksum(body []byte) [32]byte {
	return blake3.Sum256(body[headerLen:])
}

// DecodeFile parses a serialized file. It is total over arbitrary byte
// slices: every input yields either a file or a typed error, allocations
// are bounded by len(data), and no read goes out of bounds.
func DecodeFile(data []byte) (*File, error) {
	if len(data) < headerLen+checksumLen {
		return nil, fmt.Errorf("%w: file needs at least %d bytes, have %d", ErrTruncated, headerLen+checksumLen, len(data))
	}
	body := data[:len(data)-checksumLen]
	sum := bodyChecksum(body)
	if !bytes.Equal(sum[:], data[len(body):]) {
		return nil, ErrChecksum
	}
	header, err := DecodeHeader(body)
	if err != nil {
		return nil, err
	}
	if err := ValidateHeader(header); err != nil {
		return nil, err
	}

	c := &cursor{data: body, off: headerLen}
	producer, err := c.str()
	if err != nil {
		return nil, err
	}
	created, err := c.u64()
	if err != nil {
		return nil, err
	}

	// A claimed count larger than the bytes left cannot be satisfied;
	// reject it before sizing the slice off attacker-controlled input.
	if uint64(header.SegmentCount)*minSegmentLen > uint64(c.remaining()) {
		return nil, fmt.Errorf("%w: segment count %d exceeds remaining %d bytes", ErrTruncated, header.SegmentCount, c.remaining())
	}
	segments := make([]Segment, 0, header.SegmentCount)
	for i := uint32(0); i < header.SegmentCount; i++ {
		seg, err := decodeSegment(c)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	if !c.done() {
		return nil, fmt.Errorf("%w: %d bytes after last segment", ErrTrailing, c.remaining())
	}
	return &File{
		Version:  header.Version,
		Kind:     Kind(header.Kind),
		Meta:     Metadata{Producer: producer, Created: created},
		Segments: segments,
	}, nil
}

func decodeSegment(c *cursor) (Segment, error) {
	var seg Segment
	var err error
	if seg.Name, err = c.str(); err != nil {
		return Segment{}, err
	}
	if seg.Target, err = c.i32(); err != nil {
		return Segment{}, err
	}
	if seg.Center, err = c.i32(); err != nil {
		return Segment{}, err
	}
	if seg.Frame, err = c.i32(); err != nil {
		return Segment{}, err
	}
	if seg.StartEpoch, err = c.f64(); err != nil {
		return Segment{}, err
	}
	if seg.EndEpoch, err = c.f64(); err != nil {
		return Segment{}, err
	}
	coeffCount, err := c.u32()
	if err != nil {
		return Segment{}, err
	}
	if uint64(coeffCount)*8 > uint64(c.remaining()) {
		return Segment{}, fmt.Errorf("%w: coefficient count %d exceeds remaining %d bytes", ErrTruncated, coeffCount, c.remaining())
	}
	if coeffCount > 0 {
		seg.Coeffs = make([]float64, 0, coeffCount)
		for i := uint32(0); i < coeffCount; i++ {
			v, err := c.f64()
			if err != nil {
				return Segment{}, err
			}
			seg.Coeffs = append(seg.Coeffs, v)
		}
	}
	if err := validateSegment(&seg); err != nil {
		return Segment{}, err
	}
	return seg, nil
}

func validateSegment(seg *Segment) error {
	if math.IsNaN(seg.StartEpoch) || math.IsInf(seg.StartEpoch, 0) ||
		math.IsNaN(seg.EndEpoch) || math.IsInf(seg.EndEpoch, 0) {
		return fmt.Errorf("%w: non-finite epoch in %q", ErrBadSegment, seg.Name)
	}
	if seg.StartEpoch > seg.EndEpoch {
		return fmt.Errorf("%w: span start after end in %q", ErrBadSegment, seg.Name)
	}
	return nil
}
