package ephem

import (
	"encoding/binary"
	"fmt"
)

const (
	fileMagic = 0x4b4c5045 // "EPLK"

	// VersionV1 is the only format version currently written or accepted.
	VersionV1 = 1

	headerLen   = 4 + 4 + 4 + 4
	checksumLen = 32
)

// Header is the fixed 16-byte prefix of every dataset file.
type Header struct {
	Magic        uint32
	Version      uint32
	Kind         uint32
	SegmentCount uint32
}

// NewHeader returns a header initialized with the magic and version.
func NewHeader(kind Kind, segmentCount uint32) Header {
	return Header{
		Magic:        fileMagic,
		Version:      VersionV1,
		Kind:         uint32(kind),
		SegmentCount: segmentCount,
	}
}

// AppendHeader appends the encoded header to buf.
func AppendHeader(buf []byte, h Header) []byte {
	buf = appendU32(buf, h.Magic)
	buf = appendU32(buf, h.Version)
	buf = appendU32(buf, h.Kind)
	return appendU32(buf, h.SegmentCount)
}

// DecodeHeader parses the fixed header from the start of data.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < headerLen {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, headerLen, len(data))
	}
	return Header{
		Magic:        binary.LittleEndian.Uint32(data[0:4]),
		Version:      binary.LittleEndian.Uint32(data[4:8]),
		Kind:         binary.LittleEndian.Uint32(data[8:12]),
		SegmentCount: binary.LittleEndian.Uint32(data[12:16]),
	}, nil
}

// ValidateHeader checks magic, version and kind.
func ValidateHeader(h Header) error {
	if h.Magic != fileMagic {
		return ErrBadMagic
	}
	if h.Version != VersionV1 {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if !Kind(h.Kind).Valid() {
		return fmt.Errorf("%w: %d", ErrBadKind, h.Kind)
	}
	return nil
}

func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendU64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendI32(buf []byte, v int32) []byte {
	return appendU32(buf, uint32(v))
}

func appendF64(buf []byte, v float64) []byte {
	return appendU64(buf, floatBits(v))
}

func appendString(buf []byte, v string) []byte {
	if len(v) > int(^uint32(0)) {
		panic("ephem: string too large")
	}
	buf = appendU32(buf, uint32(len(v)))
	return append(buf, v...)
}
