package ephem

// Kind identifies what a dataset file carries.
type Kind uint32

const (
	KindEphemeris   Kind = 1
	KindOrientation Kind = 2
	KindConstants   Kind = 3
	KindEulerParams Kind = 4
)

// Valid reports whether the kind is one of the known dataset kinds.
func (k Kind) Valid() bool {
	return k >= KindEphemeris && k <= KindEulerParams
}

func (k Kind) String() string {
	switch k {
	case KindEphemeris:
		return "ephemeris"
	case KindOrientation:
		return "orientation"
	case KindConstants:
		return "constants"
	case KindEulerParams:
		return "euler-params"
	default:
		return "unknown"
	}
}

// Metadata describes the producing tool and creation time of a file.
type Metadata struct {
	Producer string
	Created  uint64 // unix seconds
}

// Segment is one interpolation record: a body pair, a frame, an epoch
// span in TDB seconds past J2000, and the raw coefficient block.
type Segment struct {
	Name       string
	Target     int32
	Center     int32
	Frame      int32
	StartEpoch float64
	EndEpoch   float64
	Coeffs     []float64
}

// File is the in-memory form of one almanac dataset file.
type File struct {
	Version  uint32
	Kind     Kind
	Meta     Metadata
	Segments []Segment
}

// MinimalFile returns the smallest file that encodes and decodes
// successfully: a constants dataset with no segments.
func MinimalFile() *File {
	return &File{
		Version: VersionV1,
		Kind:    KindConstants,
	}
}
