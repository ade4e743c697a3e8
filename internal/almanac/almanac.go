// Package almanac holds the in-memory container that binary ephemeris
// dataset files load into. An Almanac is layered: loading bytes never
// mutates the receiver, it returns a new almanac with the decoded file
// added, so a base almanac can be shared and extended independently.
package almanac

import (
	"bytes"

	"github.com/kk-code-lab/ephemlake/internal/ephem"
)

// Almanac groups loaded dataset files by kind. The zero value is the
// valid empty almanac; constructing it cannot fail and reads no
// external state.
type Almanac struct {
	Ephemerides  []*ephem.File
	Orientations []*ephem.File
	Constants    []*ephem.File
	EulerParams  []*ephem.File
}

// LoadBytes decodes one serialized dataset file and returns a new
// almanac with it layered in. The input is copied before parsing, so
// the caller's slice is never retained or aliased. Every input yields
// either a new almanac or a typed decoding error; LoadBytes never
// panics for any byte sequence.
func (a *Almanac) LoadBytes(data []byte) (*Almanac, error) {
	file, err := ephem.DecodeFile(bytes.Clone(data))
	if err != nil {
		return nil, err
	}
	out := a.clone()
	switch file.Kind {
	case ephem.KindEphemeris:
		out.Ephemerides = append(out.Ephemerides, file)
	case ephem.KindOrientation:
		out.Orientations = append(out.Orientations, file)
	case ephem.KindConstants:
		out.Constants = append(out.Constants, file)
	case ephem.KindEulerParams:
		out.EulerParams = append(out.EulerParams, file)
	}
	return out, nil
}

func (a *Almanac) clone() *Almanac {
	out := &Almanac{}
	out.Ephemerides = append(out.Ephemerides, a.Ephemerides...)
	out.Orientations = append(out.Orientations, a.Orientations...)
	out.Constants = append(out.Constants, a.Constants...)
	out.EulerParams = append(out.EulerParams, a.EulerParams...)
	return out
}

// Summary is a flat description of an almanac's contents.
type Summary struct {
	Files        int
	Ephemerides  int
	Orientations int
	Constants    int
	EulerParams  int
	Segments     int
	StartEpoch   float64
	EndEpoch     float64
}

// Describe reports file and segment counts plus the covered epoch span.
// The span is the min start / max end over all segments; both are zero
// when the almanac holds no segments.
func (a *Almanac) Describe() Summary {
	s := Summary{
		Ephemerides:  len(a.Ephemerides),
		Orientations: len(a.Orientations),
		Constants:    len(a.Constants),
		EulerParams:  len(a.EulerParams),
	}
	s.Files = s.Ephemerides + s.Orientations + s.Constants + s.EulerParams
	first := true
	for _, group := range [][]*ephem.File{a.Ephemerides, a.Orientations, a.Constants, a.EulerParams} {
		for _, file := range group {
			s.Segments += len(file.Segments)
			for i := range file.Segments {
				seg := &file.Segments[i]
				if first || seg.StartEpoch < s.StartEpoch {
					s.StartEpoch = seg.StartEpoch
				}
				if first || seg.EndEpoch > s.EndEpoch {
					s.EndEpoch = seg.EndEpoch
				}
				first = false
			}
		}
	}
	return s
}
