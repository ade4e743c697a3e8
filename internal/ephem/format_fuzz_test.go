package ephem

import "testing"

func FuzzDecodeHeader(f *testing.F) {
	f.Add([]byte("seed"))
	f.Fuzz(func(t *testing.T, data []byte) {
		header, err := DecodeHeader(data)
		if err != nil {
			return
		}
		_ = ValidateHeader(header)
	})
}
