//go:build gofuzz

package almanac

import "github.com/kk-code-lab/ephemlake/internal/fuzzenv"

// Fuzz is the entry point for go-fuzz style drivers. The load outcome
// is discarded; the only contract is that control returns normally for
// every input.
func Fuzz(data []byte) int {
	fuzzenv.EnsureInitialized()
	alm := &Almanac{}
	if _, err := alm.LoadBytes(data); err != nil {
		return 0
	}
	return 1
}
