package lightgbm

import "bytes"

// FeatureNameCapacity is the number of characters kept per feature name.
// Longer names are truncated and a TruncationWarning is raised.
const FeatureNameCapacity = 32

// scoreBuffer is a zeroed float64 region of exact size that the engine fills.
type scoreBuffer struct {
	data []float64
}

func newScoreBuffer(n int) scoreBuffer {
	return scoreBuffer{data: make([]float64, n)}
}

// owned hands the filled region to the caller. reported is the length the
// engine wrote, or -1 when the entry point does not report one.
func (s scoreBuffer) owned(reported int64) []float64 {
	if reported >= 0 && reported < int64(len(s.data)) {
		return s.data[:reported]
	}
	return s.data
}

// nameBuffer is a set of fixed-width byte slots, one per feature, each
// holding up to width-1 characters plus a NUL terminator.
type nameBuffer struct {
	slots [][]byte
	width int
}

func newNameBuffer(count, capacity int) nameBuffer {
	width := capacity + 1
	backing := make([]byte, count*width)
	slots := make([][]byte, count)
	for i := range slots {
		slots[i] = backing[i*width : (i+1)*width : (i+1)*width]
	}
	return nameBuffer{slots: slots, width: width}
}

// strings decodes the first n slots, each up to its first NUL.
func (b nameBuffer) strings(n int) []string {
	if n < 0 || n > len(b.slots) {
		n = len(b.slots)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		slot := b.slots[i]
		if end := bytes.IndexByte(slot, 0); end >= 0 {
			slot = slot[:end]
		}
		out[i] = string(slot)
	}
	return out
}
