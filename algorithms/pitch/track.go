package pitch

import "math"

// Track is a per-frame fundamental frequency estimate over time. Frames
// where no stable periodicity was detected carry the unvoiced sentinel
// (NaN) and must never enter averaging.
type Track struct {
	Times       []float64 `json:"times"`       // Frame timestamps in seconds
	Frequencies []float64 `json:"frequencies"` // Hz, NaN where unvoiced
}

// Unvoiced is the sentinel for frames without a detectable pitch
func Unvoiced() float64 {
	return math.NaN()
}

// NumFrames returns the number of analysis frames
func (t *Track) NumFrames() int {
	return len(t.Frequencies)
}

// Voiced reports whether frame i carries a pitch estimate
func (t *Track) Voiced(i int) bool {
	return i >= 0 && i < len(t.Frequencies) && !math.IsNaN(t.Frequencies[i])
}

// NearestIndex returns the frame index whose timestamp is closest to ts.
// Frame times are uniformly spaced, so this is a direct computation rather
// than a search.
func (t *Track) NearestIndex(ts float64) int {
	if len(t.Times) == 0 {
		return -1
	}
	if len(t.Times) == 1 {
		return 0
	}

	step := t.Times[1] - t.Times[0]
	idx := int(math.Round((ts - t.Times[0]) / step))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(t.Times) {
		idx = len(t.Times) - 1
	}
	return idx
}

// FrequencyAt returns the pitch nearest to timestamp ts and whether that
// frame is voiced
func (t *Track) FrequencyAt(ts float64) (float64, bool) {
	idx := t.NearestIndex(ts)
	if idx < 0 {
		return Unvoiced(), false
	}
	f := t.Frequencies[idx]
	return f, !math.IsNaN(f)
}

// VoicedCount returns the number of voiced frames
func (t *Track) VoicedCount() int {
	count := 0
	for _, f := range t.Frequencies {
		if !math.IsNaN(f) {
			count++
		}
	}
	return count
}
