package transcode

import "time"

// CanonicalSampleRate is the sample rate every signal is brought to before
// feature extraction. Both recordings of a comparison are resampled to this
// rate independently, so their original rates never need to match.
const CanonicalSampleRate = 22050

// AudioSignal represents decoded mono PCM audio. Treated as immutable once
// produced by the decoder or resampler.
type AudioSignal struct {
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
}

// Duration returns the signal duration
func (s *AudioSignal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(s.Samples)) * time.Second / time.Duration(s.SampleRate)
}

// Empty reports whether the signal carries no samples
func (s *AudioSignal) Empty() bool {
	return s == nil || len(s.Samples) == 0
}
