package pitch

import (
	"fmt"
	"math"
)

// Default search band: E2..E6, the practical range of guitar and most
// melodic instruments the comparator is used for.
const (
	DefaultMinFreq = 82.41   // E2
	DefaultMaxFreq = 1318.51 // E6

	// DefaultThreshold is the YIN absolute threshold on the cumulative
	// mean normalized difference. Frames whose best lag stays above it
	// are marked unvoiced.
	DefaultThreshold = 0.15
)

// TrackerConfig contains parameters for pitch tracking
type TrackerConfig struct {
	SampleRate int     `json:"sample_rate"`
	WindowSize int     `json:"window_size"`
	HopSize    int     `json:"hop_size"`
	MinFreq    float64 `json:"min_freq"`
	MaxFreq    float64 `json:"max_freq"`
	Threshold  float64 `json:"threshold"`
}

// Tracker estimates a per-frame fundamental frequency using the YIN
// algorithm (difference function, cumulative mean normalization, absolute
// threshold, parabolic interpolation).
//
// Reference: de Cheveigné, A., Kawahara, H. (2002). "YIN, a fundamental
// frequency estimator for speech and music"
type Tracker struct {
	config TrackerConfig
}

// NewTracker creates a pitch tracker with the default musical search band
func NewTracker(sampleRate, windowSize, hopSize int) *Tracker {
	return &Tracker{
		config: TrackerConfig{
			SampleRate: sampleRate,
			WindowSize: windowSize,
			HopSize:    hopSize,
			MinFreq:    DefaultMinFreq,
			MaxFreq:    DefaultMaxFreq,
			Threshold:  DefaultThreshold,
		},
	}
}

// NewTrackerWithConfig creates a pitch tracker with custom parameters
func NewTrackerWithConfig(config TrackerConfig) *Tracker {
	return &Tracker{config: config}
}

// Track computes the pitch track of a signal. Frames are taken at the
// configured hop; the timestamp of frame i is i*hop/sampleRate.
func (t *Tracker) Track(signal []float64) (*Track, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}

	windowSize := t.config.WindowSize
	hopSize := t.config.HopSize
	if windowSize <= 0 || hopSize <= 0 {
		return nil, fmt.Errorf("window size and hop size must be positive")
	}

	numFrames := (len(signal)-windowSize)/hopSize + 1
	if numFrames <= 0 {
		return nil, fmt.Errorf("signal too short for given window size and hop size")
	}

	times := make([]float64, numFrames)
	frequencies := make([]float64, numFrames)

	frame := make([]float64, windowSize)
	for i := 0; i < numFrames; i++ {
		start := i * hopSize
		copy(frame, signal[start:start+windowSize])

		times[i] = float64(start) / float64(t.config.SampleRate)
		frequencies[i] = t.estimateFrame(frame)
	}

	return &Track{
		Times:       times,
		Frequencies: frequencies,
	}, nil
}

// estimateFrame runs YIN on a single frame, returning the fundamental
// frequency or the unvoiced sentinel
func (t *Tracker) estimateFrame(frame []float64) float64 {
	sampleRate := float64(t.config.SampleRate)

	// Lag bounds from the frequency search band
	tauMin := int(sampleRate / t.config.MaxFreq)
	if tauMin < 2 {
		tauMin = 2
	}
	tauMax := int(sampleRate/t.config.MinFreq) + 1
	if tauMax > len(frame)/2 {
		tauMax = len(frame) / 2
	}
	if tauMin >= tauMax {
		return Unvoiced()
	}

	// Difference function d(tau)
	half := len(frame) / 2
	diff := make([]float64, tauMax)
	for tau := 1; tau < tauMax; tau++ {
		sum := 0.0
		for j := 0; j < half; j++ {
			delta := frame[j] - frame[j+tau]
			sum += delta * delta
		}
		diff[tau] = sum
	}

	// Cumulative mean normalized difference function
	cmndf := make([]float64, tauMax)
	cmndf[0] = 1.0
	runningSum := 0.0
	for tau := 1; tau < tauMax; tau++ {
		runningSum += diff[tau]
		if runningSum == 0 {
			// Flat (silent) frame
			cmndf[tau] = 1.0
			continue
		}
		cmndf[tau] = diff[tau] * float64(tau) / runningSum
	}

	// First local minimum below the absolute threshold
	minTau := -1
	for tau := tauMin; tau < tauMax-1; tau++ {
		if cmndf[tau] < t.config.Threshold && cmndf[tau] <= cmndf[tau+1] {
			minTau = tau
			break
		}
	}

	if minTau < 0 {
		return Unvoiced()
	}

	period := parabolicInterpolation(cmndf, minTau)
	frequency := sampleRate / period

	if frequency < t.config.MinFreq || frequency > t.config.MaxFreq {
		return Unvoiced()
	}

	return frequency
}

// parabolicInterpolation refines the lag of a minimum by fitting a parabola
// through the point and its neighbors
func parabolicInterpolation(values []float64, idx int) float64 {
	if idx <= 0 || idx >= len(values)-1 {
		return float64(idx)
	}

	y0 := values[idx-1]
	y1 := values[idx]
	y2 := values[idx+1]

	denom := y0 - 2*y1 + y2
	if math.Abs(denom) < 1e-12 {
		return float64(idx)
	}

	offset := 0.5 * (y0 - y2) / denom
	return float64(idx) + offset
}
