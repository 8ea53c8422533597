package chroma

import (
	"fmt"
	"math"

	"github.com/practica/audiograde/algorithms/spectral"
	"github.com/practica/audiograde/algorithms/windowing"
)

const (
	// NumBins is the number of pitch classes (C, C#, D, ..., B)
	NumBins = 12

	// normEpsilon is added to every bin before L2 normalization so no frame
	// is ever a zero vector. Downstream cosine distances depend on this.
	normEpsilon = 1e-6
)

// Chromagram is a sequence of 12-bin pitch-class vectors, one per analysis
// frame. Every frame is L2-normalized to unit energy. Immutable once produced.
type Chromagram struct {
	Frames     [][]float64 `json:"frames"` // Time x 12 pitch-class energy
	SampleRate int         `json:"sample_rate"`
	HopSize    int         `json:"hop_size"`
}

// NumFrames returns the number of analysis frames
func (c *Chromagram) NumFrames() int {
	return len(c.Frames)
}

// FrameTime maps a frame index to its timestamp in seconds
func (c *Chromagram) FrameTime(frameIdx int) float64 {
	return float64(frameIdx) * float64(c.HopSize) / float64(c.SampleRate)
}

// Extractor computes chromagrams from PCM audio.
//
// Spectral energy is folded into 12 semitone bins via MIDI note mapping
// (octave-folded, A4 tuning), restricted to a musically useful band.
type Extractor struct {
	sampleRate int
	windowSize int
	hopSize    int
	tuningFreq float64 // A4 frequency
	minFreq    float64
	maxFreq    float64
	stft       *spectral.STFT
	window     *windowing.Hann
}

// NewExtractor creates a chroma extractor with standard analysis geometry
// and A4=440Hz tuning
func NewExtractor(sampleRate, windowSize, hopSize int) *Extractor {
	return &Extractor{
		sampleRate: sampleRate,
		windowSize: windowSize,
		hopSize:    hopSize,
		tuningFreq: 440.0,
		minFreq:    80.0,   // approximate E2
		maxFreq:    8000.0, // high enough for harmonics
		stft:       spectral.NewSTFT(),
		window:     windowing.NewHann(windowSize, false),
	}
}

// Compute computes the chromagram of a signal
func (e *Extractor) Compute(signal []float64) (*Chromagram, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}

	stftResult, err := e.stft.ComputeWithWindow(signal, e.windowSize, e.hopSize, e.sampleRate, e.window)
	if err != nil {
		return nil, err
	}

	mapping := e.chromaMapping(stftResult.FreqBins, stftResult.FreqResolution)

	frames := make([][]float64, stftResult.TimeFrames)
	for t := 0; t < stftResult.TimeFrames; t++ {
		frame := make([]float64, NumBins)

		for f := 0; f < stftResult.FreqBins; f++ {
			bin := mapping[f]
			if bin < 0 {
				continue
			}
			magnitude := stftResult.Magnitude[t][f]
			// Magnitude squared for energy
			frame[bin] += magnitude * magnitude
		}

		normalizeFrame(frame)
		frames[t] = frame
	}

	return &Chromagram{
		Frames:     frames,
		SampleRate: e.sampleRate,
		HopSize:    e.hopSize,
	}, nil
}

// chromaMapping maps FFT bins to chroma bins, -1 for out-of-band bins
func (e *Extractor) chromaMapping(freqBins int, freqResolution float64) []int {
	mapping := make([]int, freqBins)

	for f := 0; f < freqBins; f++ {
		frequency := float64(f) * freqResolution

		if frequency < e.minFreq || frequency > e.maxFreq {
			mapping[f] = -1
			continue
		}

		midiNote := e.frequencyToMIDI(frequency)
		bin := int(math.Round(midiNote)) % NumBins
		if bin < 0 {
			bin += NumBins
		}
		mapping[f] = bin
	}

	return mapping
}

// frequencyToMIDI converts frequency to MIDI note number
// A4 (tuning frequency) = MIDI note 69
func (e *Extractor) frequencyToMIDI(frequency float64) float64 {
	if frequency <= 0 {
		return 0
	}
	return 69.0 + 12.0*math.Log2(frequency/e.tuningFreq)
}

// normalizeFrame applies the epsilon floor and L2-normalizes in place.
// The floor guarantees the norm is strictly positive, so no frame can
// propagate a zero vector or NaN into the cost matrix.
func normalizeFrame(frame []float64) {
	sumSquares := 0.0
	for i := range frame {
		frame[i] += normEpsilon
		sumSquares += frame[i] * frame[i]
	}

	norm := math.Sqrt(sumSquares)
	for i := range frame {
		frame[i] /= norm
	}
}

// Labels returns the chroma bin labels
func Labels() []string {
	return []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
}
