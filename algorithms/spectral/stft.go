package spectral

import (
	"fmt"
	"math/cmplx"
)

// STFT provides Short-Time Fourier Transform functionality.
//
// Frames are processed sequentially: the comparison pipeline is a pure
// synchronous batch computation, so each call owns its buffers outright and
// repeated calls with the same input produce identical output.
type STFT struct {
	fft *FFT
}

// STFTResult holds the result of STFT analysis
type STFTResult struct {
	Magnitude      [][]float64 `json:"magnitude"`       // Time x Frequency magnitude matrix
	TimeFrames     int         `json:"time_frames"`     // Number of time frames
	FreqBins       int         `json:"freq_bins"`       // Number of frequency bins
	SampleRate     int         `json:"sample_rate"`     // Sample rate
	WindowSize     int         `json:"window_size"`     // FFT window size
	HopSize        int         `json:"hop_size"`        // Hop size between frames
	FreqResolution float64     `json:"freq_resolution"` // Frequency resolution (Hz/bin)
	TimeResolution float64     `json:"time_resolution"` // Time resolution (seconds/frame)
}

// Window interface for windowing functions
type Window interface {
	ApplyInPlace(signal []float64) error
}

// NewSTFT creates a new STFT calculator
func NewSTFT() *STFT {
	return &STFT{
		fft: NewFFT(),
	}
}

// ComputeWithWindow computes the magnitude STFT with a custom window
func (s *STFT) ComputeWithWindow(signal []float64, windowSize int, hopSize int, sampleRate int, window Window) (*STFTResult, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}

	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive")
	}

	if hopSize <= 0 {
		return nil, fmt.Errorf("hop size must be positive")
	}

	numFrames := (len(signal)-windowSize)/hopSize + 1
	if numFrames <= 0 {
		return nil, fmt.Errorf("signal too short for given window size and hop size")
	}

	// Positive frequencies only
	freqBins := windowSize/2 + 1

	magnitude := make([][]float64, numFrames)
	frameBuffer := make([]float64, windowSize)

	for frameIdx := 0; frameIdx < numFrames; frameIdx++ {
		startIdx := frameIdx * hopSize
		copy(frameBuffer, signal[startIdx:startIdx+windowSize])

		if window != nil {
			if err := window.ApplyInPlace(frameBuffer); err != nil {
				return nil, fmt.Errorf("windowing frame %d: %w", frameIdx, err)
			}
		}

		fftResult := s.fft.Compute(frameBuffer)

		magnitude[frameIdx] = make([]float64, freqBins)
		for i := 0; i < freqBins; i++ {
			magnitude[frameIdx][i] = cmplx.Abs(fftResult[i])
		}
	}

	return &STFTResult{
		Magnitude:      magnitude,
		TimeFrames:     numFrames,
		FreqBins:       freqBins,
		SampleRate:     sampleRate,
		WindowSize:     windowSize,
		HopSize:        hopSize,
		FreqResolution: float64(sampleRate) / float64(windowSize),
		TimeResolution: float64(hopSize) / float64(sampleRate),
	}, nil
}
