package chroma

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSampleRate = 22050

func sine(freq float64, seconds float64, sampleRate int) []float64 {
	n := int(seconds * float64(sampleRate))
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return signal
}

// TestExtractor_UnitNorm verifies every chroma frame is L2-normalized and
// free of NaN/Inf, including for silent input where only the epsilon floor
// carries energy.
func TestExtractor_UnitNorm(t *testing.T) {
	extractor := NewExtractor(testSampleRate, 2048, 512)

	signals := map[string][]float64{
		"tone":    sine(440.0, 1.0, testSampleRate),
		"silence": make([]float64, testSampleRate),
	}

	for name, signal := range signals {
		chromagram, err := extractor.Compute(signal)
		require.NoError(t, err, name)
		require.Greater(t, chromagram.NumFrames(), 0, name)

		for i, frame := range chromagram.Frames {
			require.Len(t, frame, NumBins)

			sumSquares := 0.0
			for _, v := range frame {
				assert.False(t, math.IsNaN(v), "%s frame %d has NaN", name, i)
				assert.False(t, math.IsInf(v, 0), "%s frame %d has Inf", name, i)
				assert.GreaterOrEqual(t, v, 0.0)
				sumSquares += v * v
			}
			assert.InDelta(t, 1.0, sumSquares, 1e-9, "%s frame %d not unit-normalized", name, i)
		}
	}
}

// TestExtractor_PitchClassDominance verifies a 440 Hz tone concentrates its
// energy in the A bin.
func TestExtractor_PitchClassDominance(t *testing.T) {
	extractor := NewExtractor(testSampleRate, 2048, 512)

	chromagram, err := extractor.Compute(sine(440.0, 1.0, testSampleRate))
	require.NoError(t, err)

	const aBin = 9 // C=0 ... A=9

	for i, frame := range chromagram.Frames {
		maxBin := 0
		for b, v := range frame {
			if v > frame[maxBin] {
				maxBin = b
			}
		}
		assert.Equal(t, aBin, maxBin, "frame %d should be dominated by pitch class A", i)
	}
}

// TestExtractor_EmptySignal verifies empty input is rejected.
func TestExtractor_EmptySignal(t *testing.T) {
	extractor := NewExtractor(testSampleRate, 2048, 512)

	_, err := extractor.Compute(nil)
	assert.Error(t, err)
}

// TestChromagram_FrameTime verifies the index-to-timestamp mapping.
func TestChromagram_FrameTime(t *testing.T) {
	c := &Chromagram{SampleRate: testSampleRate, HopSize: 512}

	assert.Equal(t, 0.0, c.FrameTime(0))
	assert.InDelta(t, 512.0/22050.0, c.FrameTime(1), 1e-12)
	assert.InDelta(t, 10.0*512.0/22050.0, c.FrameTime(10), 1e-12)
}
