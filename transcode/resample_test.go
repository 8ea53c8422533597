package transcode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResample_Passthrough verifies a signal already at the target rate is
// returned unchanged.
func TestResample_Passthrough(t *testing.T) {
	signal := &AudioSignal{
		Samples:    []float64{0.1, 0.2, 0.3},
		SampleRate: CanonicalSampleRate,
	}

	out, err := Resample(signal, CanonicalSampleRate)
	require.NoError(t, err)
	assert.Same(t, signal, out)
}

// TestResample_Downsample verifies the output length and rate for a 2:1
// conversion and that a pure tone survives with its shape intact.
func TestResample_Downsample(t *testing.T) {
	const srcRate = 44100
	n := srcRate // one second
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 440.0 * float64(i) / float64(srcRate))
	}

	out, err := Resample(&AudioSignal{Samples: samples, SampleRate: srcRate}, CanonicalSampleRate)
	require.NoError(t, err)

	assert.Equal(t, CanonicalSampleRate, out.SampleRate)
	assert.InDelta(t, CanonicalSampleRate, len(out.Samples), 2)

	// Linear interpolation of a 440 Hz tone at these rates stays close to
	// the ideal resample.
	for i := 0; i < 100; i++ {
		ts := float64(i) / float64(CanonicalSampleRate)
		want := math.Sin(2 * math.Pi * 440.0 * ts)
		assert.InDelta(t, want, out.Samples[i], 0.02, "sample %d", i)
	}
}

// TestResample_Upsample verifies upsampling interpolates between neighbors.
func TestResample_Upsample(t *testing.T) {
	signal := &AudioSignal{
		Samples:    []float64{0.0, 1.0},
		SampleRate: 100,
	}

	out, err := Resample(signal, 200)
	require.NoError(t, err)

	require.Len(t, out.Samples, 4)
	assert.Equal(t, 0.0, out.Samples[0])
	assert.InDelta(t, 0.5, out.Samples[1], 1e-12)
	assert.Equal(t, 1.0, out.Samples[2], "positions past the last pair clamp to the final sample")
	assert.Equal(t, 1.0, out.Samples[3])
}

// TestResample_InvalidInput verifies empty signals and non-positive rates
// are rejected.
func TestResample_InvalidInput(t *testing.T) {
	_, err := Resample(nil, CanonicalSampleRate)
	assert.Error(t, err)

	_, err = Resample(&AudioSignal{SampleRate: 44100}, CanonicalSampleRate)
	assert.Error(t, err)

	_, err = Resample(&AudioSignal{Samples: []float64{0.1}, SampleRate: 0}, CanonicalSampleRate)
	assert.Error(t, err)

	_, err = Resample(&AudioSignal{Samples: []float64{0.1}, SampleRate: 44100}, 0)
	assert.Error(t, err)
}
