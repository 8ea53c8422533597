package pitch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSampleRate = 22050

// sine generates a pure tone of the given frequency and duration.
func sine(freq float64, seconds float64, sampleRate int) []float64 {
	n := int(seconds * float64(sampleRate))
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return signal
}

// TestTracker_PureTone verifies a 440 Hz sine is detected as voiced near
// 440 Hz in every frame.
func TestTracker_PureTone(t *testing.T) {
	tracker := NewTracker(testSampleRate, 2048, 512)

	track, err := tracker.Track(sine(440.0, 1.0, testSampleRate))
	require.NoError(t, err)
	require.Greater(t, track.NumFrames(), 0)

	assert.Equal(t, track.NumFrames(), track.VoicedCount(), "every frame of a pure tone should be voiced")

	for i, f := range track.Frequencies {
		assert.InDelta(t, 440.0, f, 5.0, "frame %d", i)
	}
}

// TestTracker_Silence verifies silent audio produces only unvoiced frames.
func TestTracker_Silence(t *testing.T) {
	tracker := NewTracker(testSampleRate, 2048, 512)

	track, err := tracker.Track(make([]float64, testSampleRate))
	require.NoError(t, err)
	require.Greater(t, track.NumFrames(), 0)

	assert.Equal(t, 0, track.VoicedCount(), "silence must be unvoiced everywhere")
	for i := range track.Frequencies {
		assert.False(t, track.Voiced(i))
	}
}

// TestTracker_OutOfBandTone verifies a tone below the search band is not
// reported as a pitch inside the band.
func TestTracker_OutOfBandTone(t *testing.T) {
	tracker := NewTracker(testSampleRate, 2048, 512)

	// 40 Hz sits below E2; any estimate the tracker makes must stay inside
	// the configured band, so the frame is rejected as unvoiced.
	track, err := tracker.Track(sine(40.0, 1.0, testSampleRate))
	require.NoError(t, err)

	for i, f := range track.Frequencies {
		if !math.IsNaN(f) {
			assert.GreaterOrEqual(t, f, DefaultMinFreq, "frame %d", i)
			assert.LessOrEqual(t, f, DefaultMaxFreq, "frame %d", i)
		}
	}
}

// TestTracker_EmptySignal verifies empty input errors instead of returning
// an empty track.
func TestTracker_EmptySignal(t *testing.T) {
	tracker := NewTracker(testSampleRate, 2048, 512)

	_, err := tracker.Track(nil)
	assert.Error(t, err)

	_, err = tracker.Track([]float64{})
	assert.Error(t, err)
}

// TestTrack_FrameTiming verifies the deterministic index-to-time mapping.
func TestTrack_FrameTiming(t *testing.T) {
	tracker := NewTracker(testSampleRate, 2048, 512)

	track, err := tracker.Track(sine(440.0, 1.0, testSampleRate))
	require.NoError(t, err)

	for i, ts := range track.Times {
		expected := float64(i*512) / float64(testSampleRate)
		assert.InDelta(t, expected, ts, 1e-12)
	}
}

// TestTrack_NearestIndex verifies nearest-frame lookup, including clamping
// outside the track's time span.
func TestTrack_NearestIndex(t *testing.T) {
	track := &Track{
		Times:       []float64{0.0, 0.1, 0.2, 0.3},
		Frequencies: []float64{440, 441, Unvoiced(), 443},
	}

	assert.Equal(t, 0, track.NearestIndex(0.0))
	assert.Equal(t, 1, track.NearestIndex(0.11))
	assert.Equal(t, 2, track.NearestIndex(0.19))
	assert.Equal(t, 3, track.NearestIndex(5.0), "lookups past the end clamp to the last frame")
	assert.Equal(t, 0, track.NearestIndex(-1.0), "lookups before the start clamp to the first frame")

	f, voiced := track.FrequencyAt(0.1)
	assert.True(t, voiced)
	assert.Equal(t, 441.0, f)

	_, voiced = track.FrequencyAt(0.2)
	assert.False(t, voiced, "unvoiced sentinel must report not voiced")
}
