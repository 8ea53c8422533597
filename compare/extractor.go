package compare

import (
	"github.com/practica/audiograde/algorithms/chroma"
	"github.com/practica/audiograde/algorithms/common"
	"github.com/practica/audiograde/algorithms/pitch"
	"github.com/practica/audiograde/logging"
	"github.com/practica/audiograde/transcode"
)

// Extractor derives the two per-frame feature sets of a signal: a pitch
// track (fundamental frequency with voiced/unvoiced flags) and a 12-bin
// chromagram. Both use the same frame geometry, so frame index i of either
// feature maps to the timestamp i*hop/sampleRate.
type Extractor struct {
	sampleRate int
	windowSize int
	hopSize    int
	pitch      *pitch.Tracker
	chroma     *chroma.Extractor
}

// NewExtractor creates a feature extractor for the given analysis geometry
func NewExtractor(sampleRate, windowSize, hopSize int) *Extractor {
	return &Extractor{
		sampleRate: sampleRate,
		windowSize: windowSize,
		hopSize:    hopSize,
		pitch:      pitch.NewTracker(sampleRate, windowSize, hopSize),
		chroma:     chroma.NewExtractor(sampleRate, windowSize, hopSize),
	}
}

// Extract computes the pitch track and chromagram of a signal. The side
// label ("teacher"/"student") tags any failure with its origin.
func (e *Extractor) Extract(side string, signal *transcode.AudioSignal) (*pitch.Track, *chroma.Chromagram, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "feature_extractor",
		"side":      side,
	})

	if signal.Empty() {
		return nil, nil, &EmptySignalError{Side: side}
	}

	track, err := e.pitch.Track(signal.Samples)
	if err != nil {
		return nil, nil, &EmptyFeatureError{Side: side}
	}

	chromagram, err := e.chroma.Compute(signal.Samples)
	if err != nil {
		return nil, nil, &EmptyFeatureError{Side: side}
	}

	if track.NumFrames() == 0 || chromagram.NumFrames() == 0 {
		return nil, nil, &EmptyFeatureError{Side: side}
	}

	for _, frame := range chromagram.Frames {
		if common.HasNaNOrInf(frame) {
			return nil, nil, &NumericIntegrityError{Stage: "chroma"}
		}
	}

	logger.Debug("Feature extraction completed", logging.Fields{
		"frames":        chromagram.NumFrames(),
		"voiced_frames": track.VoicedCount(),
	})

	return track, chromagram, nil
}
