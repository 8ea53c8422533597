package compare

import (
	"github.com/practica/audiograde/algorithms/stats"
	"github.com/practica/audiograde/logging"
	"github.com/practica/audiograde/report"
	"github.com/practica/audiograde/transcode"
)

// Config holds comparator configuration
type Config struct {
	SampleRate int                      `json:"sample_rate"` // Canonical analysis rate
	WindowSize int                      `json:"window_size"` // STFT/YIN frame size
	HopSize    int                      `json:"hop_size"`    // Frame hop
	Decoder    *transcode.DecoderConfig `json:"decoder"`
}

// DefaultConfig returns the standard analysis geometry
func DefaultConfig() *Config {
	return &Config{
		SampleRate: transcode.CanonicalSampleRate,
		WindowSize: 2048,
		HopSize:    512,
		Decoder:    transcode.DefaultDecoderConfig(),
	}
}

// ReportSink stores a finished ScoreReport against whatever domain record
// the caller chooses. The comparator has no awareness of that record's
// schema.
type ReportSink interface {
	StoreReport(report *ScoreReport) error
}

// Comparator runs the full comparison pipeline: decode, extract features,
// align, score. One call in, one ScoreReport out; no state is shared
// between calls, so a single Comparator is safe to use from concurrent
// workers.
type Comparator struct {
	config    *Config
	decoder   *transcode.Decoder
	extractor *Extractor
	aligner   *Aligner
	scorer    *Scorer

	// Reporter, when set, writes diagnostic artifacts for every file
	// comparison. Sink, when set, receives every finished report.
	Reporter *report.Writer
	Sink     ReportSink
}

// NewComparator creates a comparator with the given configuration
func NewComparator(config *Config) *Comparator {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Decoder == nil {
		config.Decoder = transcode.DefaultDecoderConfig()
	}
	config.Decoder.TargetSampleRate = config.SampleRate

	return &Comparator{
		config:    config,
		decoder:   transcode.NewDecoder(config.Decoder),
		extractor: NewExtractor(config.SampleRate, config.WindowSize, config.HopSize),
		aligner:   NewAligner(),
		scorer:    NewScorer(),
	}
}

// CompareFiles decodes both recordings and compares them. When a Reporter
// is configured, diagnostic artifacts are written to a unique per-call
// directory whose path lands in ScoreReport.ResultsDir.
func (c *Comparator) CompareFiles(teacherPath, studentPath string) (*ScoreReport, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "comparator",
		"teacher":   teacherPath,
		"student":   studentPath,
	})

	logger.Info("Starting audio comparison")

	teacherSignal, err := c.decoder.DecodeFile(teacherPath)
	if err != nil {
		return nil, &DecodeError{Path: teacherPath, Err: err}
	}

	studentSignal, err := c.decoder.DecodeFile(studentPath)
	if err != nil {
		return nil, &DecodeError{Path: studentPath, Err: err}
	}

	scoreReport, series, path, err := c.compare(teacherSignal, studentSignal)
	if err != nil {
		return nil, err
	}

	if c.Reporter != nil {
		dir, err := c.Reporter.Write(&report.Input{
			TeacherName:         teacherPath,
			StudentName:         studentPath,
			OverallScore:        scoreReport.OverallScore,
			PitchAccuracy:       scoreReport.PitchAccuracy,
			TimingAccuracy:      scoreReport.TimingAccuracy,
			HarmonicAccuracy:    scoreReport.HarmonicAccuracy,
			MeanPitchErrorCents: scoreReport.Details.MeanPitchErrorCents,
			MaxPitchErrorCents:  scoreReport.Details.MaxPitchErrorCents,
			TimingDeviation:     scoreReport.Details.TimingDeviation,
			MeanChromaDistance:  scoreReport.Details.MeanChromaDistance,
			TeacherTimes:        series.TeacherTimes,
			PitchDiffs:          series.PitchDiffs,
			ChromaDistances:     series.ChromaDistances,
			Path:                path,
		})
		if err != nil {
			// Artifacts are a side channel; the score itself is still valid
			logger.Warn("Failed to write report artifacts", logging.Fields{
				"error": err.Error(),
			})
		} else {
			scoreReport.ResultsDir = dir
		}
	}

	if err := c.storeReport(scoreReport); err != nil {
		return nil, err
	}

	logger.Info("Audio comparison completed", logging.Fields{
		"overall_score":     scoreReport.OverallScore,
		"pitch_accuracy":    scoreReport.PitchAccuracy,
		"timing_accuracy":   scoreReport.TimingAccuracy,
		"harmonic_accuracy": scoreReport.HarmonicAccuracy,
	})

	return scoreReport, nil
}

// CompareSignals compares two already-decoded signals. Signals at a foreign
// sample rate are resampled to the canonical rate first.
func (c *Comparator) CompareSignals(teacher, student *transcode.AudioSignal) (*ScoreReport, error) {
	scoreReport, _, _, err := c.compare(teacher, student)
	if err != nil {
		return nil, err
	}

	if err := c.storeReport(scoreReport); err != nil {
		return nil, err
	}

	return scoreReport, nil
}

// compare is the core pure pipeline: resample, extract, align, score
func (c *Comparator) compare(teacher, student *transcode.AudioSignal) (*ScoreReport, *Series, []stats.PathPoint, error) {
	if teacher.Empty() {
		return nil, nil, nil, &EmptySignalError{Side: "teacher"}
	}
	if student.Empty() {
		return nil, nil, nil, &EmptySignalError{Side: "student"}
	}

	teacher, err := transcode.Resample(teacher, c.config.SampleRate)
	if err != nil {
		return nil, nil, nil, err
	}
	student, err = transcode.Resample(student, c.config.SampleRate)
	if err != nil {
		return nil, nil, nil, err
	}

	teacherPitch, teacherChroma, err := c.extractor.Extract("teacher", teacher)
	if err != nil {
		return nil, nil, nil, err
	}

	studentPitch, studentChroma, err := c.extractor.Extract("student", student)
	if err != nil {
		return nil, nil, nil, err
	}

	_, path, err := c.aligner.Align(teacherChroma, studentChroma)
	if err != nil {
		return nil, nil, nil, err
	}

	scoreReport, series := c.scorer.ScoreWithSeries(teacherPitch, studentPitch, teacherChroma, studentChroma, path)

	return scoreReport, series, path, nil
}

func (c *Comparator) storeReport(scoreReport *ScoreReport) error {
	if c.Sink == nil {
		return nil
	}
	return c.Sink.StoreReport(scoreReport)
}
