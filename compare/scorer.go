package compare

import (
	"math"

	"github.com/practica/audiograde/algorithms/chroma"
	"github.com/practica/audiograde/algorithms/common"
	"github.com/practica/audiograde/algorithms/pitch"
	"github.com/practica/audiograde/algorithms/stats"
)

// Scoring model constants. The weights and the one-semitone miss threshold
// are fixed policy values, tunable but preserved for behavioral
// compatibility with existing stored scores.
const (
	pitchWeight    = 0.7
	timingWeight   = 0.1
	harmonicWeight = 0.2

	// A pitch difference of one semitone or more counts as a full miss
	fullMissCents = 100.0

	// Differences below this are treated as exact matches
	perfectMatchEps = 1e-6
)

// ScoreDetails carries the raw metrics behind the component scores.
// Unbounded non-negative floats, unlike the 0-100 score fields.
type ScoreDetails struct {
	MeanPitchErrorCents float64 `json:"mean_pitch_error_cents"`
	MaxPitchErrorCents  float64 `json:"max_pitch_error_cents"`
	TimingDeviation     float64 `json:"timing_deviation"`
	MeanChromaDistance  float64 `json:"mean_chroma_distance"`
	RetainedPitchPairs  int     `json:"retained_pitch_pairs"`
}

// ScoreReport is the final output of a comparison. All four score fields
// lie in [0, 100]. Immutable once returned; the persistence layer stores it
// verbatim.
type ScoreReport struct {
	OverallScore     float64      `json:"overall_score"`
	PitchAccuracy    float64      `json:"pitch_accuracy"`
	TimingAccuracy   float64      `json:"timing_accuracy"`
	HarmonicAccuracy float64      `json:"harmonic_accuracy"`
	Details          ScoreDetails `json:"details"`
	ResultsDir       string       `json:"results_dir,omitempty"`
}

// Series holds the per-pair diagnostic series behind a report, consumed by
// the artifact writer
type Series struct {
	TeacherTimes    []float64 // Aligned teacher timestamps of retained pitch pairs
	PitchDiffs      []float64 // Signed cents differences (student - teacher)
	ChromaDistances []float64 // Euclidean chroma distance per path entry
}

// Scorer walks an alignment path and combines pitch, timing, and harmonic
// metrics into a weighted composite score
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score evaluates a student performance against the teacher reference along
// the given alignment path
func (s *Scorer) Score(teacherPitch, studentPitch *pitch.Track, teacherChroma, studentChroma *chroma.Chromagram, path []stats.PathPoint) *ScoreReport {
	report, _ := s.ScoreWithSeries(teacherPitch, studentPitch, teacherChroma, studentChroma, path)
	return report
}

// ScoreWithSeries is Score plus the per-pair diagnostic series
func (s *Scorer) ScoreWithSeries(teacherPitch, studentPitch *pitch.Track, teacherChroma, studentChroma *chroma.Chromagram, path []stats.PathPoint) (*ScoreReport, *Series) {
	series := s.collectSeries(teacherPitch, studentPitch, teacherChroma, studentChroma, path)

	// Degenerate case: every path pair had an unvoiced side. Pitch accuracy
	// is reported as zero rather than failing, so the caller always gets a
	// report.
	if len(series.PitchDiffs) == 0 {
		timing, timingDev := timingScore(path)
		harmonic := harmonicScore(series.ChromaDistances)

		return &ScoreReport{
			OverallScore:     pitchWeight*0 + timingWeight*timing + harmonicWeight*harmonic,
			PitchAccuracy:    0.0,
			TimingAccuracy:   timing,
			HarmonicAccuracy: harmonic,
			Details: ScoreDetails{
				TimingDeviation:    timingDev,
				MeanChromaDistance: common.Mean(series.ChromaDistances),
				RetainedPitchPairs: 0,
			},
		}, series
	}

	// Perfect-match short-circuit: exact copies score exactly 100 on every
	// axis without running the weighted formula
	if allBelow(series.PitchDiffs, perfectMatchEps) && allBelow(series.ChromaDistances, perfectMatchEps) {
		return &ScoreReport{
			OverallScore:     100.0,
			PitchAccuracy:    100.0,
			TimingAccuracy:   100.0,
			HarmonicAccuracy: 100.0,
			Details: ScoreDetails{
				RetainedPitchPairs: len(series.PitchDiffs),
			},
		}, series
	}

	pitchAccuracy, meanErr, maxErr := pitchScore(series.PitchDiffs)
	timing, timingDev := timingScore(path)
	harmonic := harmonicScore(series.ChromaDistances)

	overall := pitchWeight*pitchAccuracy + timingWeight*timing + harmonicWeight*harmonic

	return &ScoreReport{
		OverallScore:     overall,
		PitchAccuracy:    pitchAccuracy,
		TimingAccuracy:   timing,
		HarmonicAccuracy: harmonic,
		Details: ScoreDetails{
			MeanPitchErrorCents: meanErr,
			MaxPitchErrorCents:  maxErr,
			TimingDeviation:     timingDev,
			MeanChromaDistance:  common.Mean(series.ChromaDistances),
			RetainedPitchPairs:  len(series.PitchDiffs),
		},
	}, series
}

// collectSeries walks the path gathering pitch differences (voiced pairs
// only) and chroma distances (every pair)
func (s *Scorer) collectSeries(teacherPitch, studentPitch *pitch.Track, teacherChroma, studentChroma *chroma.Chromagram, path []stats.PathPoint) *Series {
	series := &Series{
		ChromaDistances: make([]float64, 0, len(path)),
	}

	for _, p := range path {
		series.ChromaDistances = append(series.ChromaDistances,
			stats.EuclideanDistance(teacherChroma.Frames[p.I], studentChroma.Frames[p.J]))

		teacherTime := teacherChroma.FrameTime(p.I)
		studentTime := studentChroma.FrameTime(p.J)

		freqT, voicedT := teacherPitch.FrequencyAt(teacherTime)
		freqS, voicedS := studentPitch.FrequencyAt(studentTime)
		if !voicedT || !voicedS {
			continue
		}

		diff := hzToCents(freqS) - hzToCents(freqT)
		series.PitchDiffs = append(series.PitchDiffs, diff)
		series.TeacherTimes = append(series.TeacherTimes, teacherTime)
	}

	return series
}

// hzToCents converts a frequency to a logarithmic cents scale anchored so
// A4 (440 Hz) sits at 6900 cents
func hzToCents(freq float64) float64 {
	return 1200.0*math.Log2(freq/440.0) + 6900.0
}

// pitchScore maps absolute cents errors onto [0,100]; an error of a full
// semitone or more scores zero for that pair
func pitchScore(diffs []float64) (score, meanErr, maxErr float64) {
	scores := make([]float64, len(diffs))
	errors := make([]float64, len(diffs))
	for i, d := range diffs {
		errors[i] = math.Abs(d)
		scores[i] = common.Clamp(1.0-errors[i]/fullMissCents, 0.0, 1.0) * 100.0
	}
	return common.Mean(scores), common.Mean(errors), common.Max(errors)
}

// timingScore measures how far consecutive path steps stray from the ideal
// one-frame advance on each axis. Exponential decay penalizes jumps and
// stalls smoothly instead of with a hard cutoff.
func timingScore(path []stats.PathPoint) (score, meanDeviation float64) {
	if len(path) < 2 {
		return 100.0, 0.0
	}

	devI := make([]float64, len(path)-1)
	devJ := make([]float64, len(path)-1)
	for k := 1; k < len(path); k++ {
		devI[k-1] = math.Abs(float64(path[k].I-path[k-1].I) - 1.0)
		devJ[k-1] = math.Abs(float64(path[k].J-path[k-1].J) - 1.0)
	}

	meanDevI := common.Mean(devI)
	meanDevJ := common.Mean(devJ)

	score = (math.Exp(-meanDevI) + math.Exp(-meanDevJ)) / 2.0 * 100.0
	meanDeviation = (meanDevI + meanDevJ) / 2.0
	return score, meanDeviation
}

// harmonicScore normalizes chroma distances against the worst distance seen
// in this comparison. Identical distances everywhere (including all zero)
// mean no harmonic contrast to penalize, which scores 100.
func harmonicScore(dists []float64) float64 {
	if len(dists) == 0 {
		return 100.0
	}

	maxDist := common.Max(dists)
	minDist := maxDist
	for _, d := range dists {
		if d < minDist {
			minDist = d
		}
	}
	if maxDist <= 0 || maxDist-minDist < perfectMatchEps {
		return 100.0
	}

	scores := make([]float64, len(dists))
	for i, d := range dists {
		scores[i] = common.Clamp(1.0-d/maxDist, 0.0, 1.0) * 100.0
	}
	return common.Mean(scores)
}

func allBelow(values []float64, eps float64) bool {
	for _, v := range values {
		if math.Abs(v) >= eps {
			return false
		}
	}
	return true
}
