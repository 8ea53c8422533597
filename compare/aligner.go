package compare

import (
	"math"

	"github.com/practica/audiograde/algorithms/chroma"
	"github.com/practica/audiograde/algorithms/common"
	"github.com/practica/audiograde/algorithms/stats"
	"github.com/practica/audiograde/logging"
)

// CostMatrix holds pairwise cosine distances between two chromagram frame
// sets, indexed (teacher frame, student frame). Values are clipped to [0,1].
type CostMatrix [][]float64

// Aligner computes the cost matrix between two chromagrams and the
// minimum-cost monotonic DTW path through it
type Aligner struct{}

// NewAligner creates a new aligner
func NewAligner() *Aligner {
	return &Aligner{}
}

// Align builds the cosine cost matrix and finds the optimal alignment path.
// The path starts at (0,0), ends at the last frame pair, and is
// non-decreasing in both coordinates.
func (a *Aligner) Align(teacher, student *chroma.Chromagram) (CostMatrix, []stats.PathPoint, error) {
	if teacher == nil || teacher.NumFrames() == 0 {
		return nil, nil, &EmptyFeatureError{Side: "teacher"}
	}
	if student == nil || student.NumFrames() == 0 {
		return nil, nil, &EmptyFeatureError{Side: "student"}
	}

	logger := logging.WithFields(logging.Fields{
		"component":      "aligner",
		"teacher_frames": teacher.NumFrames(),
		"student_frames": student.NumFrames(),
	})

	cost := make(CostMatrix, teacher.NumFrames())
	for i := range cost {
		row := make([]float64, student.NumFrames())
		for j := range row {
			d := stats.CosineDistance(teacher.Frames[i], student.Frames[j])
			if math.IsNaN(d) || math.IsInf(d, 0) {
				return nil, nil, &NumericIntegrityError{Stage: "cost_matrix"}
			}
			row[j] = common.Clamp(d, 0.0, 1.0)
		}
		cost[i] = row
	}

	path, totalCost, err := stats.DTWPath(cost)
	if err != nil {
		// Dimensions are validated above, so this is unexpected
		return nil, nil, err
	}

	logger.Debug("Alignment completed", logging.Fields{
		"path_length": len(path),
		"total_cost":  totalCost,
	})

	return cost, path, nil
}
