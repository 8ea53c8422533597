package stats

import (
	"fmt"
	"math"
)

// PathPoint is one step of a DTW alignment path
type PathPoint struct {
	I int `json:"i"` // Index into the first (reference) sequence
	J int `json:"j"` // Index into the second (query) sequence
}

// DTWPath finds the minimum-cost monotonic path through a precomputed local
// cost matrix using unit-step transitions (diagonal, vertical, horizontal;
// no skips). The path is boundary-forced: it starts at (0,0) and ends at
// (rows-1, cols-1), and both coordinates are non-decreasing.
//
// Tie-break during backtracking is deterministic: diagonal, then vertical,
// then horizontal. Returns the path and the accumulated cost of the final
// cell.
func DTWPath(cost [][]float64) ([]PathPoint, float64, error) {
	rows := len(cost)
	if rows == 0 {
		return nil, 0, fmt.Errorf("empty cost matrix")
	}
	cols := len(cost[0])
	if cols == 0 {
		return nil, 0, fmt.Errorf("empty cost matrix")
	}

	// Accumulated cost matrix
	acc := make([][]float64, rows)
	for i := range acc {
		acc[i] = make([]float64, cols)
	}

	acc[0][0] = cost[0][0]
	for i := 1; i < rows; i++ {
		acc[i][0] = acc[i-1][0] + cost[i][0]
	}
	for j := 1; j < cols; j++ {
		acc[0][j] = acc[0][j-1] + cost[0][j]
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			best := math.Min(acc[i-1][j-1], math.Min(acc[i-1][j], acc[i][j-1]))
			acc[i][j] = cost[i][j] + best
		}
	}

	// Backtrack from the forced end point
	path := make([]PathPoint, 0, rows+cols-1)
	i, j := rows-1, cols-1
	path = append(path, PathPoint{I: i, J: j})

	for i > 0 || j > 0 {
		switch {
		case i == 0:
			j--
		case j == 0:
			i--
		default:
			diag := acc[i-1][j-1]
			vert := acc[i-1][j]
			horiz := acc[i][j-1]

			if diag <= vert && diag <= horiz {
				i--
				j--
			} else if vert <= horiz {
				i--
			} else {
				j--
			}
		}
		path = append(path, PathPoint{I: i, J: j})
	}

	// Reverse into forward order
	for lo, hi := 0, len(path)-1; lo < hi; lo, hi = lo+1, hi-1 {
		path[lo], path[hi] = path[hi], path[lo]
	}

	return path, acc[rows-1][cols-1], nil
}
