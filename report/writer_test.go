package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/practica/audiograde/algorithms/stats"
)

func sampleInput() *Input {
	return &Input{
		TeacherName:         "/recordings/teacher_take.mp3",
		StudentName:         "/uploads/student_take.wav",
		OverallScore:        87.3,
		PitchAccuracy:       91.2,
		TimingAccuracy:      95.0,
		HarmonicAccuracy:    70.5,
		MeanPitchErrorCents: 12.4,
		MaxPitchErrorCents:  48.0,
		TimingDeviation:     0.051,
		MeanChromaDistance:  0.312,
		TeacherTimes:        []float64{0.0, 0.023, 0.046},
		PitchDiffs:          []float64{1.5, -3.2, 12.0},
		ChromaDistances:     []float64{0.1, 0.3, 0.2},
		Path:                []stats.PathPoint{{I: 0, J: 0}, {I: 1, J: 1}, {I: 2, J: 2}},
	}
}

// TestWriter_Artifacts verifies one Write call produces all four artifacts
// under a directory named after both inputs.
func TestWriter_Artifacts(t *testing.T) {
	writer := NewWriter(t.TempDir())

	dir, err := writer.Write(sampleInput())
	require.NoError(t, err)

	base := filepath.Base(dir)
	assert.True(t, strings.HasPrefix(base, "comparison_"), "dir %q", base)
	assert.Contains(t, base, "teacher_take_vs_student_take")

	for _, name := range []string{
		"performance_analysis.txt",
		"pitch_difference.csv",
		"chroma_distance.csv",
		"alignment_path.csv",
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

// TestWriter_SummaryContent verifies the text summary carries every score
// and detail metric.
func TestWriter_SummaryContent(t *testing.T) {
	writer := NewWriter(t.TempDir())

	dir, err := writer.Write(sampleInput())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "performance_analysis.txt"))
	require.NoError(t, err)
	summary := string(data)

	assert.Contains(t, summary, "Performance Analysis:")
	assert.Contains(t, summary, "Overall Score: 87.3%")
	assert.Contains(t, summary, "Pitch Accuracy: 91.2%")
	assert.Contains(t, summary, "Timing Accuracy: 95.0%")
	assert.Contains(t, summary, "Harmonic Accuracy: 70.5%")
	assert.Contains(t, summary, "Average Pitch Error: 12.4 cents")
	assert.Contains(t, summary, "Maximum Pitch Error: 48.0 cents")
	assert.Contains(t, summary, "Timing Deviation: 0.051")
	assert.Contains(t, summary, "Mean Harmonic Distance: 0.312")
}

// TestWriter_CSVContent verifies the series files have headers and one row
// per data point.
func TestWriter_CSVContent(t *testing.T) {
	writer := NewWriter(t.TempDir())
	in := sampleInput()

	dir, err := writer.Write(in)
	require.NoError(t, err)

	pitch, err := os.ReadFile(filepath.Join(dir, "pitch_difference.csv"))
	require.NoError(t, err)
	pitchLines := strings.Split(strings.TrimSpace(string(pitch)), "\n")
	require.Len(t, pitchLines, len(in.TeacherTimes)+1)
	assert.Equal(t, "teacher_time_seconds,pitch_difference_cents", pitchLines[0])
	assert.Equal(t, "0.000000,1.5000", pitchLines[1])

	path, err := os.ReadFile(filepath.Join(dir, "alignment_path.csv"))
	require.NoError(t, err)
	pathLines := strings.Split(strings.TrimSpace(string(path)), "\n")
	require.Len(t, pathLines, len(in.Path)+1)
	assert.Equal(t, "teacher_frame,student_frame", pathLines[0])
	assert.Equal(t, "2,2", pathLines[3])

	chromaCSV, err := os.ReadFile(filepath.Join(dir, "chroma_distance.csv"))
	require.NoError(t, err)
	chromaLines := strings.Split(strings.TrimSpace(string(chromaCSV)), "\n")
	require.Len(t, chromaLines, len(in.ChromaDistances)+1)
	assert.Equal(t, "path_index,chroma_distance", chromaLines[0])
}

// TestWriter_UniqueDirs verifies repeated comparisons of the same pair land
// in distinct directories.
func TestWriter_UniqueDirs(t *testing.T) {
	writer := NewWriter(t.TempDir())
	in := sampleInput()

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		dir, err := writer.Write(in)
		require.NoError(t, err)
		assert.False(t, seen[dir], "directory %q reused", dir)
		seen[dir] = true
	}
}
