package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/practica/audiograde/algorithms/stats"
	"github.com/practica/audiograde/logging"
)

// Input is everything the writer needs to render a comparison's artifacts
type Input struct {
	TeacherName string
	StudentName string

	OverallScore     float64
	PitchAccuracy    float64
	TimingAccuracy   float64
	HarmonicAccuracy float64

	MeanPitchErrorCents float64
	MaxPitchErrorCents  float64
	TimingDeviation     float64
	MeanChromaDistance  float64

	TeacherTimes    []float64
	PitchDiffs      []float64
	ChromaDistances []float64
	Path            []stats.PathPoint
}

// Writer persists human-readable comparison artifacts: a text summary plus
// CSV series for pitch difference, chroma distance, and the alignment path.
//
// Every call gets its own directory named with a timestamp, both input file
// stems, and a random UUID suffix, so concurrent comparisons of identical
// inputs never collide.
type Writer struct {
	baseDir string
}

// NewWriter creates a writer rooted at baseDir. The directory is created on
// first use.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Write renders all artifacts for one comparison and returns the directory
// they were written to
func (w *Writer) Write(in *Input) (string, error) {
	dir, err := w.createResultsDir(in.TeacherName, in.StudentName)
	if err != nil {
		return "", err
	}

	logger := logging.WithFields(logging.Fields{
		"component":   "report_writer",
		"results_dir": dir,
	})

	if err := w.writeSummary(dir, in); err != nil {
		return "", err
	}
	if err := w.writePitchDifference(dir, in); err != nil {
		return "", err
	}
	if err := w.writeChromaDistance(dir, in); err != nil {
		return "", err
	}
	if err := w.writeAlignmentPath(dir, in); err != nil {
		return "", err
	}

	logger.Debug("Report artifacts written")

	return dir, nil
}

// createResultsDir builds the unique per-call artifact directory
func (w *Writer) createResultsDir(teacherName, studentName string) (string, error) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	teacherStem := fileStem(teacherName)
	studentStem := fileStem(studentName)
	suffix := strings.Split(uuid.NewString(), "-")[0]

	dirName := fmt.Sprintf("comparison_%s_%s_vs_%s_%s", timestamp, teacherStem, studentStem, suffix)
	dir := filepath.Join(w.baseDir, dirName)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	return dir, nil
}

func (w *Writer) writeSummary(dir string, in *Input) error {
	var b strings.Builder

	b.WriteString("Performance Analysis:\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Overall Score: %.1f%%\n", in.OverallScore)
	b.WriteString("\nComponent Scores:\n")
	fmt.Fprintf(&b, "Pitch Accuracy: %.1f%%\n", in.PitchAccuracy)
	fmt.Fprintf(&b, "Timing Accuracy: %.1f%%\n", in.TimingAccuracy)
	fmt.Fprintf(&b, "Harmonic Accuracy: %.1f%%\n", in.HarmonicAccuracy)
	b.WriteString("\nDetailed Metrics:\n")
	fmt.Fprintf(&b, "Average Pitch Error: %.1f cents\n", in.MeanPitchErrorCents)
	fmt.Fprintf(&b, "Maximum Pitch Error: %.1f cents\n", in.MaxPitchErrorCents)
	fmt.Fprintf(&b, "Timing Deviation: %.3f\n", in.TimingDeviation)
	fmt.Fprintf(&b, "Mean Harmonic Distance: %.3f\n", in.MeanChromaDistance)

	return os.WriteFile(filepath.Join(dir, "performance_analysis.txt"), []byte(b.String()), 0o644)
}

func (w *Writer) writePitchDifference(dir string, in *Input) error {
	var b strings.Builder

	b.WriteString("teacher_time_seconds,pitch_difference_cents\n")
	for i, t := range in.TeacherTimes {
		fmt.Fprintf(&b, "%.6f,%.4f\n", t, in.PitchDiffs[i])
	}

	return os.WriteFile(filepath.Join(dir, "pitch_difference.csv"), []byte(b.String()), 0o644)
}

func (w *Writer) writeChromaDistance(dir string, in *Input) error {
	var b strings.Builder

	b.WriteString("path_index,chroma_distance\n")
	for i, d := range in.ChromaDistances {
		fmt.Fprintf(&b, "%d,%.6f\n", i, d)
	}

	return os.WriteFile(filepath.Join(dir, "chroma_distance.csv"), []byte(b.String()), 0o644)
}

func (w *Writer) writeAlignmentPath(dir string, in *Input) error {
	var b strings.Builder

	b.WriteString("teacher_frame,student_frame\n")
	for _, p := range in.Path {
		fmt.Fprintf(&b, "%d,%d\n", p.I, p.J)
	}

	return os.WriteFile(filepath.Join(dir, "alignment_path.csv"), []byte(b.String()), 0o644)
}

// fileStem returns the base name without its extension
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
