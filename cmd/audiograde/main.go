package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/practica/audiograde/compare"
	"github.com/practica/audiograde/logging"
	"github.com/practica/audiograde/report"
)

func main() {
	teacherPath := flag.String("teacher", "", "path to the reference (teacher) recording")
	studentPath := flag.String("student", "", "path to the learner (student) recording")
	reportDir := flag.String("report-dir", "", "directory for diagnostic artifacts (empty disables artifacts)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *teacherPath == "" || *studentPath == "" {
		fmt.Fprintln(os.Stderr, "usage: audiograde -teacher <file> -student <file> [-report-dir <dir>] [-v]")
		os.Exit(2)
	}

	// Optional .env overrides; absence is not an error
	_ = godotenv.Load()

	if *verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	config := compare.DefaultConfig()
	if v := os.Getenv("AUDIOGRADE_FFMPEG"); v != "" {
		config.Decoder.FFmpegPath = v
	}
	if v := os.Getenv("AUDIOGRADE_FFPROBE"); v != "" {
		config.Decoder.FFprobePath = v
	}

	dir := *reportDir
	if dir == "" {
		dir = os.Getenv("AUDIOGRADE_REPORT_DIR")
	}

	comparator := compare.NewComparator(config)
	if dir != "" {
		comparator.Reporter = report.NewWriter(dir)
	}

	scoreReport, err := comparator.CompareFiles(*teacherPath, *studentPath)
	if err != nil {
		logging.Error(err, "Comparison failed")
		os.Exit(1)
	}

	out, err := json.MarshalIndent(scoreReport, "", "  ")
	if err != nil {
		logging.Error(err, "Failed to encode report")
		os.Exit(1)
	}

	fmt.Println(string(out))
}
