package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/process"
)

const (
	benchmarkLogName = "benchmark_results.csv"
	runLogName       = "run_log.txt"
)

// BatchRunner drives the matching core over a list of user files against one
// shared restaurant catalog, collecting timing and memory figures per file.
type BatchRunner struct {
	RestaurantSource string
	OutputDir        string
	StaticTime       string
	Opts             Options

	logger  Logger
	records []BenchmarkRecord
}

func NewBatchRunner(restaurantSource, outputDir, staticTime string, opts Options) *BatchRunner {
	return &BatchRunner{
		RestaurantSource: restaurantSource,
		OutputDir:        outputDir,
		StaticTime:       staticTime,
		Opts:             opts,
	}
}

// Run loads the catalog once, filters it to the restaurants open at the
// configured instant, then processes each user file in turn. A file's failure
// aborts the run; an instant with no open restaurants is only a notice, the
// files still produce (empty) runs and benchmark rows.
func (b *BatchRunner) Run(userFiles []string) error {
	totalStart := time.Now()
	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	instant, err := parseTimeOfDay(b.StaticTime)
	if err != nil {
		return fmt.Errorf("invalid static time %q: %w", b.StaticTime, err)
	}

	restaurants, err := b.loadRestaurants()
	if err != nil {
		return err
	}
	set := FilterOpen(restaurants, instant)
	if set.Empty() {
		msg := fmt.Sprintf("no open restaurants at %s", b.StaticTime)
		log.Print(msg)
		b.logger.Append(msg)
	}

	for _, userFile := range userFiles {
		if err := b.runFile(userFile, set); err != nil {
			return err
		}
	}

	log.Printf("total time: %s", time.Since(totalStart).Round(10*time.Millisecond))
	if err := b.writeBenchmarkLog(uuid.NewString()); err != nil {
		return err
	}
	return b.logger.WriteFile(filepath.Join(b.OutputDir, runLogName))
}

func (b *BatchRunner) loadRestaurants() ([]Restaurant, error) {
	f, err := openInput(b.RestaurantSource)
	if err != nil {
		return nil, fmt.Errorf("opening restaurant catalog: %w", err)
	}
	defer f.Close()
	restaurants, err := readRestaurants(f, &b.logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.RestaurantSource, err)
	}
	return restaurants, nil
}

// runFile matches one user file and records its benchmark row. The result
// file is only written when the run produced rows, matching the historical
// behavior where an empty result means no output file at all.
func (b *BatchRunner) runFile(userFile string, set *OpenSet) error {
	start := time.Now()
	memBefore := rssMB()

	f, err := openInput(userFile)
	if err != nil {
		return fmt.Errorf("opening user file: %w", err)
	}
	users, err := readUsers(f, &b.logger)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", userFile, err)
	}

	results := Run(users, set, b.Opts)
	memAfter := rssMB()
	elapsed := time.Since(start)

	totalMatches := 0
	for _, res := range results {
		totalMatches += res.MatchCount
	}

	outputFile := "None"
	if len(results) > 0 {
		outputFile = strings.TrimSuffix(filepath.Base(userFile), filepath.Ext(userFile)) + "_results.csv"
		out, err := os.Create(filepath.Join(b.OutputDir, outputFile))
		if err != nil {
			return fmt.Errorf("creating result file: %w", err)
		}
		err = writeResults(out, results)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", outputFile, err)
		}
	}

	b.records = append(b.records, BenchmarkRecord{
		UserFile:       filepath.Base(userFile),
		UserCount:      len(users),
		TimeTakenSecs:  elapsed.Seconds(),
		MemoryMBBefore: memBefore,
		MemoryMBAfter:  memAfter,
		MatchedRows:    len(results),
		TotalMatches:   totalMatches,
		OutputFile:     outputFile,
	})
	log.Printf("%s: %d users, %d result rows in %s",
		filepath.Base(userFile), len(users), len(results), elapsed.Round(time.Millisecond))
	return nil
}

func (b *BatchRunner) writeBenchmarkLog(runID string) error {
	path := filepath.Join(b.OutputDir, benchmarkLogName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating benchmark log: %w", err)
	}
	err = writeBenchmarks(f, runID, b.records)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing benchmark log: %w", err)
	}
	log.Printf("benchmark log saved to %s", path)
	return nil
}

// rssMB samples this process's resident set size in megabytes. A sampling
// problem shows up as a zero reading, it never fails the run.
func rssMB() float64 {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	info, err := proc.MemoryInfo()
	if err != nil || info == nil {
		return 0
	}
	return float64(info.RSS) / (1 << 20)
}
