// Package main benchmarks the hoopstat CLI with and without the response cache.
// Each command runs several times per season: first with --cache-backend none,
// then with sqlite where the first successful run is cold and the rest are warm.
// Results are written as CSV for documentation.
//
// Prerequisites:
// - hoopstat binary installed and available in PATH
// - Network access to stats.nba.com
//
// Usage: go run benchmark/main.go [season ...]
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Season      string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Seasons     []string
	Commands    map[string][]string
}

func main() {
	seasons := os.Args[1:]
	if len(seasons) == 0 {
		seasons = []string{"2022-23", "2023-24"}
	}

	config := BenchmarkConfig{
		Timeout:     5 * time.Minute,
		NoCacheRuns: 2,
		CacheRuns:   4,
		Seasons:     seasons,
		Commands: map[string][]string{
			"games":     {"games", "--output", "csv"},
			"boxscores": {"boxscores", "--max-games", "3", "--output", "csv"},
		},
	}

	if _, err := exec.LookPath("hoopstat"); err != nil {
		fmt.Printf("Prerequisites check failed: hoopstat binary not found in PATH\n")
		os.Exit(1)
	}

	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("hoopstat", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks executes every command for every configured season.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d seasons, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Seasons), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, season := range config.Seasons {
		for _, command := range []string{"games", "boxscores"} {
			args := slices.Concat(config.Commands[command], []string{"--season", season})
			results = append(results, runBenchmarkSuite(config, season, command, args))
		}
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache phases for a command.
func runBenchmarkSuite(config BenchmarkConfig, season, command string, args []string) BenchmarkResult {
	fmt.Printf("Running %s for %s\n", command, season)

	_, noCache := runBenchmark(config, args, "none", config.NoCacheRuns)
	noCacheAvg := formatAverage(noCache)

	cold, warm := runBenchmark(config, args, "sqlite", config.CacheRuns)
	coldTimeStr := "TIMEOUT"
	if cold > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", cold)
	}
	warmAvg := formatAverage(warm)

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Season:      season,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes hoopstat numRuns times and returns the first successful time and the rest.
func runBenchmark(config BenchmarkConfig, args []string, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args = append([]string{}, args...)
	args = append(args, "--cache-backend", cacheBackend)

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "hoopstat", args...).CombinedOutput()
		elapsed := time.Since(start)
		cancel()

		if err == nil && isSuccess(output) {
			times = append(times, elapsed.Seconds())
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func formatAverage(times []float64) string {
	if len(times) == 0 {
		return "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// isSuccess checks that the CSV output carries a header row.
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "index,")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/hoopstat_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"season", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Season, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"games", "boxscores"} {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s: No-cache: %s, Cold: %s, Warm: %s\n", result.Season, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
