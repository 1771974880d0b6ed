// Package outwriter renders hoopstat results as tables, CSV, JSON or Parquet.
package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/huangsam/hoopstat/internal/contract"
)

// errParquetNeedsFile is returned when parquet output would go to stdout.
var errParquetNeedsFile = errors.New("parquet output requires --output-file")

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeParquetFile runs a Parquet writer against the configured output file.
func writeParquetFile(outputFile string, write func(string) error, successMsg string) error {
	if outputFile == "" {
		return errParquetNeedsFile
	}
	if err := write(outputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// formatStat renders whole numbers without decimals and everything else with fmtFloat.
func formatStat(v float64, fmtFloat func(float64) string) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmtFloat(v)
}

// rawStat renders a statistic at full precision for machine readable output.
func rawStat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// resultLabel colors a W/L result when colors are enabled.
func resultLabel(wl string, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorResult(wl)
	}
	return wl
}

// caption prints a table title, colored when colors are enabled.
func caption(w io.Writer, cfg *contract.Config, format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if cfg.UseColors {
		text = contract.HeaderColor.Sprint(text)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
