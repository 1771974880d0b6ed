package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/internal/parquet"
	"github.com/huangsam/hoopstat/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteTimeAxisResults outputs elapsed game minutes, dispatching based on the output format configured.
func WriteTimeAxisResults(points []schema.TimeAxisPoint, cfg *contract.Config, duration time.Duration) error {
	if points == nil {
		points = []schema.TimeAxisPoint{}
	}
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, points)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTimeAxisCSV(w, points, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteTimeAxisParquet(points, path)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTimeAxisTable(w, points, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

func writeTimeAxisCSV(w io.Writer, points []schema.TimeAxisPoint, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"clock", "period", "elapsed_minutes"}, func(cw *csv.Writer) error {
		for _, p := range points {
			if err := cw.Write([]string{p.Clock, strconv.Itoa(p.Period), fmtFloat(p.ElapsedMinutes)}); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeTimeAxisTable(w io.Writer, points []schema.TimeAxisPoint, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Clock", "Period", "Elapsed"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(points))
	for _, p := range points {
		data = append(data, []string{p.Clock, strconv.Itoa(p.Period), fmtFloat(p.ElapsedMinutes)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Converted %d clock readings in %v\n", len(points), duration)
	return err
}
