// Package results exports per-trial benchmark timings as Parquet.
package results

import (
	"fmt"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/eunmann/membench/pkg/fileutil"
)

// Row is one outer trial of one benchmark run.
type Row struct {
	RunID      string `parquet:"run_id"`
	Benchmark  string `parquet:"benchmark"`
	Strategy   string `parquet:"strategy"`
	Trial      int32  `parquet:"trial"`
	SubTrials  int64  `parquet:"subtrials"`
	ElapsedNs  int64  `parquet:"elapsed_ns"`
	AverageNs  int64  `parquet:"average_ns"`
	AllocBytes int64  `parquet:"alloc_bytes"`
	Verdict    string `parquet:"verdict"`
	StartedAt  int64  `parquet:"started_unix_ms"`
}

// Meta describes the run every row belongs to.
type Meta struct {
	RunID     string
	Benchmark string
	Strategy  string
	SubTrials int
	StartedAt time.Time
}

// Rows builds one row per elapsed trial duration.
func Rows(meta Meta, elapsed []time.Duration, average time.Duration, allocBytes uint64, verdict string) []Row {
	rows := make([]Row, len(elapsed))
	for i, d := range elapsed {
		rows[i] = Row{
			RunID:      meta.RunID,
			Benchmark:  meta.Benchmark,
			Strategy:   meta.Strategy,
			Trial:      int32(i),
			SubTrials:  int64(meta.SubTrials),
			ElapsedNs:  d.Nanoseconds(),
			AverageNs:  average.Nanoseconds(),
			AllocBytes: int64(allocBytes),
			Verdict:    verdict,
			StartedAt:  meta.StartedAt.UnixMilli(),
		}
	}
	return rows
}

// Write replaces path with a Parquet file holding rows.
func Write(path string, rows []Row) error {
	err := fileutil.WriteTmpThenMove(path, func(tmpPath string) error {
		return parquet.WriteFile(tmpPath, rows)
	})
	if err != nil {
		return fmt.Errorf("write results %s: %w", path, err)
	}
	return nil
}

// Read loads rows previously written by Write.
func Read(path string) ([]Row, error) {
	rows, err := parquet.ReadFile[Row](path)
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", path, err)
	}
	return rows, nil
}
