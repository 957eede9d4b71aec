// Package output provides report formatters for sort runs.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"code.cloudfoundry.org/bytefmt"

	"github.com/inodb/gvfsort/internal/sorter"
)

// TabWriter writes run records in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Run",
			"Recorded",
			"Status",
			"File",
			"Size",
			"Header_lines",
			"Data_lines",
			"Gzip",
			"Elapsed",
			"Error",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single run record.
func (tw *TabWriter) Write(rec sorter.RunRecord) error {
	runID := rec.RunID
	if len(runID) > 8 {
		runID = runID[:8]
	}

	gz := "-"
	if rec.Compressed {
		gz = "YES"
	}

	errText := "-"
	if rec.Error != "" {
		// Keep one record per line.
		errText = strings.ReplaceAll(rec.Error, "\n", " ")
	}

	values := []string{
		runID,
		rec.RecordedAt.Local().Format(time.DateTime),
		rec.Status,
		rec.Path,
		bytefmt.ByteSize(uint64(rec.Size)),
		fmt.Sprintf("%d", rec.HeaderLines),
		fmt.Sprintf("%d", rec.DataLines),
		gz,
		rec.Duration.Round(time.Microsecond).String(),
		errText,
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
