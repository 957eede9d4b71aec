package output

import (
	"fmt"
	"io"

	"code.cloudfoundry.org/bytefmt"

	"github.com/inodb/gvfsort/internal/sorter"
)

// Summary aggregates the results of one sort or check run.
type Summary struct {
	Files     int
	Unsorted  []string // paths whose data block was out of order
	DataLines int
	Bytes     int64
}

// Summarize builds a Summary from file results.
func Summarize(results []sorter.FileResult) Summary {
	var s Summary
	for _, r := range results {
		s.Files++
		s.DataLines += r.DataLines
		s.Bytes += r.Size
		if !r.AlreadySorted {
			s.Unsorted = append(s.Unsorted, r.Path)
		}
	}
	return s
}

// WriteSortSummary writes the completion message of a sort run.
func WriteSortSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "Sorted %d files (%d data lines, %s), %d were out of order\n",
		s.Files, s.DataLines, bytefmt.ByteSize(uint64(s.Bytes)), len(s.Unsorted))
}

// WriteCheckSummary lists unsorted files and writes the completion message
// of a check run.
func WriteCheckSummary(w io.Writer, s Summary) {
	for _, p := range s.Unsorted {
		fmt.Fprintf(w, "unsorted\t%s\n", p)
	}
	fmt.Fprintf(w, "Checked %d files, %d unsorted\n", s.Files, len(s.Unsorted))
}
