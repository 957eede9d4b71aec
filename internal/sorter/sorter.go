// Package sorter sorts the GVF files of sample directories in place.
package sorter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inodb/gvfsort/internal/chrom"
	"github.com/inodb/gvfsort/internal/gvf"
)

// DefaultExtension is the extension of files picked up in a directory.
const DefaultExtension = ".gvf"

// Options controls which files are sorted and how.
type Options struct {
	Extension string // exact, case-sensitive match against filepath.Ext
	Marker    byte   // first byte of header lines
	CheckOnly bool   // report sort order without rewriting files
}

// FileResult describes one processed file.
type FileResult struct {
	Fingerprint
	HeaderLines   int
	DataLines     int
	Compressed    bool
	AlreadySorted bool
	Duration      time.Duration
}

// Recorder persists per-file outcomes, e.g. to the run ledger.
type Recorder interface {
	Record(ctx context.Context, rec RunRecord) error
}

// Sorter sorts GVF files directory by directory.
type Sorter struct {
	opts     Options
	table    chrom.Table
	runID    string
	out      io.Writer
	logger   *zap.Logger
	recorder Recorder
}

// New creates a Sorter. Zero option values fall back to DefaultExtension
// and gvf.DefaultMarker.
func New(opts Options) *Sorter {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if opts.Marker == 0 {
		opts.Marker = gvf.DefaultMarker
	}
	return &Sorter{
		opts:   opts,
		table:  chrom.Default(),
		runID:  uuid.NewString(),
		out:    io.Discard,
		logger: zap.NewNop(),
	}
}

// SetOutput sets where progress messages are printed.
func (s *Sorter) SetOutput(w io.Writer) {
	s.out = w
}

// SetLogger sets the logger for diagnostics.
func (s *Sorter) SetLogger(l *zap.Logger) {
	s.logger = l
}

// SetRecorder sets the recorder that receives every file outcome.
func (s *Sorter) SetRecorder(r Recorder) {
	s.recorder = r
}

// RunID identifies this Sorter's records in the ledger.
func (s *Sorter) RunID() string {
	return s.runID
}

// Options returns the effective options.
func (s *Sorter) Options() Options {
	return s.opts
}

// SortDir processes every immediate child of dir whose extension matches.
// Subdirectories are skipped. The first error stops processing; files
// already rewritten stay rewritten.
func (s *Sorter) SortDir(ctx context.Context, dir string) ([]FileResult, error) {
	fmt.Fprintln(s.out, dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &gvf.IOError{Op: "read dir", Path: dir, Err: err}
	}

	var results []FileResult
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != s.opts.Extension {
			continue
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		fmt.Fprintf(s.out, "processing %s\n", e.Name())
		res, err := s.SortFile(ctx, filepath.Join(dir, e.Name()))
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	fmt.Fprintln(s.out, "done!")
	return results, nil
}

// SortFile reads path, sorts its data block and rewrites it with the header
// block first. In check-only mode the file is never written.
func (s *Sorter) SortFile(ctx context.Context, path string) (FileResult, error) {
	start := time.Now()

	res, err := s.sortFile(path)
	res.Duration = time.Since(start)
	s.record(ctx, res, err)
	if err != nil {
		return res, fmt.Errorf("sort %s: %w", path, err)
	}

	s.logger.Debug("sorted file",
		zap.String("path", path),
		zap.String("size", bytefmt.ByteSize(uint64(res.Size))),
		zap.Int("header_lines", res.HeaderLines),
		zap.Int("data_lines", res.DataLines),
		zap.Bool("already_sorted", res.AlreadySorted),
		zap.Duration("elapsed", res.Duration))

	return res, nil
}

func (s *Sorter) sortFile(path string) (FileResult, error) {
	fp, err := StatFile(path)
	if err != nil {
		return FileResult{Fingerprint: Fingerprint{Path: path}}, &gvf.IOError{Op: "stat", Path: path, Err: err}
	}
	res := FileResult{Fingerprint: fp}

	f, err := gvf.ReadFile(path, s.opts.Marker)
	if err != nil {
		return res, err
	}
	res.HeaderLines = len(f.Header)
	res.DataLines = len(f.Data)
	res.Compressed = f.Compressed

	res.AlreadySorted, err = f.IsSorted(s.table)
	if err != nil {
		return res, err
	}
	if s.opts.CheckOnly {
		return res, nil
	}

	if err := f.Sort(s.table); err != nil {
		return res, err
	}
	if err := f.Write(); err != nil {
		return res, err
	}
	return res, nil
}

func (s *Sorter) record(ctx context.Context, res FileResult, sortErr error) {
	if s.recorder == nil {
		return
	}
	rec := newRunRecord(s.runID, s.opts.CheckOnly, res, sortErr)
	if err := s.recorder.Record(ctx, rec); err != nil {
		s.logger.Warn("failed to record run",
			zap.String("path", res.Path),
			zap.Error(err))
	}
}
