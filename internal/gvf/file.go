// Package gvf reads, sorts and rewrites GVF variant files.
package gvf

import (
	"bufio"
	"fmt"
	"io"
	"os"

	gzip "github.com/klauspost/pgzip"

	"github.com/inodb/gvfsort/internal/chrom"
)

// DefaultMarker is the first byte of a header line.
const DefaultMarker byte = '#'

const bufferSize = 1 << 20

// File is a GVF file split into its header block and data block.
// Lines keep their original terminators.
type File struct {
	Path       string
	Header     []string
	Data       []string
	Compressed bool // input was gzip-compressed; Write compresses again
}

// ReadFile reads the whole file at path and partitions it at the first
// line that does not start with marker.
// Gzipped files are detected by their magic bytes and decompressed.
func ReadFile(path string, marker byte) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	f := &File{Path: path}

	br := bufio.NewReaderSize(file, bufferSize)
	var r io.Reader = br

	// Check for gzip magic number (0x1f, 0x8b)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, &IOError{Op: "open gzip", Path: path, Err: err}
		}
		defer gz.Close()
		r = gz
		f.Compressed = true
	}

	lines, err := ReadLines(r)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	f.Header, f.Data = Partition(lines, marker)
	return f, nil
}

// ReadLines reads all lines from r, keeping line terminators.
// A final line without a terminator is returned as is.
func ReadLines(r io.Reader) ([]string, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, bufferSize)
	}

	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", len(lines)+1, err)
		}
	}
}

// Partition splits lines into the leading header block and the data block.
// The data block starts at the first line whose first byte is not marker
// and runs to the end, so header-like lines after it count as data.
func Partition(lines []string, marker byte) (header, data []string) {
	split := len(lines)
	for i, line := range lines {
		if line == "" || line[0] != marker {
			split = i
			break
		}
	}
	return lines[:split:split], lines[split:]
}

// Sort sorts the data block in place. ParseError line numbers are 1-based
// line numbers within the file.
func (f *File) Sort(table chrom.Table) error {
	return sortLines(f.Data, table, len(f.Header)+1)
}

// IsSorted reports whether the data block is already sorted.
func (f *File) IsSorted(table chrom.Table) (bool, error) {
	return isSorted(f.Data, table, len(f.Header)+1)
}

// Write truncates the file at f.Path and writes the header block followed by
// the data block. The file must already exist. There is no temporary copy:
// an interrupted write leaves a truncated file.
func (f *File) Write() error {
	file, err := os.OpenFile(f.Path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return &IOError{Op: "open for write", Path: f.Path, Err: err}
	}

	if err := f.writeLines(file); err != nil {
		file.Close()
		return &IOError{Op: "write", Path: f.Path, Err: err}
	}

	if err := file.Close(); err != nil {
		return &IOError{Op: "close", Path: f.Path, Err: err}
	}
	return nil
}

// WriteTo writes the header and data blocks to w, uncompressed.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, block := range [][]string{f.Header, f.Data} {
		for _, line := range block {
			m, err := io.WriteString(w, line)
			n += int64(m)
			if err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

func (f *File) writeLines(w io.Writer) error {
	var gz *gzip.Writer
	if f.Compressed {
		gz = gzip.NewWriter(w)
		w = gz
	}

	bw := bufio.NewWriterSize(w, bufferSize)
	if _, err := f.WriteTo(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	if gz != nil {
		return gz.Close()
	}
	return nil
}
