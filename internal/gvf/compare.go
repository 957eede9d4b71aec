package gvf

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/inodb/gvfsort/internal/chrom"
)

const (
	chromField = 0
	posField   = 3
)

// Key is the sort key of a data line.
type Key struct {
	Ordinal int   // chromosome ordinal from chrom.Table
	Pos     int64 // genomic position from field 3
}

// ParseKey extracts the sort key from a data line.
// Fields are split on runs of whitespace.
func ParseKey(line string, table chrom.Table) (Key, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Key{}, fmt.Errorf("%w: empty line", ErrInvalidInput)
	}
	if len(fields) <= posField {
		return Key{}, fmt.Errorf("%w: expected at least %d fields, found %d",
			ErrInvalidInput, posField+1, len(fields))
	}

	ord, ok := table.Ordinal(fields[chromField])
	if !ok {
		return Key{}, fmt.Errorf("%w: unknown chromosome %q", ErrInvalidInput, fields[chromField])
	}

	pos, err := strconv.ParseInt(fields[posField], 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("%w: invalid position %q", ErrInvalidInput, fields[posField])
	}

	return Key{Ordinal: ord, Pos: pos}, nil
}

// CompareKeys orders by chromosome ordinal, then by position.
func CompareKeys(a, b Key) int {
	if c := cmp.Compare(a.Ordinal, b.Ordinal); c != 0 {
		return c
	}
	return cmp.Compare(a.Pos, b.Pos)
}

// Compare returns -1, 0 or +1 as line a sorts before, with or after line b.
func Compare(a, b string, table chrom.Table) (int, error) {
	ka, err := ParseKey(a, table)
	if err != nil {
		return 0, err
	}
	kb, err := ParseKey(b, table)
	if err != nil {
		return 0, err
	}
	return CompareKeys(ka, kb), nil
}

// keyedLine pairs a line with its parsed key so each line is parsed once.
type keyedLine struct {
	key  Key
	line string
}

// SortData sorts data lines in place by chromosome then position.
// Every line is keyed before anything is reordered, so on error data is
// left untouched. Lines with equal keys keep their input order.
func SortData(data []string, table chrom.Table) error {
	return sortLines(data, table, 1)
}

// sortLines is SortData with ParseError line numbers starting at firstLine.
func sortLines(data []string, table chrom.Table, firstLine int) error {
	keyed, err := keyLines(data, table, firstLine)
	if err != nil {
		return err
	}

	slices.SortStableFunc(keyed, func(a, b keyedLine) int {
		return CompareKeys(a.key, b.key)
	})

	for i, kl := range keyed {
		data[i] = kl.line
	}
	return nil
}

// IsSorted reports whether data is already in chromosome/position order.
func IsSorted(data []string, table chrom.Table) (bool, error) {
	return isSorted(data, table, 1)
}

func isSorted(data []string, table chrom.Table, firstLine int) (bool, error) {
	keyed, err := keyLines(data, table, firstLine)
	if err != nil {
		return false, err
	}
	return slices.IsSortedFunc(keyed, func(a, b keyedLine) int {
		return CompareKeys(a.key, b.key)
	}), nil
}

func keyLines(data []string, table chrom.Table, firstLine int) ([]keyedLine, error) {
	keyed := make([]keyedLine, len(data))
	for i, line := range data {
		k, err := ParseKey(line, table)
		if err != nil {
			return nil, &ParseError{Line: firstLine + i, Err: err}
		}
		keyed[i] = keyedLine{key: k, line: line}
	}
	return keyed, nil
}
