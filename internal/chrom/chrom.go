// Package chrom maps human chromosome labels to their sort order.
package chrom

import "strconv"

// Table maps chromosome labels (e.g. "chr1", "chrX") to a 1-based ordinal.
// A Table is never modified after construction.
type Table struct {
	ordinals map[string]int
}

var defaultTable = newDefaultTable()

// newDefaultTable builds chr1..chr22 = 1..22, chrX = 23, chrY = 24, chrM = 25.
func newDefaultTable() Table {
	m := make(map[string]int, 25)
	for i := 1; i <= 22; i++ {
		m["chr"+strconv.Itoa(i)] = i
	}
	m["chrX"] = 23
	m["chrY"] = 24
	m["chrM"] = 25
	return Table{ordinals: m}
}

// Default returns the process-wide chromosome table.
func Default() Table {
	return defaultTable
}

// Ordinal returns the sort ordinal for label and whether the label is known.
func (t Table) Ordinal(label string) (int, bool) {
	n, ok := t.ordinals[label]
	return n, ok
}

// Len returns the number of labels in the table.
func (t Table) Len() int {
	return len(t.ordinals)
}

// Labels returns all labels in ordinal order.
func (t Table) Labels() []string {
	labels := make([]string, len(t.ordinals))
	for label, n := range t.ordinals {
		labels[n-1] = label
	}
	return labels
}
