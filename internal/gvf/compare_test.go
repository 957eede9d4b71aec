package gvf

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/gvfsort/internal/chrom"
)

func dataLine(chr string, pos int) string {
	return fmt.Sprintf("%s\tsrc\tSNV\t%d\t%d\t.\t+\t.\tID=%s_%d\n", chr, pos, pos, chr, pos)
}

func TestParseKey(t *testing.T) {
	table := chrom.Default()

	k, err := ParseKey("chrX\tx\tx\t12345\n", table)
	require.NoError(t, err)
	assert.Equal(t, Key{Ordinal: 23, Pos: 12345}, k)

	// Any whitespace run separates fields.
	k, err = ParseKey("chr7   a b\t 99 rest", table)
	require.NoError(t, err)
	assert.Equal(t, Key{Ordinal: 7, Pos: 99}, k)
}

func TestParseKey_InvalidInput(t *testing.T) {
	table := chrom.Default()

	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"blank", "\n"},
		{"too few fields", "chr1\tx\tx\n"},
		{"unknown chromosome", "chrZ\tx\tx\t100\n"},
		{"no chr prefix", "1\tx\tx\t100\n"},
		{"non-integer position", "chr1\tx\tx\tabc\n"},
		{"float position", "chr1\tx\tx\t1.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKey(tt.line, table)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCompare_ChromosomeOrder(t *testing.T) {
	table := chrom.Default()
	labels := table.Labels()

	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			// Position of the earlier chromosome is larger on purpose.
			a := dataLine(labels[i], 900000)
			b := dataLine(labels[j], 1)

			c, err := Compare(a, b, table)
			require.NoError(t, err)
			assert.Equal(t, -1, c, "%s should sort before %s", labels[i], labels[j])

			c, err = Compare(b, a, table)
			require.NoError(t, err)
			assert.Equal(t, 1, c)
		}
	}
}

func TestCompare_PositionOrder(t *testing.T) {
	table := chrom.Default()

	c, err := Compare(dataLine("chr3", 100), dataLine("chr3", 2000), table)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = Compare(dataLine("chr3", 2000), dataLine("chr3", 100), table)
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = Compare("chr3\ta\tb\t5\n", "chr3\tc\td\t5\n", table)
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}

func TestCompare_NumericNotLexical(t *testing.T) {
	table := chrom.Default()

	// chr10 sorts after chr9 and 1000 after 200.
	c, err := Compare(dataLine("chr10", 1), dataLine("chr9", 1), table)
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = Compare(dataLine("chr1", 200), dataLine("chr1", 1000), table)
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestCompare_Errors(t *testing.T) {
	table := chrom.Default()

	_, err := Compare("", dataLine("chr1", 1), table)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Compare(dataLine("chr1", 1), "chrZ\tx\tx\t1\n", table)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSortData_Scenario(t *testing.T) {
	data := []string{
		"chr2\tx\tx\t500\n",
		"chr1\tx\tx\t900\n",
		"chr1\tx\tx\t100\n",
	}

	require.NoError(t, SortData(data, chrom.Default()))
	assert.Equal(t, []string{
		"chr1\tx\tx\t100\n",
		"chr1\tx\tx\t900\n",
		"chr2\tx\tx\t500\n",
	}, data)
}

func TestSortData_Idempotent(t *testing.T) {
	table := chrom.Default()
	data := []string{
		dataLine("chrM", 10),
		dataLine("chr1", 30),
		dataLine("chrX", 5),
		dataLine("chr1", 2),
		dataLine("chr22", 7),
	}

	require.NoError(t, SortData(data, table))
	first := slices.Clone(data)

	require.NoError(t, SortData(data, table))
	assert.Equal(t, first, data)

	sorted, err := IsSorted(data, table)
	require.NoError(t, err)
	assert.True(t, sorted)
}

func TestSortData_Permutation(t *testing.T) {
	table := chrom.Default()
	data := []string{
		dataLine("chr5", 3),
		dataLine("chr2", 8),
		dataLine("chr5", 1),
		dataLine("chrY", 4),
		dataLine("chr2", 8),
	}
	orig := slices.Clone(data)

	require.NoError(t, SortData(data, table))
	assert.ElementsMatch(t, orig, data)
}

func TestSortData_StableForEqualKeys(t *testing.T) {
	data := []string{
		"chr1\tb\tx\t10\n",
		"chr1\ta\tx\t5\n",
		"chr1\tc\tx\t10\n",
		"chr1\td\tx\t10\n",
	}

	require.NoError(t, SortData(data, chrom.Default()))
	assert.Equal(t, []string{
		"chr1\ta\tx\t5\n",
		"chr1\tb\tx\t10\n",
		"chr1\tc\tx\t10\n",
		"chr1\td\tx\t10\n",
	}, data)
}

func TestSortData_ErrorLeavesDataUntouched(t *testing.T) {
	data := []string{
		"chr2\tx\tx\t500\n",
		"chr1\tx\tx\t900\n",
		"chrZ\tx\tx\t100\n",
	}
	orig := slices.Clone(data)

	err := SortData(data, chrom.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, orig, data)
}

func TestSortData_Empty(t *testing.T) {
	require.NoError(t, SortData(nil, chrom.Default()))

	sorted, err := IsSorted(nil, chrom.Default())
	require.NoError(t, err)
	assert.True(t, sorted)
}

func TestIsSorted_Unsorted(t *testing.T) {
	sorted, err := IsSorted([]string{dataLine("chr2", 1), dataLine("chr1", 1)}, chrom.Default())
	require.NoError(t, err)
	assert.False(t, sorted)
}
