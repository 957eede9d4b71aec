package sorter

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/gvfsort/internal/gvf"
)

func TestRunTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, CaseDir, "0.1", "s1.gvf"), unsortedGVF)
	writeFile(t, filepath.Join(root, CaseDir, "0.5", "s2.gvf"), unsortedGVF)
	writeFile(t, filepath.Join(root, CaseDir, "notes.txt"), "not a directory\n")
	writeFile(t, filepath.Join(root, ControlDir, "ctl.gvf"), unsortedGVF)
	writeFile(t, filepath.Join(root, "top.gvf"), unsortedGVF)

	var out bytes.Buffer
	s := New(Options{})
	s.SetOutput(&out)

	results, err := Run(context.Background(), s, root, ModeTree)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Case directories come first, control last.
	assert.Equal(t, filepath.Join(root, ControlDir, "ctl.gvf"), results[2].Path)

	for _, p := range []string{
		filepath.Join(root, CaseDir, "0.1", "s1.gvf"),
		filepath.Join(root, CaseDir, "0.5", "s2.gvf"),
		filepath.Join(root, ControlDir, "ctl.gvf"),
	} {
		assert.Equal(t, sortedGVF, readFile(t, p), p)
	}
	assert.Equal(t, unsortedGVF, readFile(t, filepath.Join(root, "top.gvf")))

	assert.Equal(t, 3, strings.Count(out.String(), "done!"))
	assert.True(t, strings.HasSuffix(out.String(), filepath.Join(root, ControlDir)+"\nprocessing ctl.gvf\ndone!\n"))
}

func TestRunTree_MissingCase(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ControlDir, "ctl.gvf"), unsortedGVF)

	_, err := RunTree(context.Background(), New(Options{}), root)
	require.Error(t, err)
	assert.ErrorIs(t, err, gvf.ErrIO)
	assert.Equal(t, unsortedGVF, readFile(t, filepath.Join(root, ControlDir, "ctl.gvf")))
}

func TestRunTree_FailsFast(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, CaseDir, "a", "bad.gvf"), "chrQ\tx\tx\t1\n")
	writeFile(t, filepath.Join(root, ControlDir, "ctl.gvf"), unsortedGVF)

	_, err := RunTree(context.Background(), New(Options{}), root)
	require.Error(t, err)
	assert.ErrorIs(t, err, gvf.ErrInvalidInput)
	assert.Equal(t, unsortedGVF, readFile(t, filepath.Join(root, ControlDir, "ctl.gvf")))
}

func TestRunSingle(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.gvf"), unsortedGVF)
	writeFile(t, filepath.Join(root, CaseDir, "a", "s.gvf"), unsortedGVF)

	results, err := Run(context.Background(), New(Options{}), root, ModeDir)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, sortedGVF, readFile(t, filepath.Join(root, "top.gvf")))
	assert.Equal(t, unsortedGVF, readFile(t, filepath.Join(root, CaseDir, "a", "s.gvf")))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("tree")
	require.NoError(t, err)
	assert.Equal(t, ModeTree, m)

	m, err = ParseMode("dir")
	require.NoError(t, err)
	assert.Equal(t, ModeDir, m)

	_, err = ParseMode("flat")
	assert.Error(t, err)
}
