package sorter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inodb/gvfsort/internal/gvf"
)

// Mode selects how the working tree is laid out.
type Mode string

const (
	// ModeTree sorts every directory under case/, then control/.
	ModeTree Mode = "tree"
	// ModeDir sorts the root directory itself.
	ModeDir Mode = "dir"
)

// Directory names under the root in tree mode.
const (
	CaseDir    = "case"
	ControlDir = "control"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTree, ModeDir:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeTree, ModeDir)
}

// Run sorts the tree rooted at root according to mode.
func Run(ctx context.Context, s *Sorter, root string, mode Mode) ([]FileResult, error) {
	switch mode {
	case ModeTree:
		return RunTree(ctx, s, root)
	case ModeDir:
		return RunSingle(ctx, s, root)
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}

// RunTree sorts each immediate subdirectory of root/case in listing order,
// then root/control. It stops at the first error.
func RunTree(ctx context.Context, s *Sorter, root string) ([]FileResult, error) {
	caseRoot := filepath.Join(root, CaseDir)
	entries, err := os.ReadDir(caseRoot)
	if err != nil {
		return nil, &gvf.IOError{Op: "read dir", Path: caseRoot, Err: err}
	}

	var results []FileResult
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		res, err := s.SortDir(ctx, filepath.Join(caseRoot, e.Name()))
		results = append(results, res...)
		if err != nil {
			return results, err
		}
	}

	res, err := s.SortDir(ctx, filepath.Join(root, ControlDir))
	results = append(results, res...)
	return results, err
}

// RunSingle sorts the files directly under root.
func RunSingle(ctx context.Context, s *Sorter, root string) ([]FileResult, error) {
	return s.SortDir(ctx, root)
}
