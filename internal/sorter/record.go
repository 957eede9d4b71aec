package sorter

import (
	"os"
	"time"
)

// Run record statuses.
const (
	StatusSorted   = "sorted"
	StatusInOrder  = "in_order"
	StatusUnsorted = "unsorted"
	StatusFailed   = "failed"
)

// Fingerprint holds stat-based identity for a file before it is rewritten.
type Fingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a Fingerprint from an on-disk file.
func StatFile(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// RunRecord is one ledger row: a file outcome within a run.
type RunRecord struct {
	RunID      string
	RecordedAt time.Time
	CheckOnly  bool
	Status     string
	Error      string
	FileResult
}

func newRunRecord(runID string, checkOnly bool, res FileResult, err error) RunRecord {
	rec := RunRecord{
		RunID:      runID,
		RecordedAt: time.Now(),
		CheckOnly:  checkOnly,
		FileResult: res,
	}

	switch {
	case err != nil:
		rec.Status = StatusFailed
		rec.Error = err.Error()
	case checkOnly && !res.AlreadySorted:
		rec.Status = StatusUnsorted
	case checkOnly:
		rec.Status = StatusInOrder
	default:
		rec.Status = StatusSorted
	}
	return rec
}
