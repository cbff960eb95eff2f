package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"investor-reporting/internal/common"
	"investor-reporting/internal/metrics"
)

// SubmissionState is the closed two-state submission lifecycle.
type SubmissionState string

const (
	StateDraft     SubmissionState = "draft"
	StateFinalized SubmissionState = "finalized"
)

func (s SubmissionState) Valid() bool {
	return s == StateDraft || s == StateFinalized
}

// Report pairs a metrics snapshot with its submission state. A Report is
// immutable once constructed; editing a draft is modeled as appending a new
// Report, never mutating one.
type Report struct {
	FormData metrics.FormData `json:"form_data"`
	State    SubmissionState  `json:"state"`
}

// Store owns the ordered report sequence. The sequence is loaded once at
// process start, append-only in memory for the process lifetime, and written
// back once at orderly shutdown. A crash mid-run loses that run's appends;
// callers needing per-write durability must call Persist themselves.
//
// The mutex makes concurrent appends and reads from overlapping requests
// linearizable; insertion order is chronological order and elements are
// never reordered or removed.
type Store struct {
	mu      sync.Mutex
	path    string
	reports []Report
	log     *slog.Logger
}

// Open loads the durable file at path. A missing file is an empty sequence;
// anything unreadable, a non-array top level, or an element failing report
// validation is ErrCorruptStore.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{path: path, reports: []Report{}, log: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("store.load.empty", "path", path)
			return s, nil
		}
		return nil, common.WrapError(common.ErrCorruptStore, err.Error())
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, common.WrapError(common.ErrCorruptStore, fmt.Sprintf("the stored data must be a json array: %v", err))
	}

	reports := make([]Report, 0, len(elems))
	for i, elem := range elems {
		var row struct {
			FormData json.RawMessage `json:"form_data"`
			State    SubmissionState `json:"state"`
		}
		if err := json.Unmarshal(elem, &row); err != nil {
			return nil, common.WrapError(common.ErrCorruptStore, fmt.Sprintf("element %d: %v", i, err))
		}
		if !row.State.Valid() {
			return nil, common.WrapError(common.ErrCorruptStore, fmt.Sprintf("element %d: unknown state %q", i, row.State))
		}
		form, err := metrics.Validate(row.FormData)
		if err != nil {
			return nil, common.WrapError(common.ErrCorruptStore, fmt.Sprintf("element %d: %v", i, err))
		}
		reports = append(reports, Report{FormData: form, State: row.State})
	}

	s.reports = reports
	logger.Info("store.load.ok", "path", path, "reports", len(reports))
	return s, nil
}

// Append adds a report to the in-memory sequence. Pure in-memory mutation;
// nothing is persisted until Persist.
func (s *Store) Append(r Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, r)
	s.log.Info("store.append.ok", "state", string(r.State), "reports", len(s.reports))
}

// CurrentDraft returns the metrics of the last report if and only if that
// report is a draft. Earlier drafts superseded by any later report — even a
// finalized one — are no longer current.
func (s *Store) CurrentDraft() (metrics.FormData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.reports) == 0 {
		return metrics.FormData{}, false
	}
	last := s.reports[len(s.reports)-1]
	if last.State != StateDraft {
		return metrics.FormData{}, false
	}
	return last.FormData, true
}

// Reports returns a snapshot copy of the full ordered sequence.
func (s *Store) Reports() []Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// Persist serializes the full sequence to the durable file, overwriting any
// prior content. The write is a plain overwrite with no atomic rename or
// fsync; a failure here must be treated as fatal by the shutdown sequence
// since this is the only persistence path.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()

	data, err := json.Marshal(s.reports)
	if err != nil {
		s.log.Error("store.persist.failed", "path", s.path, "error", err)
		return common.WrapError(common.ErrCorruptStore, fmt.Sprintf("encode reports: %v", err))
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.log.Error("store.persist.failed", "path", s.path, "error", err)
		return common.WrapError(common.ErrCorruptStore, err.Error())
	}

	s.log.Info("store.persist.ok",
		"path", s.path,
		"reports", len(s.reports),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
