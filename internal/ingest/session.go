package ingest

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"budgetdash/internal/core"
	"budgetdash/internal/export"
)

type (
	// Session owns the current dataset snapshot. Each reload builds a new
	// dataset off to the side and swaps the reference under the lock, so
	// readers never observe a partially built snapshot. Concurrent refresh
	// triggers collapse into a single ingestion pass.
	Session struct {
		mu      sync.RWMutex
		loader  *Loader
		current *core.Dataset
		reloads singleflight.Group
	}

	// LabelEdit is one reconciliation entry from the presentation layer,
	// addressed by composite key rather than row index.
	LabelEdit struct {
		Key   core.EditKey
		Label core.Label
	}
)

// NewSession creates a session with an empty snapshot; call Reload to run
// the first ingestion pass.
func NewSession(loader *Loader) *Session {
	return &Session{loader: loader, current: emptyDataset(nil)}
}

// Snapshot returns the current dataset. The returned value is shared and
// must be treated as read-only.
func (s *Session) Snapshot() *core.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload runs a full ingestion pass and swaps in the result. Overlapping
// calls share one pass and all receive its dataset.
func (s *Session) Reload(ctx context.Context) *core.Dataset {
	v, _, shared := s.reloads.Do("reload", func() (interface{}, error) {
		ds := s.loader.Load(ctx)
		s.mu.Lock()
		s.current = ds
		s.mu.Unlock()
		return ds, nil
	})
	ds := v.(*core.Dataset)
	if shared {
		slog.Debug("Reload coalesced with an in-flight pass")
	}
	slog.Info("Dataset reloaded",
		"months", len(ds.Summary),
		"transactions", len(ds.Transactions),
		"errors", len(ds.Errors))
	return ds
}

// ApplyEdits reconciles label edits into the corpus by composite key. An
// edit with no matching transaction is a silent no-op, since the caller's
// view may be stale; a key matching several transactions updates all of
// them. The investment override runs again afterwards, so clearing the
// label of an Investment-prefixed row restores Savings. Returns the number
// of transactions updated.
func (s *Session) ApplyEdits(edits []LabelEdit) int {
	if len(edits) == 0 {
		return 0
	}
	byKey := make(map[core.EditKey]core.Label, len(edits))
	for _, e := range edits {
		byKey[e.Key] = e.Label
	}

	return s.rewrite(func(txns []core.Transaction) int {
		matched := 0
		for i := range txns {
			if label, ok := byKey[txns[i].Key()]; ok {
				txns[i].Label = label
				matched++
			}
		}
		return matched
	})
}

// ApplyCategoryLabel sets the label on every transaction of a category.
// The investment override still wins over an empty label afterwards.
func (s *Session) ApplyCategoryLabel(category string, label core.Label) int {
	return s.rewrite(func(txns []core.Transaction) int {
		matched := 0
		for i := range txns {
			if txns[i].Category == category {
				txns[i].Label = label
				matched++
			}
		}
		return matched
	})
}

// rewrite applies fn to a copy of the corpus, re-runs the investment
// override and swaps a new snapshot carrying the edited transactions.
// Summary and matrix are label-independent and carry over untouched.
func (s *Session) rewrite(fn func([]core.Transaction) int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.current
	txns := append([]core.Transaction(nil), old.Transactions...)
	matched := fn(txns)
	core.ApplyInvestmentOverride(txns)

	s.current = &core.Dataset{
		Summary:      old.Summary,
		Transactions: txns,
		Matrix:       old.Matrix,
		Errors:       old.Errors,
		LoadedAt:     old.LoadedAt,
	}
	return matched
}

// ExportCSV writes the current corpus to path and returns the number of
// transactions written.
func (s *Session) ExportCSV(path string) (int, error) {
	ds := s.Snapshot()
	if err := export.WriteTransactions(path, ds.Transactions); err != nil {
		return 0, err
	}
	slog.Info("Corpus exported", "path", path, "transactions", len(ds.Transactions))
	return len(ds.Transactions), nil
}
