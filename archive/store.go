// SPDX-License-Identifier: MIT

package archive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ZhengKeli/OpticalInterpretation/report"
)

// Backend names accepted by NewStore.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Store persists reports keyed by run id.
type Store interface {
	Init(ctx context.Context) error
	SaveReport(ctx context.Context, r *report.Report) error
	GetReport(ctx context.Context, runID string) (*report.Report, bool, error)
	ListReports(ctx context.Context) ([]Summary, error)
}

// Summary is the listing row of one stored report.
type Summary struct {
	RunID     string    `json:"run_id"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	States    int       `json:"states"`
	Samples   int       `json:"samples"`
	Final     int       `json:"final"`
}

// Summarize builds the listing row of r.
func Summarize(r *report.Report) Summary {
	return Summary{
		RunID:     r.RunID,
		Model:     r.Model,
		CreatedAt: r.CreatedAt,
		States:    len(r.Labels),
		Samples:   len(r.Times),
		Final:     len(r.Final()),
	}
}

// NewStore returns an uninitialized store of the given backend. Path is used by
// the sqlite backend only. An empty kind picks sqlite when path is set and
// memory otherwise.
func NewStore(kind, path string) (Store, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" && path != "" {
		kind = BackendSQLite
	}
	switch kind {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		if path == "" {
			return nil, archiveErrorf("NewStore", ErrPathRequired)
		}
		return NewSQLiteStore(path), nil
	default:
		return nil, archiveErrorf("NewStore", fmt.Errorf("%w: %q", ErrUnsupportedBackend, kind))
	}
}

// CloseIfSupported closes stores that hold resources.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}

	return closer.Close()
}

func less(a, b Summary) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}

	return strings.Compare(a.RunID, b.RunID)
}
