package archive_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZhengKeli/OpticalInterpretation/archive"
	"github.com/ZhengKeli/OpticalInterpretation/report"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func newReport(t *testing.T, model string, created time.Time) *report.Report {
	t.Helper()
	r, err := report.New(model, []string{"a", "b"}, []float64{0, 1}, [][]float64{{1, 0}, {0, 1}}, 0.02)
	require.NoError(t, err)
	r.CreatedAt = created

	return r
}

func stores(t *testing.T) map[string]archive.Store {
	t.Helper()
	mem, err := archive.NewStore(archive.BackendMemory, "")
	require.NoError(t, err)
	lite, err := archive.NewStore(archive.BackendSQLite, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = archive.CloseIfSupported(lite) })

	return map[string]archive.Store{"memory": mem, "sqlite": lite}
}

// TestStoreRoundTrip saves, fetches and lists reports on every backend.
func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := store.GetReport(ctx, "x")
			require.ErrorIs(t, err, archive.ErrNotInitialized)

			require.NoError(t, store.Init(ctx))
			later := newReport(t, "optical", base.Add(time.Minute))
			earlier := newReport(t, "chemical", base)
			require.NoError(t, store.SaveReport(ctx, later))
			require.NoError(t, store.SaveReport(ctx, earlier))
			require.ErrorIs(t, store.SaveReport(ctx, nil), archive.ErrNilReport)

			got, ok, err := store.GetReport(ctx, earlier.RunID)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, earlier.Labels, got.Labels)
			require.Equal(t, earlier.Probs, got.Probs)
			require.Equal(t, earlier.Classes, got.Classes)

			_, ok, err = store.GetReport(ctx, "missing")
			require.NoError(t, err)
			require.False(t, ok)

			list, err := store.ListReports(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			require.Equal(t, earlier.RunID, list[0].RunID) // ordered by creation time
			require.Equal(t, archive.Summary{
				RunID: later.RunID, Model: "optical", CreatedAt: later.CreatedAt,
				States: 2, Samples: 2, Final: 1,
			}, list[1])

			// saving again replaces the stored copy
			later.Model = "optical-v2"
			require.NoError(t, store.SaveReport(ctx, later))
			list, err = store.ListReports(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			require.Equal(t, "optical-v2", list[1].Model)
		})
	}
}

// TestNewStore covers backend selection.
func TestNewStore(t *testing.T) {
	_, err := archive.NewStore("sqlite", "")
	require.ErrorIs(t, err, archive.ErrPathRequired)

	_, err = archive.NewStore("badger", "x")
	require.ErrorIs(t, err, archive.ErrUnsupportedBackend)

	s, err := archive.NewStore("", "")
	require.NoError(t, err)
	require.IsType(t, &archive.MemoryStore{}, s)
	require.NoError(t, archive.CloseIfSupported(s))

	// a path without a backend means a file on disk
	s, err = archive.NewStore("", filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	require.IsType(t, &archive.SQLiteStore{}, s)
}

// TestListReportsSubsecond orders runs that differ only in fractional seconds.
func TestListReportsSubsecond(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 5, 0, time.UTC)

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Init(ctx))
			late := newReport(t, "chemical", base.Add(120*time.Millisecond))
			late.RunID = "a-late"
			early := newReport(t, "chemical", base.Add(100*time.Millisecond))
			early.RunID = "b-early"
			require.NoError(t, store.SaveReport(ctx, late))
			require.NoError(t, store.SaveReport(ctx, early))

			list, err := store.ListReports(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			require.Equal(t, "b-early", list[0].RunID)
			require.Equal(t, "a-late", list[1].RunID)
			require.True(t, early.CreatedAt.Equal(list[0].CreatedAt))
		})
	}
}

// TestDecodeReportVersion rejects payloads from another codec version.
func TestDecodeReportVersion(t *testing.T) {
	payload, err := msgpack.Marshal(map[string]any{"codec_version": 99})
	require.NoError(t, err)
	_, err = archive.DecodeReport(payload)
	require.ErrorIs(t, err, archive.ErrVersionMismatch)

	r := newReport(t, "chemical", time.Now().UTC())
	payload, err = archive.EncodeReport(r)
	require.NoError(t, err)
	got, err := archive.DecodeReport(payload)
	require.NoError(t, err)
	require.Equal(t, r.RunID, got.RunID)
}
