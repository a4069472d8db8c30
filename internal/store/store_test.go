package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/retro/internal/extract"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "retro.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func weekResult(mode extract.Mode, items ...string) extract.Result {
	return extract.Result{
		Mode:     mode,
		Sections: []extract.SectionItems{{Section: extract.SectionTrips, Items: items}},
	}
}

func TestOpen_CreatesPrivateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "retro.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.SaveWeek(ctx, WeekRecord{ID: "a", Week: "2026-10-05", Mode: extract.ModeGood}))
	_, err = s.GetWeek(ctx, "2026-10-05", extract.ModeGood)
	assert.NoError(t, err)
}

func TestSaveWeek_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := WeekRecord{ID: "run-1", Week: "2026-10-05", Mode: extract.ModeGood, Result: weekResult(extract.ModeGood, "Weekend in Lisbon")}
	require.NoError(t, s.SaveWeek(ctx, rec))

	got, err := s.GetWeek(ctx, "2026-10-05", extract.ModeGood)
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, extract.ModeGood, got.Mode)
	assert.Equal(t, []string{"Weekend in Lisbon"}, got.Result.Items(extract.SectionTrips))
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSaveWeek_UpsertsByWeekAndMode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveWeek(ctx, WeekRecord{ID: "first", Week: "2026-10-05", Mode: extract.ModeGood, Result: weekResult(extract.ModeGood, "old")}))
	require.NoError(t, s.SaveWeek(ctx, WeekRecord{ID: "second", Week: "2026-10-05", Mode: extract.ModeGood, Result: weekResult(extract.ModeGood, "new")}))
	require.NoError(t, s.SaveWeek(ctx, WeekRecord{ID: "bad", Week: "2026-10-05", Mode: extract.ModeBad, Result: weekResult(extract.ModeBad, "other")}))

	got, err := s.GetWeek(ctx, "2026-10-05", extract.ModeGood)
	require.NoError(t, err)
	assert.Equal(t, "first", got.ID)
	assert.Equal(t, []string{"new"}, got.Result.Items(extract.SectionTrips))

	weeks, err := s.ListMonth(ctx, "2026-10", extract.ModeGood)
	require.NoError(t, err)
	assert.Len(t, weeks, 1)
}

func TestSaveWeek_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.SaveWeek(ctx, WeekRecord{Week: "2026-13-01", Mode: extract.ModeGood})
	assert.ErrorIs(t, err, ErrInvalidLabel)

	err = s.SaveWeek(ctx, WeekRecord{Week: "2026-10-05", Mode: extract.Mode("meh")})
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, s.SaveWeek(cancelled, WeekRecord{Week: "2026-10-05", Mode: extract.ModeGood}), context.Canceled)
}

func TestGetWeek_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetWeek(context.Background(), "2026-10-05", extract.ModeBad)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMonth(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, week := range []string{"2026-10-19", "2026-09-28", "2026-10-05", "2026-11-02", "2026-10-26"} {
		require.NoError(t, s.SaveWeek(ctx, WeekRecord{ID: week, Week: week, Mode: extract.ModeGood, Result: weekResult(extract.ModeGood, week)}))
	}

	got, err := s.ListMonth(ctx, "2026-10", extract.ModeGood)
	require.NoError(t, err)

	weeks := make([]string, len(got))
	for i, r := range got {
		weeks[i] = r.Week
	}
	assert.Equal(t, []string{"2026-10-05", "2026-10-19", "2026-10-26"}, weeks)

	none, err := s.ListMonth(ctx, "2026-10", extract.ModeBad)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.ListMonth(ctx, "October", extract.ModeGood)
	assert.ErrorIs(t, err, ErrInvalidLabel)
}

func TestDeleteWeek(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveWeek(ctx, WeekRecord{ID: "g", Week: "2026-10-05", Mode: extract.ModeGood}))
	require.NoError(t, s.SaveWeek(ctx, WeekRecord{ID: "b", Week: "2026-10-05", Mode: extract.ModeBad}))

	require.NoError(t, s.DeleteWeek(ctx, "2026-10-05"))

	_, err := s.GetWeek(ctx, "2026-10-05", extract.ModeGood)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetWeek(ctx, "2026-10-05", extract.ModeBad)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteFilePathFromDSN(t *testing.T) {
	tests := []struct {
		dsn    string
		path   string
		onDisk bool
	}{
		{":memory:", "", false},
		{"", "", false},
		{"/tmp/retro.db", "/tmp/retro.db", true},
		{"file:/tmp/retro.db?cache=shared", "/tmp/retro.db", true},
		{"file::memory:?cache=shared", "", false},
	}
	for _, tt := range tests {
		path, onDisk := sqliteFilePathFromDSN(tt.dsn)
		assert.Equal(t, tt.onDisk, onDisk, tt.dsn)
		assert.Equal(t, tt.path, path, tt.dsn)
	}
}
