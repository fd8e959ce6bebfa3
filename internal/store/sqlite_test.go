package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigsight/gaslog-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testResult(well string, depth float64, cat model.Category) model.Result {
	return model.Result{
		Sample: model.Sample{
			WellID: well,
			Depth:  depth,
			C1:     90, C2: 5, C3: 3, IC4: 0.5, NC4: 0.5, IC5: 0.5, NC5: 0.5,
			Tg: 12,
		},
		FinalCategory:   cat,
		FinalConfidence: 76.5,
		Rationale:       "tg=oil/medium; triangle=oil-gas-or-water/0.50; three-ratio=wet-gas/90",
	}
}

func TestSQLite_CreateAndGetRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "wells/block-7.xlsx")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "wells/block-7.xlsx", got.Source)
	assert.Equal(t, model.RunStatusQueued, got.Status)
	assert.Nil(t, got.Summary)
}

func TestSQLite_GetRun_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetRun(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_UpdateRunStatus(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "a.csv")
	require.NoError(t, err)

	require.NoError(t, st.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusRunning, got.Status)
}

func TestSQLite_UpdateRunStatus_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.UpdateRunStatus(context.Background(), "nonexistent", model.RunStatusRunning)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestSQLite_CompleteRun_SummaryRoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "a.csv")
	require.NoError(t, err)

	summary := &model.RunSummary{
		Wells:   2,
		Samples: 40,
		Categories: map[model.Category]int{
			model.CategoryWater: 30,
			model.CategoryGas:   10,
		},
	}
	require.NoError(t, st.CompleteRun(ctx, run.ID, summary))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Summary)
	assert.Equal(t, 2, got.Summary.Wells)
	assert.Equal(t, 10, got.Summary.Categories[model.CategoryGas])
}

func TestSQLite_FailRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "a.csv")
	require.NoError(t, err)

	require.NoError(t, st.FailRun(ctx, run.ID, "ingest: bad depth at row 3"))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	assert.Equal(t, "ingest: bad depth at row 3", got.Error)
}

func TestSQLite_ListRuns_FilterByStatus(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	r1, err := st.CreateRun(ctx, "a.csv")
	require.NoError(t, err)
	_, err = st.CreateRun(ctx, "b.csv")
	require.NoError(t, err)
	require.NoError(t, st.UpdateRunStatus(ctx, r1.ID, model.RunStatusComplete))

	runs, err := st.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, r1.ID, runs[0].ID)

	all, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSQLite_SaveAndListResults(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "a.csv")
	require.NoError(t, err)

	in := []model.Result{
		testResult("W-2", 1200, model.CategoryGas),
		testResult("W-1", 1000, model.CategoryOil),
		testResult("W-1", 1000.5, model.CategoryOil),
	}
	require.NoError(t, st.SaveResults(ctx, run.ID, in))

	out, err := st.ListResults(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, out, 3)
	// Ordered by well then depth.
	assert.Equal(t, "W-1", out[0].WellID)
	assert.Equal(t, 1000.0, out[0].Depth)
	assert.Equal(t, model.CategoryOil, out[0].FinalCategory)
	assert.Equal(t, "W-2", out[2].WellID)
	// Full payload survives the round trip.
	assert.Equal(t, 90.0, out[0].C1)
	assert.Equal(t, 76.5, out[0].FinalConfidence)
}

func TestSQLite_SaveResults_Empty(t *testing.T) {
	st := newTestSQLiteStore(t)
	require.NoError(t, st.SaveResults(context.Background(), "any", nil))
}

func TestSQLite_ListResults_UnknownRun(t *testing.T) {
	st := newTestSQLiteStore(t)

	out, err := st.ListResults(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestWellExtents(t *testing.T) {
	results := []model.Result{
		testResult("W-1", 1001, model.CategoryOil),
		testResult("W-1", 1000, model.CategoryOil),
		testResult("W-2", 1500, model.CategoryGas),
	}
	extents := wellExtents(results)
	require.Len(t, extents, 2)
	assert.Equal(t, "W-1", extents[0].id)
	assert.Equal(t, 2, extents[0].samples)
	assert.Equal(t, 1000.0, extents[0].top)
	assert.Equal(t, 1001.0, extents[0].bottom)
	assert.Equal(t, "W-2", extents[1].id)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

func TestOpen_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "open.db")
	st, err := Open(context.Background(), "sqlite", dbPath)
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck

	run, err := st.CreateRun(context.Background(), "a.csv")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
}
