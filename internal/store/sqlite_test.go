package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-control/internal/data"
	"budget-control/internal/id"
	"budget-control/internal/model"
	"budget-control/internal/treasury"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	_, path := newTestSQLite(t)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table'`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	for _, table := range []string{"series", "series_points", "system_connections", "data_flows", "runs"} {
		assert.True(t, found[table], table)
	}
}

func TestSQLiteSeriesRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	var _ data.SeriesSource = s

	ts := model.NewTimeSeries(120, 135, 115)
	ts.Key = "sales/monthly"
	ts.Unit = "EUR"
	require.NoError(t, s.SaveSeries(ctx, ts))

	got, err := s.FetchSeries(ctx, "sales/monthly")
	require.NoError(t, err)
	assert.Equal(t, ts, got)

	// Saving again replaces the points.
	ts2 := model.NewTimeSeries(1, 2)
	ts2.Key = "sales/monthly"
	require.NoError(t, s.SaveSeries(ctx, ts2))
	got, err = s.FetchSeries(ctx, "sales/monthly")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, got.Values())
	assert.Equal(t, "", got.Unit)

	other := model.NewTimeSeries(5)
	other.Key = "costs"
	require.NoError(t, s.SaveSeries(ctx, other))

	keys, err := s.ListSeriesKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"costs", "sales/monthly"}, keys)

	require.NoError(t, s.DeleteSeries(ctx, "costs"))
	_, err = s.FetchSeries(ctx, "costs")
	assert.ErrorIs(t, err, data.ErrSeriesNotFound)
	assert.ErrorIs(t, s.DeleteSeries(ctx, "costs"), data.ErrSeriesNotFound)
}

func TestSQLiteSaveSeriesValidates(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.SaveSeries(ctx, model.NewTimeSeries(1, 2)), model.ErrValidation)

	bad := model.TimeSeries{Key: "k", Points: []model.Point{{Period: 2, Value: 1}, {Period: 1, Value: 1}}}
	assert.ErrorIs(t, s.SaveSeries(ctx, bad), model.ErrValidation)
}

func TestSQLiteConnections(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	c, err := s.AddConnection(ctx, Connection{
		Name:     "SAP S/4HANA",
		Type:     "ERP",
		Endpoint: "https://erp.example.com/odata",
		Config:   map[string]string{"client": "100"},
	})
	require.NoError(t, err)
	assert.Len(t, c.ID, 36)
	assert.Equal(t, StatusConfigured, c.Status)

	_, err = s.AddConnection(ctx, Connection{Name: "Salesforce", Type: "CRM"})
	require.NoError(t, err)

	list, err := s.ListConnections(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "SAP S/4HANA", list[0].Name)
	assert.Equal(t, map[string]string{"client": "100"}, list[0].Config)
	assert.Nil(t, list[0].LastSync)

	require.NoError(t, s.SetConnectionStatus(ctx, c.ID, StatusActive))
	list, err = s.ListConnections(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, list[0].Status)
	require.NotNil(t, list[0].LastSync)

	assert.ErrorIs(t, s.SetConnectionStatus(ctx, "missing", StatusError), ErrNotFound)
	assert.ErrorIs(t, s.SetConnectionStatus(ctx, c.ID, "exploded"), model.ErrValidation)

	_, err = s.AddConnection(ctx, Connection{Name: "x"})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestSQLiteDataFlows(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.AddDataFlow(ctx, DataFlow{Name: "sales sync", SourceSystem: "CRM", TargetSystem: "ERP", Frequency: "daily", SuccessRate: 0.98})
	require.NoError(t, err)
	_, err = s.AddDataFlow(ctx, DataFlow{Name: "actuals", SourceSystem: "ERP", TargetSystem: "BI", Frequency: "hourly", SuccessRate: 1})
	require.NoError(t, err)

	flows, err := s.ListDataFlows(ctx)
	require.NoError(t, err)
	require.Len(t, flows, 2)
	assert.Equal(t, "actuals", flows[0].Name)
	assert.InDelta(t, 0.98, flows[1].SuccessRate, 1e-12)

	_, err = s.AddDataFlow(ctx, DataFlow{Name: "x", SourceSystem: "a", TargetSystem: "b", Frequency: "daily", SuccessRate: 2})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestSQLiteRuns(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	res, err := treasury.New().Project(treasury.Config{Periods: 2, Revenue: 10, BaseOutflow: 5})
	require.NoError(t, err)

	run, err := s.RecordRun(ctx, "treasury", res)
	require.NoError(t, err)
	assert.True(t, id.Valid(run.ID))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "treasury", got.Kind)

	var decoded treasury.Result
	require.NoError(t, got.Decode(&decoded))
	assert.Equal(t, res.Ledger, decoded.Ledger)
	assert.Equal(t, res.Status, decoded.Status)

	second, err := s.RecordRun(ctx, "appraisal", map[string]float64{"npv": 1})
	require.NoError(t, err)

	all, err := s.ListRuns(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	only, err := s.ListRuns(ctx, "treasury", 0)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, run.ID, only[0].ID)

	_, err = s.GetRun(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresSeriesRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	pg, err := NewPostgres(ctx, url)
	require.NoError(t, err)
	defer pg.Close()
	require.NoError(t, pg.EnsureSchema(ctx))

	ts := model.NewTimeSeries(3, 4, 5)
	ts.Key = "test/" + id.NewRunID()
	require.NoError(t, pg.SaveSeries(ctx, ts))

	got, err := pg.FetchSeries(ctx, ts.Key)
	require.NoError(t, err)
	assert.Equal(t, ts.Values(), got.Values())

	_, err = pg.FetchSeries(ctx, "missing/"+id.NewRunID())
	assert.ErrorIs(t, err, data.ErrSeriesNotFound)
}
