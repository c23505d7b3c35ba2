package handlers

import (
	"context"
	"log"

	"budget-control/internal/model"
	"budget-control/internal/store"
)

// Journal records calculation results. *store.SQLite implements it.
type Journal interface {
	RecordRun(ctx context.Context, kind string, result any) (store.Run, error)
	GetRun(ctx context.Context, runID string) (store.Run, error)
	ListRuns(ctx context.Context, kind string, limit int) ([]store.Run, error)
}

// SeriesStore is a writable series source. *store.SQLite and *store.Postgres implement it.
type SeriesStore interface {
	SaveSeries(ctx context.Context, ts model.TimeSeries) error
	FetchSeries(ctx context.Context, key string) (model.TimeSeries, error)
	ListSeriesKeys(ctx context.Context) ([]string, error)
	DeleteSeries(ctx context.Context, key string) error
}

// Registry persists external system connections and data flows.
type Registry interface {
	AddConnection(ctx context.Context, c store.Connection) (store.Connection, error)
	ListConnections(ctx context.Context) ([]store.Connection, error)
	SetConnectionStatus(ctx context.Context, connID string, status store.ConnectionStatus) error
	AddDataFlow(ctx context.Context, f store.DataFlow) (store.DataFlow, error)
	ListDataFlows(ctx context.Context) ([]store.DataFlow, error)
}

// record stores result in the journal when one is configured and returns the run ID.
// Journal failures are logged and do not fail the request.
func record(ctx context.Context, j Journal, kind string, result any) string {
	if j == nil {
		return ""
	}
	run, err := j.RecordRun(ctx, kind, result)
	if err != nil {
		log.Printf("journal: record %s: %v", kind, err)
		return ""
	}
	return run.ID
}
