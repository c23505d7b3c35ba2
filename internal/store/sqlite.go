package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"budget-control/internal/data"
	"budget-control/internal/id"
	"budget-control/internal/model"
)

// ErrNotFound is returned when a connection, flow or run does not exist.
var ErrNotFound = errors.New("not found")

const timeLayout = time.RFC3339Nano

// SQLite persists series, the integration registry and the run journal.
// It is safe for concurrent use.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveSeries replaces every point stored under ts.Key.
func (s *SQLite) SaveSeries(ctx context.Context, ts model.TimeSeries) error {
	if ts.Key == "" {
		return model.Invalid("key", "must not be empty")
	}
	if err := ts.Validate(1); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO series (key, unit, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET unit = excluded.unit, updated_at = excluded.updated_at`,
		ts.Key, ts.Unit, s.now().Format(timeLayout),
	); err != nil {
		return fmt.Errorf("upsert series %s: %w", ts.Key, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM series_points WHERE key = ?`, ts.Key); err != nil {
		return fmt.Errorf("clear points %s: %w", ts.Key, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO series_points (key, period, value) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, p := range ts.Points {
		if _, err := stmt.ExecContext(ctx, ts.Key, p.Period, p.Value); err != nil {
			return fmt.Errorf("insert point %s@%v: %w", ts.Key, p.Period, err)
		}
	}
	return tx.Commit()
}

// FetchSeries implements data.SeriesSource.
func (s *SQLite) FetchSeries(ctx context.Context, key string) (model.TimeSeries, error) {
	ts := model.TimeSeries{Key: key}
	err := s.db.QueryRowContext(ctx, `SELECT unit FROM series WHERE key = ?`, key).Scan(&ts.Unit)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TimeSeries{}, fmt.Errorf("%w: %s", data.ErrSeriesNotFound, key)
	}
	if err != nil {
		return model.TimeSeries{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT period, value FROM series_points WHERE key = ? ORDER BY period`, key)
	if err != nil {
		return model.TimeSeries{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var p model.Point
		if err := rows.Scan(&p.Period, &p.Value); err != nil {
			return model.TimeSeries{}, err
		}
		ts.Points = append(ts.Points, p)
	}
	return ts, rows.Err()
}

func (s *SQLite) ListSeriesKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM series ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLite) DeleteSeries(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM series WHERE key = ?`, key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", data.ErrSeriesNotFound, key)
	}
	return nil
}

// ConnectionStatus is the lifecycle state of a registered external system.
type ConnectionStatus string

const (
	StatusConfigured ConnectionStatus = "configured"
	StatusActive     ConnectionStatus = "active"
	StatusError      ConnectionStatus = "error"
	StatusDisabled   ConnectionStatus = "disabled"
)

func (s ConnectionStatus) Valid() bool {
	switch s {
	case StatusConfigured, StatusActive, StatusError, StatusDisabled:
		return true
	}
	return false
}

// Connection is a registry record for an ERP, CRM or API system. The
// connector itself is never run; only its configuration is kept.
type Connection struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Type      string            `json:"type"`
	Status    ConnectionStatus  `json:"status"`
	Endpoint  string            `json:"endpoint,omitempty"`
	Config    map[string]string `json:"config,omitempty"`
	LastSync  *time.Time        `json:"last_sync,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func (s *SQLite) AddConnection(ctx context.Context, c Connection) (Connection, error) {
	if c.Name == "" || c.Type == "" {
		return Connection{}, model.Invalid("connection", "name and type are required")
	}
	if c.Status == "" {
		c.Status = StatusConfigured
	}
	if !c.Status.Valid() {
		return Connection{}, model.Invalid("status", "unknown status %q", c.Status)
	}
	cfg, err := json.Marshal(c.Config)
	if err != nil {
		return Connection{}, err
	}
	c.ID = uuid.NewString()
	c.CreatedAt = s.now()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO system_connections
		(id, system_name, system_type, connection_status, last_sync, api_endpoint, config_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Type, string(c.Status), fmtTimePtr(c.LastSync), c.Endpoint, string(cfg), c.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Connection{}, fmt.Errorf("insert connection: %w", err)
	}
	return c, nil
}

func (s *SQLite) ListConnections(ctx context.Context) ([]Connection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, system_name, system_type, connection_status, last_sync, api_endpoint, config_data, created_at
		FROM system_connections ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Connection{}
	for rows.Next() {
		var (
			c               Connection
			status, cfg, at string
			lastSync        sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &status, &lastSync, &c.Endpoint, &cfg, &at); err != nil {
			return nil, err
		}
		c.Status = ConnectionStatus(status)
		if err := json.Unmarshal([]byte(cfg), &c.Config); err != nil {
			return nil, fmt.Errorf("connection %s config: %w", c.ID, err)
		}
		if c.CreatedAt, err = time.Parse(timeLayout, at); err != nil {
			return nil, err
		}
		if c.LastSync, err = parseTimePtr(lastSync); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SetConnectionStatus updates the status; moving to active also stamps last_sync.
func (s *SQLite) SetConnectionStatus(ctx context.Context, connID string, status ConnectionStatus) error {
	if !status.Valid() {
		return model.Invalid("status", "unknown status %q", status)
	}
	var res sql.Result
	var err error
	if status == StatusActive {
		res, err = s.db.ExecContext(ctx,
			`UPDATE system_connections SET connection_status = ?, last_sync = ? WHERE id = ?`,
			string(status), s.now().Format(timeLayout), connID)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE system_connections SET connection_status = ? WHERE id = ?`,
			string(status), connID)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("connection %s: %w", connID, ErrNotFound)
	}
	return nil
}

// DataFlow records a scheduled transfer between two registered systems.
type DataFlow struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	SourceSystem  string     `json:"source_system"`
	TargetSystem  string     `json:"target_system"`
	Frequency     string     `json:"frequency"`
	LastExecution *time.Time `json:"last_execution,omitempty"`
	SuccessRate   float64    `json:"success_rate"`
}

func (s *SQLite) AddDataFlow(ctx context.Context, f DataFlow) (DataFlow, error) {
	if f.Name == "" || f.SourceSystem == "" || f.TargetSystem == "" || f.Frequency == "" {
		return DataFlow{}, model.Invalid("data_flow", "name, source, target and frequency are required")
	}
	if f.SuccessRate < 0 || f.SuccessRate > 1 {
		return DataFlow{}, model.Invalid("success_rate", "must be in [0,1], got %v", f.SuccessRate)
	}
	f.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO data_flows (id, flow_name, source_system, target_system, frequency, last_execution, success_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.Name, f.SourceSystem, f.TargetSystem, f.Frequency, fmtTimePtr(f.LastExecution), f.SuccessRate,
	)
	if err != nil {
		return DataFlow{}, fmt.Errorf("insert data flow: %w", err)
	}
	return f, nil
}

func (s *SQLite) ListDataFlows(ctx context.Context) ([]DataFlow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, flow_name, source_system, target_system, frequency, last_execution, success_rate
		FROM data_flows ORDER BY flow_name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DataFlow{}
	for rows.Next() {
		var f DataFlow
		var last sql.NullString
		if err := rows.Scan(&f.ID, &f.Name, &f.SourceSystem, &f.TargetSystem, &f.Frequency, &last, &f.SuccessRate); err != nil {
			return nil, err
		}
		if f.LastExecution, err = parseTimePtr(last); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Run is a journaled calculation result.
type Run struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

// Decode unmarshals the payload into v.
func (r Run) Decode(v any) error {
	return json.Unmarshal(r.Payload, v)
}

// RecordRun stores result as JSON under a new run ID.
func (s *SQLite) RecordRun(ctx context.Context, kind string, result any) (Run, error) {
	if kind == "" {
		return Run{}, model.Invalid("kind", "must not be empty")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return Run{}, fmt.Errorf("encode %s run: %w", kind, err)
	}
	r := Run{ID: id.NewRunID(), Kind: kind, CreatedAt: s.now(), Payload: payload}
	_, err = s.db.ExecContext(ctx, `INSERT INTO runs (id, kind, created_at, payload) VALUES (?, ?, ?, ?)`,
		r.ID, r.Kind, r.CreatedAt.Format(timeLayout), string(r.Payload))
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return r, nil
}

func (s *SQLite) GetRun(ctx context.Context, runID string) (Run, error) {
	var r Run
	var at, payload string
	err := s.db.QueryRowContext(ctx, `SELECT id, kind, created_at, payload FROM runs WHERE id = ?`, runID).
		Scan(&r.ID, &r.Kind, &at, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return Run{}, err
	}
	if r.CreatedAt, err = time.Parse(timeLayout, at); err != nil {
		return Run{}, err
	}
	r.Payload = json.RawMessage(payload)
	return r, nil
}

// ListRuns returns the newest runs first, optionally filtered by kind.
func (s *SQLite) ListRuns(ctx context.Context, kind string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, created_at, payload FROM runs
		WHERE (? = '' OR kind = ?)
		ORDER BY id DESC LIMIT ?`, kind, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Run{}
	for rows.Next() {
		var r Run
		var at, payload string
		if err := rows.Scan(&r.ID, &r.Kind, &at, &payload); err != nil {
			return nil, err
		}
		if r.CreatedAt, err = time.Parse(timeLayout, at); err != nil {
			return nil, err
		}
		r.Payload = json.RawMessage(payload)
		out = append(out, r)
	}
	return out, rows.Err()
}

func fmtTimePtr(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

func parseTimePtr(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
