package store

// Schema is applied on open; every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS series (
	key TEXT PRIMARY KEY,
	unit TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS series_points (
	key TEXT NOT NULL REFERENCES series(key) ON DELETE CASCADE,
	period REAL NOT NULL,
	value REAL NOT NULL,
	PRIMARY KEY (key, period)
);

CREATE TABLE IF NOT EXISTS system_connections (
	id TEXT PRIMARY KEY,
	system_name TEXT NOT NULL,
	system_type TEXT NOT NULL,
	connection_status TEXT NOT NULL,
	last_sync TEXT,
	api_endpoint TEXT NOT NULL DEFAULT '',
	config_data TEXT NOT NULL DEFAULT '{}',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS data_flows (
	id TEXT PRIMARY KEY,
	flow_name TEXT NOT NULL,
	source_system TEXT NOT NULL,
	target_system TEXT NOT NULL,
	frequency TEXT NOT NULL,
	last_execution TEXT,
	success_rate REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	created_at TEXT NOT NULL,
	payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind, id);
`

// PostgresSchema mirrors the series tables for the Postgres source.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS series (
	key TEXT PRIMARY KEY,
	unit TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS series_points (
	key TEXT NOT NULL REFERENCES series(key) ON DELETE CASCADE,
	period DOUBLE PRECISION NOT NULL,
	value DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (key, period)
);
`
