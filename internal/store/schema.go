package store

// schemaVersionV1 is the plan-snapshot schema.
const schemaVersionV1 = 1

// schemaV1 holds cases and their immutable plan snapshots. The full plan is
// stored as a JSON payload; the indexed columns exist only for listing and
// lookup, never as a second source of truth.
var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS cases (
	case_id TEXT PRIMARY KEY,
	domain TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS plans (
	id TEXT PRIMARY KEY,
	case_id TEXT NOT NULL,
	version INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	payload BLOB NOT NULL,
	UNIQUE(case_id, version),
	FOREIGN KEY (case_id) REFERENCES cases(case_id)
);

CREATE INDEX IF NOT EXISTS idx_plans_case ON plans(case_id, version);
`
