package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"stratagem/pkg/planner"
)

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory (e.g. .stratagem) if it does not exist.
func Open(path string) (*SqlStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableCount == 0 {
		if _, err := s.db.Exec(schemaV1); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersionV1); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}

	var v int
	if err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != schemaVersionV1 {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

// Close closes the database connection.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

// SavePlan appends a new snapshot for the plan's case. The case row is
// upserted; the version is one past the current maximum for the case.
func (s *SqlStore) SavePlan(seq *planner.MoveSequence) (*PlanRecord, error) {
	if seq == nil {
		return nil, errors.New("plan is nil")
	}
	if seq.CaseID == "" {
		return nil, errors.New("plan has no case id")
	}
	payload, err := json.Marshal(seq)
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := nowUTC()
	_, err = tx.Exec(
		`INSERT INTO cases(case_id, domain, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(case_id) DO UPDATE SET domain=excluded.domain, updated_at=excluded.updated_at`,
		seq.CaseID, string(seq.Domain), now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert case: %w", err)
	}

	var version int
	err = tx.QueryRow(
		"SELECT COALESCE(MAX(version), 0) + 1 FROM plans WHERE case_id = ?", seq.CaseID,
	).Scan(&version)
	if err != nil {
		return nil, fmt.Errorf("next version: %w", err)
	}

	rec := &PlanRecord{
		ID:        uuid.NewString(),
		CaseID:    seq.CaseID,
		Version:   version,
		CreatedAt: now,
		Plan:      seq,
	}
	_, err = tx.Exec(
		"INSERT INTO plans(id, case_id, version, created_at, payload) VALUES(?, ?, ?, ?, ?)",
		rec.ID, rec.CaseID, rec.Version, rec.CreatedAt, payload,
	)
	if err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return rec, nil
}

// GetPlan returns the record by id, or nil when not found.
func (s *SqlStore) GetPlan(id string) (*PlanRecord, error) {
	return s.scanOne(
		"SELECT id, case_id, version, created_at, payload FROM plans WHERE id = ?", id)
}

// LatestPlan returns the highest-version record for the case, or nil.
func (s *SqlStore) LatestPlan(caseID string) (*PlanRecord, error) {
	return s.scanOne(
		`SELECT id, case_id, version, created_at, payload FROM plans
		 WHERE case_id = ? ORDER BY version DESC LIMIT 1`, caseID)
}

func (s *SqlStore) scanOne(query string, arg any) (*PlanRecord, error) {
	var rec PlanRecord
	var payload []byte
	err := s.db.QueryRow(query, arg).Scan(&rec.ID, &rec.CaseID, &rec.Version, &rec.CreatedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if err := json.Unmarshal(payload, &rec.Plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	return &rec, nil
}

// ListPlans returns all records for the case in version order.
func (s *SqlStore) ListPlans(caseID string) ([]*PlanRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, case_id, version, created_at, payload FROM plans
		 WHERE case_id = ? ORDER BY version`, caseID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*PlanRecord
	for rows.Next() {
		var rec PlanRecord
		var payload []byte
		if err := rows.Scan(&rec.ID, &rec.CaseID, &rec.Version, &rec.CreatedAt, &payload); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		if err := json.Unmarshal(payload, &rec.Plan); err != nil {
			return nil, fmt.Errorf("unmarshal plan: %w", err)
		}
		list = append(list, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return list, nil
}

// ListCases summarizes every case with at least one saved plan.
func (s *SqlStore) ListCases() ([]*CaseSummary, error) {
	rows, err := s.db.Query(
		`SELECT c.case_id, c.domain, COUNT(p.id), COALESCE(MAX(p.version), 0), c.updated_at
		 FROM cases c LEFT JOIN plans p ON p.case_id = c.case_id
		 GROUP BY c.case_id ORDER BY c.case_id`)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()
	var list []*CaseSummary
	for rows.Next() {
		var cs CaseSummary
		if err := rows.Scan(&cs.CaseID, &cs.Domain, &cs.PlanCount, &cs.LatestVersion, &cs.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		list = append(list, &cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	return list, nil
}
