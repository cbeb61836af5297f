package store

import "stratagem/pkg/planner"

// DefaultDBPath is the default relative path for the SQLite DB (per-workspace).
// Resolve against cwd; Open() creates the parent dir (e.g. .stratagem).
const DefaultDBPath = ".stratagem/stratagem.db"

// PlanRecord is one saved plan snapshot. Plans are immutable once saved;
// re-planning a case appends a new record with the next version number.
type PlanRecord struct {
	ID        string                `json:"id"`
	CaseID    string                `json:"case_id"`
	Version   int                   `json:"version"`
	CreatedAt string                `json:"created_at"`
	Plan      *planner.MoveSequence `json:"plan"`
}

// CaseSummary is one case as seen across its saved plans.
type CaseSummary struct {
	CaseID        string `json:"case_id"`
	Domain        string `json:"domain"`
	PlanCount     int    `json:"plan_count"`
	LatestVersion int    `json:"latest_version"`
	UpdatedAt     string `json:"updated_at"`
}

// Store is the persistence facade for plan snapshots. CLI and MCP use only
// this interface; implementation is SQLite or in-memory.
type Store interface {
	// SavePlan appends a new immutable snapshot for the plan's case and
	// returns the stored record with its assigned id and version.
	SavePlan(seq *planner.MoveSequence) (*PlanRecord, error)
	// GetPlan returns the record by id, or nil when not found.
	GetPlan(id string) (*PlanRecord, error)
	// LatestPlan returns the highest-version record for the case, or nil.
	LatestPlan(caseID string) (*PlanRecord, error)
	// ListPlans returns all records for the case in version order.
	ListPlans(caseID string) ([]*PlanRecord, error)
	// ListCases summarizes every case with at least one saved plan.
	ListCases() ([]*CaseSummary, error)
	Close() error
}
