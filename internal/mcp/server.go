// Package mcp exposes the planner over the Model Context Protocol so agent
// clients can generate, save, and fetch plans through stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"stratagem/internal/logging"
	"stratagem/internal/store"
	"stratagem/pkg/evidence"
	"stratagem/pkg/planner"
)

// Server wraps the MCP SDK server around the planner and a plan store.
type Server struct {
	MCPServer *sdkmcp.Server
	Store     store.Store

	// now is overridable in tests; the pipeline itself never reads the clock.
	now func() time.Time
}

// NewServer creates an MCP server backed by st. Pass a MemStore when no
// database is configured.
func NewServer(st store.Store, version string) *Server {
	s := &Server{Store: st, now: time.Now}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "stratagem", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_domains",
		Description: "List the practice areas with an evidence model, including the generic fallback.",
	}, s.handleListDomains)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "generate_plan",
		Description: "Generate a move sequence from a case snapshot. Optionally persists the plan and returns its id.",
	}, s.handleGeneratePlan)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_plan",
		Description: "Fetch a saved plan by its id, or the latest plan for a case when case_id is given instead.",
	}, s.handleGetPlan)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_cases",
		Description: "List cases with saved plans: domain, plan count, latest version.",
	}, s.handleListCases)
}

// --- Tool input/output types ---

type listDomainsInput struct{}

type domainInfo struct {
	Domain      string `json:"domain"`
	DisplayName string `json:"display_name"`
	Items       int    `json:"expected_items"`
}

type listDomainsOutput struct {
	Domains []domainInfo `json:"domains"`
}

type generatePlanInput struct {
	SnapshotJSON string `json:"snapshot_json" jsonschema:"case snapshot JSON: case_id, domain, documents, timeline, key_issues"`
	Now          string `json:"now,omitempty" jsonschema:"evaluation date YYYY-MM-DD (defaults to today)"`
	Save         bool   `json:"save,omitempty" jsonschema:"persist the generated plan"`
}

type generatePlanOutput struct {
	PlanJSON     string `json:"plan_json"`
	Moves        int    `json:"moves"`
	Observations int    `json:"observations"`
	Warnings     int    `json:"warnings"`
	PlanID       string `json:"plan_id,omitempty"`
	Version      int    `json:"version,omitempty"`
}

type getPlanInput struct {
	PlanID string `json:"plan_id,omitempty" jsonschema:"plan id from generate_plan"`
	CaseID string `json:"case_id,omitempty" jsonschema:"case id; fetches the latest plan for the case"`
}

type getPlanOutput struct {
	Found     bool   `json:"found"`
	PlanID    string `json:"plan_id,omitempty"`
	CaseID    string `json:"case_id,omitempty"`
	Version   int    `json:"version,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	PlanJSON  string `json:"plan_json,omitempty"`
}

type listCasesInput struct{}

type listCasesOutput struct {
	Cases []*store.CaseSummary `json:"cases"`
}

// --- Tool handlers ---

func (s *Server) handleListDomains(_ context.Context, _ *sdkmcp.CallToolRequest, _ listDomainsInput) (*sdkmcp.CallToolResult, listDomainsOutput, error) {
	var out listDomainsOutput
	for _, d := range evidence.Domains() {
		m := evidence.ModelFor(d)
		out.Domains = append(out.Domains, domainInfo{
			Domain:      string(d),
			DisplayName: m.DisplayName,
			Items:       len(m.ExpectedItems),
		})
	}
	return nil, out, nil
}

func (s *Server) handleGeneratePlan(_ context.Context, _ *sdkmcp.CallToolRequest, input generatePlanInput) (*sdkmcp.CallToolResult, generatePlanOutput, error) {
	logger := logging.New("mcp")

	var in planner.Input
	if err := json.Unmarshal([]byte(input.SnapshotJSON), &in); err != nil {
		return nil, generatePlanOutput{}, fmt.Errorf("snapshot_json: %w", err)
	}
	if in.CaseID == "" {
		return nil, generatePlanOutput{}, fmt.Errorf("snapshot has no case_id")
	}
	if input.Now != "" {
		now, err := time.Parse("2006-01-02", input.Now)
		if err != nil {
			return nil, generatePlanOutput{}, fmt.Errorf("now: %w", err)
		}
		in.Now = now
	}
	if in.Now.IsZero() {
		in.Now = s.now().UTC().Truncate(24 * time.Hour)
	}

	seq, err := planner.Plan(in)
	if err != nil {
		logger.Error("plan failed", "case_id", in.CaseID, "err", err)
		return nil, generatePlanOutput{}, fmt.Errorf("generate_plan: %w", err)
	}

	payload, err := json.Marshal(seq)
	if err != nil {
		return nil, generatePlanOutput{}, fmt.Errorf("marshal plan: %w", err)
	}
	out := generatePlanOutput{
		PlanJSON:     string(payload),
		Moves:        len(seq.Moves),
		Observations: len(seq.Observations),
		Warnings:     len(seq.Warnings),
	}

	if input.Save {
		rec, err := s.Store.SavePlan(seq)
		if err != nil {
			return nil, generatePlanOutput{}, fmt.Errorf("save plan: %w", err)
		}
		out.PlanID = rec.ID
		out.Version = rec.Version
		logger.Info("plan saved", "case_id", in.CaseID, "plan_id", rec.ID, "version", rec.Version)
	}
	return nil, out, nil
}

func (s *Server) handleGetPlan(_ context.Context, _ *sdkmcp.CallToolRequest, input getPlanInput) (*sdkmcp.CallToolResult, getPlanOutput, error) {
	var (
		rec *store.PlanRecord
		err error
	)
	switch {
	case input.PlanID != "":
		rec, err = s.Store.GetPlan(input.PlanID)
	case input.CaseID != "":
		rec, err = s.Store.LatestPlan(input.CaseID)
	default:
		return nil, getPlanOutput{}, fmt.Errorf("plan_id or case_id is required")
	}
	if err != nil {
		return nil, getPlanOutput{}, fmt.Errorf("get_plan: %w", err)
	}
	if rec == nil {
		return nil, getPlanOutput{Found: false}, nil
	}
	payload, err := json.Marshal(rec.Plan)
	if err != nil {
		return nil, getPlanOutput{}, fmt.Errorf("marshal plan: %w", err)
	}
	return nil, getPlanOutput{
		Found:     true,
		PlanID:    rec.ID,
		CaseID:    rec.CaseID,
		Version:   rec.Version,
		CreatedAt: rec.CreatedAt,
		PlanJSON:  string(payload),
	}, nil
}

func (s *Server) handleListCases(_ context.Context, _ *sdkmcp.CallToolRequest, _ listCasesInput) (*sdkmcp.CallToolResult, listCasesOutput, error) {
	cases, err := s.Store.ListCases()
	if err != nil {
		return nil, listCasesOutput{}, fmt.Errorf("list_cases: %w", err)
	}
	return nil, listCasesOutput{Cases: cases}, nil
}
