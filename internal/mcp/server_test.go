package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"stratagem/internal/store"
	"stratagem/pkg/planner"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})))
	os.Exit(m.Run())
}

func newTestServer() *Server {
	s := NewServer(store.NewMemStore(), "test")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func snapshot(caseID string) string {
	in := planner.Input{
		CaseID: caseID,
		Domain: "employment",
		Documents: []planner.Document{
			{ID: "d1", Name: "dismissal letter", ExtractedFacts: "the same manager heard both the dismissal and the appeal"},
		},
	}
	b, _ := json.Marshal(in)
	return string(b)
}

func TestListDomains(t *testing.T) {
	s := newTestServer()
	_, out, err := s.handleListDomains(context.Background(), nil, listDomainsInput{})
	if err != nil {
		t.Fatalf("list_domains: %v", err)
	}
	if len(out.Domains) < 4 {
		t.Fatalf("expected at least 4 domains, got %d", len(out.Domains))
	}
	seen := map[string]bool{}
	for _, d := range out.Domains {
		seen[d.Domain] = true
		if d.DisplayName == "" {
			t.Errorf("domain %s has no display name", d.Domain)
		}
	}
	for _, want := range []string{"employment", "clinical-negligence", "housing-disrepair", "generic"} {
		if !seen[want] {
			t.Errorf("missing domain %s", want)
		}
	}
}

func TestGeneratePlan(t *testing.T) {
	s := newTestServer()
	_, out, err := s.handleGeneratePlan(context.Background(), nil, generatePlanInput{
		SnapshotJSON: snapshot("EMP-1"),
	})
	if err != nil {
		t.Fatalf("generate_plan: %v", err)
	}
	if out.Moves == 0 {
		t.Error("expected moves in generated plan")
	}
	if out.PlanID != "" {
		t.Error("plan should not be saved without save=true")
	}

	var seq planner.MoveSequence
	if err := json.Unmarshal([]byte(out.PlanJSON), &seq); err != nil {
		t.Fatalf("plan_json not valid: %v", err)
	}
	if seq.CaseID != "EMP-1" {
		t.Errorf("plan case id = %q", seq.CaseID)
	}
}

func TestGeneratePlanRejectsBadSnapshot(t *testing.T) {
	s := newTestServer()
	_, _, err := s.handleGeneratePlan(context.Background(), nil, generatePlanInput{
		SnapshotJSON: "{not json",
	})
	if err == nil {
		t.Error("expected error for malformed snapshot")
	}
	_, _, err = s.handleGeneratePlan(context.Background(), nil, generatePlanInput{
		SnapshotJSON: `{"domain":"employment"}`,
	})
	if err == nil {
		t.Error("expected error for snapshot without case_id")
	}
}

func TestGeneratePlanExplicitNow(t *testing.T) {
	s := newTestServer()
	_, out, err := s.handleGeneratePlan(context.Background(), nil, generatePlanInput{
		SnapshotJSON: snapshot("EMP-2"),
		Now:          "2024-06-15",
	})
	if err != nil {
		t.Fatalf("generate_plan: %v", err)
	}
	var seq planner.MoveSequence
	if err := json.Unmarshal([]byte(out.PlanJSON), &seq); err != nil {
		t.Fatalf("plan_json not valid: %v", err)
	}
	want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if !seq.GeneratedAt.Equal(want) {
		t.Errorf("generated_at = %v, want %v", seq.GeneratedAt, want)
	}
}

func TestSaveAndFetchPlan(t *testing.T) {
	s := newTestServer()
	_, gen, err := s.handleGeneratePlan(context.Background(), nil, generatePlanInput{
		SnapshotJSON: snapshot("EMP-3"),
		Save:         true,
	})
	if err != nil {
		t.Fatalf("generate_plan: %v", err)
	}
	if gen.PlanID == "" || gen.Version != 1 {
		t.Fatalf("expected saved plan with version 1, got %+v", gen)
	}

	_, byID, err := s.handleGetPlan(context.Background(), nil, getPlanInput{PlanID: gen.PlanID})
	if err != nil {
		t.Fatalf("get_plan by id: %v", err)
	}
	if !byID.Found || byID.CaseID != "EMP-3" {
		t.Errorf("get_plan by id = %+v", byID)
	}

	_, byCase, err := s.handleGetPlan(context.Background(), nil, getPlanInput{CaseID: "EMP-3"})
	if err != nil {
		t.Fatalf("get_plan by case: %v", err)
	}
	if !byCase.Found || byCase.PlanID != gen.PlanID {
		t.Errorf("get_plan by case = %+v", byCase)
	}

	_, missing, err := s.handleGetPlan(context.Background(), nil, getPlanInput{PlanID: "nope"})
	if err != nil {
		t.Fatalf("get_plan missing: %v", err)
	}
	if missing.Found {
		t.Error("expected found=false for unknown plan id")
	}

	_, _, err = s.handleGetPlan(context.Background(), nil, getPlanInput{})
	if err == nil {
		t.Error("expected error when neither plan_id nor case_id given")
	}
}

func TestListCases(t *testing.T) {
	s := newTestServer()
	for i := 0; i < 2; i++ {
		_, _, err := s.handleGeneratePlan(context.Background(), nil, generatePlanInput{
			SnapshotJSON: snapshot("EMP-4"),
			Save:         true,
		})
		if err != nil {
			t.Fatalf("generate_plan: %v", err)
		}
	}
	_, out, err := s.handleListCases(context.Background(), nil, listCasesInput{})
	if err != nil {
		t.Fatalf("list_cases: %v", err)
	}
	if len(out.Cases) != 1 {
		t.Fatalf("expected 1 case, got %d", len(out.Cases))
	}
	if out.Cases[0].PlanCount != 2 || out.Cases[0].LatestVersion != 2 {
		t.Errorf("case summary = %+v", out.Cases[0])
	}
}
