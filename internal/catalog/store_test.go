package catalog_test

import (
	"context"
	"testing"

	"bindery/internal/catalog"
	"bindery/internal/library"
	"bindery/internal/report"
	"bindery/internal/testsupport"
)

func samplePlan() *report.Operations {
	return &report.Operations{
		Renames: []library.RenameOp{
			{From: "raw.pdf", To: "Author - Title.pdf", Reason: "normalized"},
		},
		DuplicateDeletes: []library.DuplicateGroup{
			{Keep: "keep.pdf", Delete: []string{"copy1.pdf", "copy2.pdf"}},
		},
		SmallOrCorruptedDeletes: []library.DeleteOp{
			{Path: "tiny.pdf", Issue: library.IssueTooSmall},
		},
		TodoItems: []library.TodoItem{
			{Category: "Incomplete downloads", File: "x.download", Message: "Re-download: x.download"},
		},
	}
}

func openStore(t *testing.T) *catalog.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateRunRecordsPlanAndOperations(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.CreateRun(ctx, "/books", samplePlan())
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if run.Status != catalog.RunPlanned {
		t.Fatalf("expected planned status, got %q", run.Status)
	}
	if run.RenameCount != 1 || run.DuplicateDeleteCount != 2 || run.IssueDeleteCount != 1 || run.TodoCount != 1 {
		t.Fatalf("unexpected counters %+v", run)
	}
	if run.PlanJSON == "" {
		t.Fatalf("plan JSON should be stored")
	}

	ops, err := store.OperationsForRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("OperationsForRun: %v", err)
	}
	if len(ops) != 4 {
		t.Fatalf("expected 4 operations, got %d", len(ops))
	}
	if ops[0].Kind != catalog.KindRename || ops[0].Target != "Author - Title.pdf" {
		t.Fatalf("unexpected first op %+v", ops[0])
	}
	if ops[1].Kind != catalog.KindDuplicateDelete || ops[1].Detail != "duplicate of keep.pdf" {
		t.Fatalf("unexpected duplicate op %+v", ops[1])
	}
	if ops[3].Kind != catalog.KindIssueDelete || ops[3].Detail != "too_small" {
		t.Fatalf("unexpected issue op %+v", ops[3])
	}
	for _, op := range ops {
		if op.Status != catalog.OpPending {
			t.Fatalf("new operations should be pending, got %q", op.Status)
		}
	}
}

func TestLatestPlannedScopedToRoot(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.CreateRun(ctx, "/books", samplePlan())
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if _, err := store.CreateRun(ctx, "/other", samplePlan()); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	got, err := store.LatestPlanned(ctx, "/books")
	if err != nil {
		t.Fatalf("LatestPlanned: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Fatalf("expected run %s, got %+v", first.ID, got)
	}

	if err := store.FinishRun(ctx, first.ID, catalog.RunApplied, ""); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}
	got, err = store.LatestPlanned(ctx, "/books")
	if err != nil {
		t.Fatalf("LatestPlanned: %v", err)
	}
	if got != nil {
		t.Fatalf("applied run should no longer be planned, got %+v", got)
	}
}

func TestMarkOperationAndFinishRun(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.CreateRun(ctx, "/books", samplePlan())
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	ops, err := store.OperationsForRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("OperationsForRun: %v", err)
	}

	if err := store.MarkOperation(ctx, ops[0].ID, catalog.OpDone, ""); err != nil {
		t.Fatalf("MarkOperation: %v", err)
	}
	if err := store.MarkOperation(ctx, ops[1].ID, catalog.OpFailed, "permission denied"); err != nil {
		t.Fatalf("MarkOperation: %v", err)
	}

	ops, err = store.OperationsForRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("OperationsForRun: %v", err)
	}
	if ops[0].Status != catalog.OpDone || ops[0].AppliedAt == nil {
		t.Fatalf("done op not updated: %+v", ops[0])
	}
	if ops[1].Status != catalog.OpFailed || ops[1].ErrorMessage != "permission denied" {
		t.Fatalf("failed op not updated: %+v", ops[1])
	}

	if err := store.FinishRun(ctx, run.ID, catalog.RunPartial, "1 operation failed"); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}
	run, err = store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Status != catalog.RunPartial || run.ErrorMessage != "1 operation failed" {
		t.Fatalf("run not finished: %+v", run)
	}

	if err := store.FinishRun(ctx, "no-such-run", catalog.RunApplied, ""); err == nil {
		t.Fatalf("expected error for unknown run")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.CreateRun(ctx, "/books", samplePlan()); err != nil {
			t.Fatalf("CreateRun: %v", err)
		}
	}
	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected limit respected, got %d runs", len(runs))
	}
	if runs[0].CreatedAt.Before(runs[1].CreatedAt) {
		t.Fatalf("runs not newest first")
	}

	if _, err := store.GetRun(ctx, "missing"); err != nil {
		t.Fatalf("GetRun missing should be nil, nil: %v", err)
	}
}
