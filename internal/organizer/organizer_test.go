package organizer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bindery/internal/catalog"
	"bindery/internal/library"
	"bindery/internal/logging"
	"bindery/internal/organizer"
	"bindery/internal/report"
	"bindery/internal/testsupport"
)

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

func TestApplyRenamesAndDeletes(t *testing.T) {
	store := openStore(t)
	root := t.TempDir()
	ctx := context.Background()

	testsupport.WriteContent(t, filepath.Join(root, "raw.pdf"), "book")
	testsupport.WriteContent(t, filepath.Join(root, "copy.pdf"), "book")
	testsupport.WriteContent(t, filepath.Join(root, "tiny.pdf"), "x")

	plan := &report.Operations{
		Renames: []library.RenameOp{
			{From: "raw.pdf", To: "Author - Title.pdf", Reason: "normalized"},
		},
		DuplicateDeletes: []library.DuplicateGroup{
			{Keep: "Author - Title.pdf", Delete: []string{"copy.pdf"}},
		},
		SmallOrCorruptedDeletes: []library.DeleteOp{
			{Path: "tiny.pdf", Issue: library.IssueTooSmall},
		},
	}
	run, err := store.CreateRun(ctx, root, plan)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	summary, err := organizer.New(store, logging.NewNop()).Apply(ctx, run, organizer.Options{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if summary.Renamed != 1 || summary.Deleted != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	if _, err := os.Stat(filepath.Join(root, "Author - Title.pdf")); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	for _, gone := range []string{"raw.pdf", "copy.pdf", "tiny.pdf"} {
		if _, err := os.Stat(filepath.Join(root, gone)); !os.IsNotExist(err) {
			t.Fatalf("%s should be gone", gone)
		}
	}

	run, err = store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Status != catalog.RunApplied {
		t.Fatalf("expected applied run, got %q", run.Status)
	}
}

func TestApplySkipDeletes(t *testing.T) {
	store := openStore(t)
	root := t.TempDir()
	ctx := context.Background()

	testsupport.WriteContent(t, filepath.Join(root, "dup.pdf"), "book")

	plan := &report.Operations{
		DuplicateDeletes: []library.DuplicateGroup{
			{Keep: "keep.pdf", Delete: []string{"dup.pdf"}},
		},
	}
	run, err := store.CreateRun(ctx, root, plan)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	summary, err := organizer.New(store, logging.NewNop()).Apply(ctx, run, organizer.Options{SkipDeletes: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if summary.Skipped != 1 || summary.Deleted != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(root, "dup.pdf")); err != nil {
		t.Fatalf("file should still exist: %v", err)
	}

	ops, err := store.OperationsForRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("OperationsForRun: %v", err)
	}
	if ops[0].Status != catalog.OpSkipped {
		t.Fatalf("expected skipped op, got %q", ops[0].Status)
	}
}

func TestApplyCollisionUsesVariantName(t *testing.T) {
	store := openStore(t)
	root := t.TempDir()
	ctx := context.Background()

	testsupport.WriteContent(t, filepath.Join(root, "raw.pdf"), "new content")
	testsupport.WriteContent(t, filepath.Join(root, "Title.pdf"), "existing different content")

	plan := &report.Operations{
		Renames: []library.RenameOp{{From: "raw.pdf", To: "Title.pdf", Reason: "normalized"}},
	}
	run, err := store.CreateRun(ctx, root, plan)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	summary, err := organizer.New(store, logging.NewNop()).Apply(ctx, run, organizer.Options{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if summary.Renamed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	variant, err := os.ReadFile(filepath.Join(root, "Title (1).pdf"))
	if err != nil {
		t.Fatalf("variant file missing: %v", err)
	}
	if string(variant) != "new content" {
		t.Fatalf("variant holds wrong content: %q", variant)
	}
	original, _ := os.ReadFile(filepath.Join(root, "Title.pdf"))
	if string(original) != "existing different content" {
		t.Fatalf("existing file was clobbered")
	}
}

func TestApplyMissingSourceAndPartialRun(t *testing.T) {
	store := openStore(t)
	root := t.TempDir()
	ctx := context.Background()

	// One rename whose source disappeared, one delete pointing at a
	// directory so the remove fails.
	if err := os.MkdirAll(filepath.Join(root, "stubborn.pdf", "inner"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	plan := &report.Operations{
		Renames: []library.RenameOp{{From: "gone.pdf", To: "Gone.pdf", Reason: "normalized"}},
		SmallOrCorruptedDeletes: []library.DeleteOp{
			{Path: "stubborn.pdf", Issue: library.IssueCorruptedPDF},
		},
	}
	run, err := store.CreateRun(ctx, root, plan)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	summary, err := organizer.New(store, logging.NewNop()).Apply(ctx, run, organizer.Options{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if summary.Skipped != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	run, err = store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Status != catalog.RunPartial {
		t.Fatalf("expected partial run, got %q", run.Status)
	}
}
