package report_test

import (
	"path/filepath"
	"testing"

	"bindery/internal/library"
	"bindery/internal/report"
)

func TestBuildSortsEverything(t *testing.T) {
	root := string(filepath.Separator) + "books"
	join := func(parts ...string) string {
		return filepath.Join(append([]string{root}, parts...)...)
	}

	records := []*library.FileRecord{
		{Path: join("z.pdf"), Name: "z.pdf", NewName: "Zeta.pdf", NewPath: join("Zeta.pdf")},
		{Path: join("a.pdf"), Name: "a.pdf", NewName: "Alpha.pdf", NewPath: join("Alpha.pdf")},
		{Path: join("same.pdf"), Name: "same.pdf"},
	}
	groups := []library.DuplicateGroup{
		{Keep: join("n", "keep.pdf"), Delete: []string{join("n", "z-copy.pdf"), join("n", "a-copy.pdf")}},
		{Keep: join("b", "keep.pdf"), Delete: []string{join("b", "dup.pdf")}},
	}
	deletions := map[*library.FileRecord]library.Issue{
		{Path: join("tiny.pdf")}:   library.IssueTooSmall,
		{Path: join("broken.pdf")}: library.IssueCorruptedPDF,
	}
	todoItems := []library.TodoItem{
		{Category: "Incomplete downloads", File: "b.download", Message: "b"},
		{Category: "Corrupted PDF files", File: "a.pdf", Message: "a"},
	}

	ops := report.Build(records, groups, deletions, todoItems, root)

	if len(ops.Renames) != 2 || ops.Renames[0].From != "a.pdf" || ops.Renames[1].From != "z.pdf" {
		t.Fatalf("renames not sorted by source path: %+v", ops.Renames)
	}
	if ops.Renames[0].To != "Alpha.pdf" || ops.Renames[0].Reason != "normalized" {
		t.Fatalf("unexpected rename %+v", ops.Renames[0])
	}

	if ops.DuplicateDeletes[0].Keep != "b/keep.pdf" {
		t.Fatalf("groups not sorted by keep path: %+v", ops.DuplicateDeletes)
	}
	if ops.DuplicateDeletes[1].Delete[0] != "n/a-copy.pdf" {
		t.Fatalf("delete list not sorted: %+v", ops.DuplicateDeletes[1])
	}

	if ops.SmallOrCorruptedDeletes[0].Path != "broken.pdf" {
		t.Fatalf("issue deletes not sorted: %+v", ops.SmallOrCorruptedDeletes)
	}

	if ops.TodoItems[0].Category != "Corrupted PDF files" {
		t.Fatalf("todo items not sorted by category: %+v", ops.TodoItems)
	}
}

func TestCountsAndEmpty(t *testing.T) {
	ops := report.Build(nil, nil, nil, nil, "/books")
	if !ops.Empty() {
		t.Fatalf("plan with no operations should be empty")
	}

	ops.Renames = append(ops.Renames, library.RenameOp{From: "a", To: "b"})
	ops.DuplicateDeletes = append(ops.DuplicateDeletes, library.DuplicateGroup{Keep: "k", Delete: []string{"x", "y"}})
	renames, dupes, issues, todoCount := ops.Counts()
	if renames != 1 || dupes != 2 || issues != 0 || todoCount != 0 {
		t.Fatalf("unexpected counts %d %d %d %d", renames, dupes, issues, todoCount)
	}
	if ops.Empty() {
		t.Fatalf("plan with operations should not be empty")
	}
}

func TestRelativeFallsBackAndNormalises(t *testing.T) {
	if got := report.Relative(filepath.Join("/books", "sub", "x.pdf"), "/books"); got != "sub/x.pdf" {
		t.Fatalf("got %q", got)
	}
	if got := report.Relative("/books", "/books"); got != "" {
		t.Fatalf("root itself should map to empty string, got %q", got)
	}
}
