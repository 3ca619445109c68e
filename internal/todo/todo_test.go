package todo_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bindery/internal/library"
	"bindery/internal/testsupport"
	"bindery/internal/todo"
)

func TestAddIssueAndWrite(t *testing.T) {
	dir := t.TempDir()
	list, err := todo.Load("", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list.Path() != filepath.Join(dir, "todo.md") {
		t.Fatalf("unexpected default path %s", list.Path())
	}

	list.AddIssue(&library.FileRecord{Name: "b.pdf.download"}, library.IssueFailedDownload)
	list.AddIssue(&library.FileRecord{Name: "a.pdf.download"}, library.IssueFailedDownload)
	list.AddIssue(&library.FileRecord{Name: "tiny.pdf", Size: 12}, library.IssueTooSmall)
	list.AddIssue(&library.FileRecord{Name: "broken.pdf"}, library.IssueCorruptedPDF)

	items := list.Items()
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	// Category order first, filename order within a category.
	if items[0].File != "a.pdf.download" || items[1].File != "b.pdf.download" {
		t.Fatalf("unexpected ordering: %+v", items[:2])
	}
	if items[2].Category != "Suspiciously small files" {
		t.Fatalf("unexpected category %q", items[2].Category)
	}

	if err := list.Write(); err != nil {
		t.Fatalf("Write: %v", err)
	}
	content, err := os.ReadFile(list.Path())
	if err != nil {
		t.Fatalf("read checklist: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "- [ ] Check and re-download: tiny.pdf (only 12 bytes)") {
		t.Fatalf("missing small-file entry in:\n%s", text)
	}
	if !strings.Contains(text, "## Incomplete downloads") {
		t.Fatalf("missing section header in:\n%s", text)
	}
}

func TestLoadSkipsExistingItems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.md")
	testsupport.WriteContent(t, path, strings.Join([]string{
		"# Files needing attention",
		"",
		"- [ ] Re-download: old.pdf.download (incomplete download)",
		"- [x] Re-download: done.pdf.download (incomplete download)",
		"",
	}, "\n"))

	list, err := todo.Load(path, dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	list.AddIssue(&library.FileRecord{Name: "old.pdf.download"}, library.IssueFailedDownload)
	list.AddIssue(&library.FileRecord{Name: "new.pdf.download"}, library.IssueFailedDownload)

	items := list.Items()
	if len(items) != 1 || items[0].File != "new.pdf.download" {
		t.Fatalf("existing item should be deduplicated, got %+v", items)
	}

	if err := list.Write(); err != nil {
		t.Fatalf("Write: %v", err)
	}
	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), "## Carried over") {
		t.Fatalf("previous items should be carried over:\n%s", content)
	}
	if strings.Count(string(content), "old.pdf.download") != 1 {
		t.Fatalf("old item duplicated:\n%s", content)
	}
}

func TestRemoveDropsMatchingItems(t *testing.T) {
	dir := t.TempDir()
	list, err := todo.Load("", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	list.AddIssue(&library.FileRecord{Name: "dup.pdf", Size: 3}, library.IssueTooSmall)
	list.AddIssue(&library.FileRecord{Name: "keep.pdf"}, library.IssueCorruptedPDF)

	list.Remove("dup.pdf")
	items := list.Items()
	if len(items) != 1 || items[0].File != "keep.pdf" {
		t.Fatalf("expected only keep.pdf after Remove, got %+v", items)
	}
}

func TestRemoveDropsCarriedOverEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.md")
	testsupport.WriteContent(t, path, strings.Join([]string{
		"# Files needing attention",
		"",
		"## Suspiciously small files",
		"",
		"- [ ] Check and re-download: tiny.pdf (only 10 bytes)",
		"",
	}, "\n"))

	list, err := todo.Load(path, dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	list.Remove("tiny.pdf")
	if err := list.Write(); err != nil {
		t.Fatalf("Write: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read checklist: %v", err)
	}
	if strings.Contains(string(content), "tiny.pdf") {
		t.Fatalf("removed entry still present:\n%s", content)
	}
	if !strings.Contains(string(content), "All files checked, nothing to do.") {
		t.Fatalf("expected empty checklist rendering:\n%s", content)
	}
}

func TestWriteNothingWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	list, err := todo.Load("", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := list.Write(); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(list.Path()); !os.IsNotExist(err) {
		t.Fatalf("empty list should not create a file")
	}
}
