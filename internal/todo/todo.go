package todo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"bindery/internal/library"
)

const (
	categoryFailedDownload = "Incomplete downloads"
	categoryTooSmall       = "Suspiciously small files"
	categoryCorruptedPDF   = "Corrupted PDF files"
	categoryOther          = "Other file issues"
)

// categoryOrder fixes the section order in the rendered checklist.
var categoryOrder = []string{
	categoryFailedDownload,
	categoryTooSmall,
	categoryCorruptedPDF,
	categoryOther,
}

// List accumulates review items and renders them as a markdown
// checklist. Items already present in an existing checklist file are
// not added again.
type List struct {
	path     string
	existing map[string]struct{}
	items    []library.TodoItem
	removed  bool
}

// Load opens the checklist at path, reading any existing items so that
// repeated runs do not duplicate them. A missing file is not an error.
func Load(path, targetDir string) (*List, error) {
	if path == "" {
		path = filepath.Join(targetDir, "todo.md")
	}

	existing := make(map[string]struct{})
	content, err := os.ReadFile(path)
	if err == nil {
		for _, item := range parseItems(string(content)) {
			existing[item] = struct{}{}
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	return &List{path: path, existing: existing}, nil
}

// Path returns the checklist file location.
func (l *List) Path() string {
	return l.path
}

// AddIssue records a review item for the file. Duplicate messages,
// whether from this run or the existing checklist, are dropped.
func (l *List) AddIssue(rec *library.FileRecord, issue library.Issue) {
	item := library.TodoItem{
		Category: categoryFor(issue),
		File:     rec.Name,
		Message:  messageFor(rec, issue),
	}
	if _, seen := l.existing[item.Message]; seen {
		return
	}
	l.existing[item.Message] = struct{}{}
	l.items = append(l.items, item)
}

// Remove drops every item mentioning the filename, including entries
// carried over from a previous checklist. Used when a flagged file ends
// up deleted by the same run.
func (l *List) Remove(filename string) {
	lower := strings.ToLower(filename)
	kept := l.items[:0]
	for _, item := range l.items {
		if strings.Contains(strings.ToLower(item.Message), lower) {
			delete(l.existing, item.Message)
			l.removed = true
			continue
		}
		kept = append(kept, item)
	}
	l.items = kept

	for msg := range l.existing {
		if strings.Contains(strings.ToLower(msg), lower) {
			delete(l.existing, msg)
			l.removed = true
		}
	}
}

// Items returns the new items in render order.
func (l *List) Items() []library.TodoItem {
	out := make([]library.TodoItem, len(l.items))
	copy(out, l.items)
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := categoryRank(out[i].Category), categoryRank(out[j].Category)
		if ci != cj {
			return ci < cj
		}
		return out[i].File < out[j].File
	})
	return out
}

// Write renders the checklist and writes it to disk. Nothing is written
// when no items exist at all, unless a removal emptied the list and the
// stale file needs rewriting.
func (l *List) Write() error {
	items := l.Items()
	if len(items) == 0 && len(l.existing) == 0 && !l.removed {
		return nil
	}
	return os.WriteFile(l.path, []byte(l.render(items)), 0o644)
}

func (l *List) render(items []library.TodoItem) string {
	var md strings.Builder
	md.WriteString("# Files needing attention\n\n")
	md.WriteString(fmt.Sprintf("Updated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	byCategory := make(map[string][]library.TodoItem)
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	// Carry over items from a previous checklist that this run did not
	// re-report and did not remove.
	var carried []string
	for msg := range l.existing {
		found := false
		for _, item := range l.items {
			if item.Message == msg {
				found = true
				break
			}
		}
		if !found {
			carried = append(carried, msg)
		}
	}
	sort.Strings(carried)

	empty := true
	for _, category := range categoryOrder {
		section := byCategory[category]
		if len(section) == 0 {
			continue
		}
		empty = false
		md.WriteString(fmt.Sprintf("## %s\n\n", category))
		for _, item := range section {
			md.WriteString(fmt.Sprintf("- [ ] %s\n", item.Message))
		}
		md.WriteString("\n")
	}

	if len(carried) > 0 {
		empty = false
		md.WriteString("## Carried over\n\n")
		for _, msg := range carried {
			md.WriteString(fmt.Sprintf("- [ ] %s\n", msg))
		}
		md.WriteString("\n")
	}

	if empty {
		md.WriteString("All files checked, nothing to do.\n\n")
	}

	md.WriteString("---\n")
	md.WriteString("*Generated by bindery*\n")
	return md.String()
}

func categoryFor(issue library.Issue) string {
	switch issue {
	case library.IssueFailedDownload:
		return categoryFailedDownload
	case library.IssueTooSmall:
		return categoryTooSmall
	case library.IssueCorruptedPDF:
		return categoryCorruptedPDF
	default:
		return categoryOther
	}
}

func messageFor(rec *library.FileRecord, issue library.Issue) string {
	switch issue {
	case library.IssueFailedDownload:
		return fmt.Sprintf("Re-download: %s (incomplete download)", rec.Name)
	case library.IssueTooSmall:
		return fmt.Sprintf("Check and re-download: %s (only %d bytes)", rec.Name, rec.Size)
	case library.IssueCorruptedPDF:
		return fmt.Sprintf("Re-download: %s (corrupted or invalid PDF)", rec.Name)
	case library.IssueReadError:
		return fmt.Sprintf("Check permissions: %s (file could not be read)", rec.Name)
	default:
		return fmt.Sprintf("Check file: %s (unclassified issue)", rec.Name)
	}
}

func categoryRank(category string) int {
	for i, c := range categoryOrder {
		if c == category {
			return i
		}
	}
	return len(categoryOrder)
}

// parseItems pulls checklist entries out of markdown content, checked
// or not.
func parseItems(content string) []string {
	var items []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- [") {
			continue
		}
		item := strings.TrimPrefix(line, "- [ ] ")
		item = strings.TrimPrefix(item, "- [x] ")
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
