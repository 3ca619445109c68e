package report

import (
	"path/filepath"
	"sort"
	"strings"

	"bindery/internal/library"
)

// Operations is the complete plan produced by a scan: every rename,
// deletion and review item, with paths relative to the scan root.
type Operations struct {
	Renames                 []library.RenameOp       `json:"renames"`
	DuplicateDeletes        []library.DuplicateGroup `json:"duplicate_deletes"`
	SmallOrCorruptedDeletes []library.DeleteOp       `json:"small_or_corrupted_deletes"`
	TodoItems               []library.TodoItem       `json:"todo_items"`
}

// Build assembles a deterministic Operations plan. Slices are sorted so
// two runs over the same tree produce identical output.
func Build(records []*library.FileRecord, groups []library.DuplicateGroup, deletions map[*library.FileRecord]library.Issue, todoItems []library.TodoItem, root string) *Operations {
	out := &Operations{
		Renames:                 []library.RenameOp{},
		DuplicateDeletes:        []library.DuplicateGroup{},
		SmallOrCorruptedDeletes: []library.DeleteOp{},
		TodoItems:               []library.TodoItem{},
	}

	for _, rec := range records {
		if !rec.NeedsRename() {
			continue
		}
		out.Renames = append(out.Renames, library.RenameOp{
			From:   Relative(rec.Path, root),
			To:     Relative(rec.NewPath, root),
			Reason: "normalized",
		})
	}
	sort.Slice(out.Renames, func(i, j int) bool {
		return out.Renames[i].From < out.Renames[j].From
	})

	for _, group := range groups {
		rel := library.DuplicateGroup{Keep: Relative(group.Keep, root)}
		for _, path := range group.Delete {
			rel.Delete = append(rel.Delete, Relative(path, root))
		}
		sort.Strings(rel.Delete)
		out.DuplicateDeletes = append(out.DuplicateDeletes, rel)
	}
	sort.Slice(out.DuplicateDeletes, func(i, j int) bool {
		return out.DuplicateDeletes[i].Keep < out.DuplicateDeletes[j].Keep
	})

	for rec, issue := range deletions {
		out.SmallOrCorruptedDeletes = append(out.SmallOrCorruptedDeletes, library.DeleteOp{
			Path:  Relative(rec.Path, root),
			Issue: issue,
		})
	}
	sort.Slice(out.SmallOrCorruptedDeletes, func(i, j int) bool {
		return out.SmallOrCorruptedDeletes[i].Path < out.SmallOrCorruptedDeletes[j].Path
	})

	out.TodoItems = append(out.TodoItems, todoItems...)
	sort.SliceStable(out.TodoItems, func(i, j int) bool {
		if out.TodoItems[i].Category != out.TodoItems[j].Category {
			return out.TodoItems[i].Category < out.TodoItems[j].Category
		}
		return out.TodoItems[i].File < out.TodoItems[j].File
	})

	return out
}

// Empty reports whether the plan contains no work at all.
func (o *Operations) Empty() bool {
	return len(o.Renames) == 0 && len(o.DuplicateDeletes) == 0 &&
		len(o.SmallOrCorruptedDeletes) == 0 && len(o.TodoItems) == 0
}

// Counts summarises the plan for log lines and run records.
func (o *Operations) Counts() (renames, duplicateDeletes, issueDeletes, todoItems int) {
	duplicates := 0
	for _, group := range o.DuplicateDeletes {
		duplicates += len(group.Delete)
	}
	return len(o.Renames), duplicates, len(o.SmallOrCorruptedDeletes), len(o.TodoItems)
}

// Relative rewrites an absolute path relative to root with forward
// slashes, falling back to the input when no relation exists.
func Relative(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = strings.ReplaceAll(rel, "\\", "/")
	if rel == "." {
		rel = ""
	}
	return rel
}
