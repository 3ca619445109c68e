package catalog

import "time"

// Run statuses.
const (
	RunPlanned = "planned"
	RunApplied = "applied"
	RunPartial = "partial"
	RunFailed  = "failed"
)

// Operation kinds.
const (
	KindRename          = "rename"
	KindDuplicateDelete = "duplicate_delete"
	KindIssueDelete     = "issue_delete"
)

// Operation statuses.
const (
	OpPending = "pending"
	OpDone    = "done"
	OpFailed  = "failed"
	OpSkipped = "skipped"
)

// Run is one recorded planning pass over a library root.
type Run struct {
	ID                   string
	Root                 string
	Status               string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	RenameCount          int
	DuplicateDeleteCount int
	IssueDeleteCount     int
	TodoCount            int
	PlanJSON             string
	ErrorMessage         string
}

// Operation is a single planned file action belonging to a run.
type Operation struct {
	ID           int64
	RunID        string
	Kind         string
	Source       string
	Target       string
	Detail       string
	Status       string
	ErrorMessage string
	AppliedAt    *time.Time
}
