package library

import "time"

// Issue classifies a problem detected for a scanned file.
type Issue string

const (
	IssueFailedDownload Issue = "failed_download"
	IssueTooSmall       Issue = "too_small"
	IssueCorruptedPDF   Issue = "corrupted_pdf"
	IssueReadError      Issue = "read_error"
)

// FileRecord describes one file discovered by the scanner.
type FileRecord struct {
	Path           string
	Name           string
	Extension      string
	Size           int64
	ModTime        time.Time
	FailedDownload bool
	TooSmall       bool

	// NewName and NewPath are populated by normalization when the file
	// needs a rename. Empty when the name is already canonical.
	NewName string
	NewPath string
}

// NeedsRename reports whether normalization produced a different name.
func (r *FileRecord) NeedsRename() bool {
	return r.NewName != "" && r.NewName != r.Name
}

// Metadata holds the author/title/year inferred from a filename.
// Authors is empty when no author could be determined; Year is zero
// when the name carries no plausible publication year.
type Metadata struct {
	Authors string
	Title   string
	Year    int
}

// RenameOp is a planned rename with a human-readable reason.
type RenameOp struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

// DeleteOp is a planned deletion tied to the issue that motivated it.
type DeleteOp struct {
	Path  string `json:"path"`
	Issue Issue  `json:"issue"`
}

// DuplicateGroup is a set of byte-identical files. Keep is the single
// retained path; Delete lists the rest in stable order.
type DuplicateGroup struct {
	Keep   string   `json:"keep"`
	Delete []string `json:"delete"`
}

// TodoItem is one entry in the generated review checklist.
type TodoItem struct {
	Category string `json:"category"`
	File     string `json:"file"`
	Message  string `json:"message"`
}
