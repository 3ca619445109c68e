package inspect

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"bindery/internal/library"
	"bindery/internal/logging"
)

var pdfMagic = []byte("%PDF-")

// Checker probes scanned files for integrity problems beyond what the
// walk itself can see from metadata alone.
type Checker struct {
	logger *slog.Logger
}

func NewChecker(logger *slog.Logger) *Checker {
	return &Checker{logger: logging.NewComponentLogger(logger, "inspect")}
}

// Examine classifies the record. Files already flagged during the scan
// keep that classification; otherwise PDFs get a header probe and every
// file gets a readability check. The second return is false when the
// file is healthy.
func (c *Checker) Examine(rec *library.FileRecord) (library.Issue, bool) {
	if rec.FailedDownload {
		return library.IssueFailedDownload, true
	}
	if rec.TooSmall {
		return library.IssueTooSmall, true
	}

	if strings.EqualFold(rec.Extension, ".pdf") {
		if err := checkPDFHeader(rec.Path); err != nil {
			c.logger.Debug("pdf header check failed", logging.String("path", rec.Path), logging.Error(err))
			return library.IssueCorruptedPDF, true
		}
	}

	if _, err := os.Stat(rec.Path); err != nil {
		return library.IssueReadError, true
	}
	return "", false
}

// ExamineAll runs Examine over every record and returns the flagged
// records with their issues.
func (c *Checker) ExamineAll(records []*library.FileRecord) map[*library.FileRecord]library.Issue {
	issues := make(map[*library.FileRecord]library.Issue)
	for _, rec := range records {
		if issue, bad := c.Examine(rec); bad {
			issues[rec] = issue
		}
	}
	return issues
}

// checkPDFHeader verifies the file begins with the PDF magic bytes.
func checkPDFHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, len(pdfMagic))
	if _, err := f.Read(header); err != nil {
		return err
	}
	if string(header) != string(pdfMagic) {
		return fmt.Errorf("missing %s marker", pdfMagic)
	}
	return nil
}
