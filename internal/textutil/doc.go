// Package textutil provides text processing utilities for filename
// sanitization and Unicode folding.
//
// SanitizeFileName makes a string safe for filesystem use; FoldMarks
// strips combining marks so accented characters reduce to their ASCII
// base form while mark-free scripts pass through unchanged.
package textutil
