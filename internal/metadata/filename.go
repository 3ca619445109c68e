package metadata

import (
	"fmt"
	"strings"

	"bindery/internal/library"
	"bindery/internal/textutil"
)

// Filename synthesizes the canonical "[Author - ]Title[ (Year)].ext"
// name for parsed metadata. When preserveUnicode is false, accented
// characters are folded to their ASCII base form; scripts without
// combining marks (CJK) pass through unchanged. Filesystem-unsafe
// characters are sanitized even though that alters the title text:
// a colon in a title deliberately becomes a dash so the name stays
// valid on every filesystem.
func Filename(meta library.Metadata, extension string, preserveUnicode bool) string {
	var b strings.Builder
	if meta.Authors != "" {
		b.WriteString(meta.Authors)
		b.WriteString(" - ")
	}
	b.WriteString(meta.Title)
	if meta.Year != 0 {
		fmt.Fprintf(&b, " (%d)", meta.Year)
	}

	name := b.String()
	if !preserveUnicode {
		name = textutil.FoldMarks(name)
	}
	name = textutil.SanitizeFileName(name)
	return name + extension
}
