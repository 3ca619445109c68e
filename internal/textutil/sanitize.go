package textutil

import (
	"strings"
	"unicode"
)

// unsafeReplacer maps characters that are invalid or risky in
// filenames. Path separators and colons become dashes so the word
// boundary survives; the rest vanish.
var unsafeReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName makes a synthesized book filename safe for the
// filesystem. Control characters are dropped, unsafe punctuation is
// replaced or removed, runs of spaces collapse, and trailing dots are
// trimmed so the name stays valid on Windows shares too.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)

	name = unsafeReplacer.Replace(name)

	var b strings.Builder
	b.Grow(len(name))
	lastSpace := false
	for _, r := range name {
		if r == ' ' {
			if lastSpace {
				continue
			}
			lastSpace = true
		} else {
			lastSpace = false
		}
		b.WriteRune(r)
	}

	return strings.TrimRight(strings.TrimSpace(b.String()), ".")
}
