package dedupe

import (
	"strings"

	"bindery/internal/library"
)

// NameVariantGroups groups record indexes whose synthesized names differ
// only by a numeric " (N)" suffix. Informational; hash-based retention
// is unaffected.
func NameVariantGroups(records []*library.FileRecord) [][]int {
	nameGroups := make(map[string][]int)
	var order []string
	for idx, rec := range records {
		if rec.NewName == "" {
			continue
		}
		base := stripVariantSuffix(rec.NewName)
		if _, seen := nameGroups[base]; !seen {
			order = append(order, base)
		}
		nameGroups[base] = append(nameGroups[base], idx)
	}

	var variants [][]int
	for _, base := range order {
		if group := nameGroups[base]; len(group) > 1 {
			variants = append(variants, group)
		}
	}
	return variants
}

// stripVariantSuffix removes a trailing " (N)" disambiguator from the
// name part, leaving the extension alone.
func stripVariantSuffix(filename string) string {
	namePart := filename
	extPart := ""
	if dotIdx := strings.LastIndex(filename, "."); dotIdx != -1 {
		namePart = filename[:dotIdx]
		extPart = filename[dotIdx:]
	}

	if strings.HasSuffix(namePart, ")") {
		if openParen := strings.LastIndex(namePart, " ("); openParen != -1 {
			suffix := namePart[openParen:]
			if len(suffix) >= 4 {
				content := suffix[2 : len(suffix)-1]
				numeric := content != ""
				for _, r := range content {
					if r < '0' || r > '9' {
						numeric = false
						break
					}
				}
				if numeric {
					namePart = namePart[:openParen]
				}
			}
		}
	}

	return namePart + extPart
}
