package metadata

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	trailingAuthorRegex = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)\s*$`)
	separatorRegex      = regexp.MustCompile(`^(.+?)\s*(?:--|[-:])\s+(.+)$`)
	multiAuthorRegex    = regexp.MustCompile(`^([A-Z][^:]+?),\s*([A-Z][^:]+?)\s*(?:--|[-:])\s+(.+)$`)
	semicolonRegex      = regexp.MustCompile(`^(.+?)\s*;\s*(.+)$`)

	authorNoiseRegex = regexp.MustCompile(`\s*\((?:[Aa]uth\.?|[Aa]uthor|[Ee]ds?\.?|[Tt]ranslator)\)`)
)

// splitAuthorTitle applies the splitter cascade in priority order. The
// order is load-bearing: the trailing-author form must win over the
// separator form or "Title (Author)" names lose their author to the
// dash inside the title.
func splitAuthorTitle(s string) (string, string) {
	s = strings.TrimSpace(s)

	// "Title (Author)"
	if matches := trailingAuthorRegex.FindStringSubmatch(s); matches != nil {
		titlePart, authorPart := matches[1], matches[2]
		if isLikelyAuthor(authorPart) && !isPublisherOrSeriesInfo("("+authorPart+")") {
			return cleanAuthorName(authorPart), cleanTitle(titlePart)
		}
	}

	// "Author - Title" or "Author: Title"
	if matches := separatorRegex.FindStringSubmatch(s); matches != nil {
		authorPart, titlePart := matches[1], matches[2]
		if isLikelyAuthor(authorPart) && titlePart != "" {
			return cleanAuthorName(authorPart), cleanTitle(titlePart)
		}
	}

	// "Last, First - Title" with two comma-separated authors
	if matches := multiAuthorRegex.FindStringSubmatch(s); matches != nil {
		author1, author2, titlePart := matches[1], matches[2], matches[3]
		if isLikelyAuthor(author1) && isLikelyAuthor(author2) {
			authors := fmt.Sprintf("%s, %s", cleanAuthorName(author1), cleanAuthorName(author2))
			return authors, cleanTitle(titlePart)
		}
	}

	// "Title; Author"
	if matches := semicolonRegex.FindStringSubmatch(s); matches != nil {
		titlePart, authorPart := matches[1], matches[2]
		if isLikelyAuthor(authorPart) && !isPublisherOrSeriesInfo(authorPart) {
			return cleanAuthorName(authorPart), cleanTitle(titlePart)
		}
	}

	// No clear author.
	return "", cleanTitle(s)
}

// isLikelyAuthor reports whether s plausibly names a person: long
// enough, free of role and site keywords, not purely numeric, and
// carrying either an uppercase Latin letter or a non-ASCII letter so
// CJK names pass.
func isLikelyAuthor(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return false
	}

	lower := strings.ToLower(s)
	for _, k := range nonAuthorKeywords {
		if strings.Contains(lower, k) {
			return false
		}
	}

	digitsOnly := true
	for _, c := range s {
		if !unicode.IsDigit(c) && c != '-' && c != '_' {
			digitsOnly = false
			break
		}
	}
	if digitsOnly {
		return false
	}

	hasUppercase := false
	hasNonLatin := false
	for _, c := range s {
		if unicode.IsUpper(c) {
			hasUppercase = true
		}
		if unicode.IsLetter(c) && c > 127 {
			hasNonLatin = true
		}
	}
	return hasUppercase || hasNonLatin
}

// cleanAuthorName strips role markers and joins a single "First, Last"
// comma pair. Multi-comma author lists keep all their commas.
func cleanAuthorName(s string) string {
	s = strings.TrimSpace(s)
	s = authorNoiseRegex.ReplaceAllString(s, "")

	if strings.Count(s, ",") == 1 {
		if idx := strings.Index(s, ", "); idx != -1 {
			before := strings.TrimSpace(s[:idx])
			after := strings.TrimSpace(s[idx+2:])
			if len(strings.Fields(before)) == 1 && len(strings.Fields(after)) == 1 {
				s = before + " " + after
			}
		}
	}

	s = spaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
