package metadata

import (
	"regexp"
	"sort"
	"strings"
)

var (
	trailingAuthRegex = regexp.MustCompile(`\s*\([Aa]uth\.?\)`)
	trailingIDRegex   = regexp.MustCompile(`[-_][A-Za-z0-9]{8,}$`)
	emptyParenRegex   = regexp.MustCompile(`\(\s*\)`)

	// Edition, page-count, and "<Language> Edition" tokens carry no
	// title information once the year has been extracted.
	editionTokenRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\s*\d+(?:st|nd|rd|th)\s+[Ee]dition\b`),
		regexp.MustCompile(`\s*\d+(?:st|nd|rd|th)\s+[Ee]d\.?`),
		regexp.MustCompile(`\s*[Ee]dition\s+\d+\b`),
		regexp.MustCompile(`\s*\b\d+\s*[Pp]ages?\b`),
		regexp.MustCompile(`\s*\b(?:English|German|French|Spanish|Italian|Russian|Chinese|Japanese)\s+Edition\b`),
	}
)

// cleanTitle performs the final cleanup pass on a title candidate.
func cleanTitle(s string) string {
	s = strings.TrimSpace(s)

	// Author extraction can expose noise that sat inside the title part.
	s = cleanNoiseSources(s)

	s = trailingAuthRegex.ReplaceAllString(s, "")
	s = trailingIDRegex.ReplaceAllString(s, "")

	for _, re := range editionTokenRegexes {
		s = re.ReplaceAllString(s, "")
	}

	// Trailing publisher separated by a spaced dash uses the loose
	// predicate; a bare dash requires the strict keyword list.
	if idx := strings.LastIndex(s, " - "); idx != -1 {
		if isPublisherOrSeriesInfo(s[idx+3:]) {
			s = s[:idx]
		}
	}
	if idx := strings.LastIndex(s, "-"); idx > 0 && idx < len(s)-1 {
		if isStrictPublisherInfo(strings.TrimSpace(s[idx+1:])) {
			s = s[:idx]
		}
	}

	s = cleanOrphanedBrackets(s)
	s = emptyParenRegex.ReplaceAllString(s, "")

	s = spaceRegex.ReplaceAllString(s, " ")
	s = strings.TrimRight(s, "-:;,.")
	s = strings.TrimLeft(s, "-:;,.")

	return strings.TrimSpace(s)
}

// cleanOrphanedBrackets repairs unbalanced brackets in a single
// left-to-right scan. Unmatched closers become spaces so word
// separation survives; unmatched openers are deleted afterwards by
// index. Underscores become spaces in the same pass.
func cleanOrphanedBrackets(s string) string {
	var result []rune

	openParens := []int{}
	openBrackets := []int{}

	for _, r := range s {
		switch r {
		case '(':
			openParens = append(openParens, len(result))
			result = append(result, r)
		case ')':
			if len(openParens) > 0 {
				openParens = openParens[:len(openParens)-1]
				result = append(result, r)
			} else {
				result = append(result, ' ')
			}
		case '[':
			openBrackets = append(openBrackets, len(result))
			result = append(result, r)
		case ']':
			if len(openBrackets) > 0 {
				openBrackets = openBrackets[:len(openBrackets)-1]
				result = append(result, r)
			} else {
				result = append(result, ' ')
			}
		case '_':
			result = append(result, ' ')
		default:
			result = append(result, r)
		}
	}

	// Delete leftover openers from the end so indices stay valid.
	toRemove := append(openParens, openBrackets...)
	sort.Sort(sort.Reverse(sort.IntSlice(toRemove)))
	for _, idx := range toRemove {
		if idx < len(result) {
			result = append(result[:idx], result[idx+1:]...)
		}
	}

	return strings.TrimSpace(spaceRegex.ReplaceAllString(string(result), " "))
}
