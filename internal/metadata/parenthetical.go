package metadata

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	simpleParenRegex = regexp.MustCompile(`\([^)]+\)`)
	// RE2 has no recursion; one level of nesting is matched directly and
	// deeper nesting falls out of the surrounding fixed-point loop.
	nestedParenRegex = regexp.MustCompile(`\([^()]*(?:\([^()]*\)[^()]*)*\)`)

	hexRunRegex   = regexp.MustCompile(`[a-f0-9]{8,}`)
	alnumRunRegex = regexp.MustCompile(`[A-Za-z0-9]{16,}`)
)

// cleanParentheticals removes parenthetical groups that carry publisher
// or series information: first the year group itself, then nested and
// simple groups classified by isPublisherOrSeriesInfo.
func cleanParentheticals(s string, year int) string {
	result := s

	if year != 0 {
		pattern := fmt.Sprintf(`\s*\(\s*%d\s*(?:,\s*[^)]+)?\s*\)`, year)
		result = regexp.MustCompile(pattern).ReplaceAllString(result, "")
	}

	for {
		changed := false
		result = nestedParenRegex.ReplaceAllStringFunc(result, func(match string) string {
			if isPublisherOrSeriesInfo(match) {
				changed = true
				return ""
			}
			return match
		})
		if !changed {
			break
		}
	}

	result = simpleParenRegex.ReplaceAllStringFunc(result, func(match string) string {
		if isPublisherOrSeriesInfo(match) {
			return ""
		}
		return match
	})

	result = spaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// isPublisherOrSeriesInfo classifies a string as publisher or series
// metadata. Three signals: known keywords, opaque ID runs, and the
// digits-plus-punctuation shape of series numbering.
func isPublisherOrSeriesInfo(s string) bool {
	for _, k := range publisherKeywords {
		if strings.Contains(s, k) {
			return true
		}
	}

	if hexRunRegex.MatchString(s) && len(s) > 8 {
		return true
	}
	if alnumRunRegex.MatchString(s) && len(s) > 16 {
		return true
	}

	hasNumbers := false
	nonLetterCount := 0
	for _, c := range s {
		if unicode.IsDigit(c) {
			hasNumbers = true
		}
		if !unicode.IsLetter(c) && c != ' ' {
			nonLetterCount++
		}
	}
	return hasNumbers && nonLetterCount > 2
}

func isStrictPublisherInfo(s string) bool {
	for _, k := range strictPublisherKeywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
