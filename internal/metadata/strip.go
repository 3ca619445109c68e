package metadata

import (
	"regexp"
	"strings"
)

var (
	genericSeriesRegex = regexp.MustCompile(`^\s*\(([^)]+)\)\s+(.+)$`)
	anySeparatorRegex  = regexp.MustCompile(`(?:--|[-:])`)

	trailingIndexParenRegex = regexp.MustCompile(`[-\s]*\(\d{1,2}\)\s*$`)
	trailingIndexDashRegex  = regexp.MustCompile(`-\d{1,2}\s*$`)
	indexBeforeParenRegex   = regexp.MustCompile(`-\d{1,2}\s+\(`)
)

func (p *Parser) removeSeriesPrefixes(s string) string {
	result := s
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(result, prefix) {
			result = result[len(prefix):]
			result = strings.TrimLeft(result, "- ]")
			break
		}
	}

	// Generic "(Series Name) Author - Title": drop the leading
	// parenthetical when the remainder starts with a plausible author.
	if matches := genericSeriesRegex.FindStringSubmatch(result); matches != nil {
		rest := matches[2]
		potentialAuthor := rest
		if loc := anySeparatorRegex.FindStringIndex(rest); loc != nil {
			potentialAuthor = rest[:loc[0]]
		}
		if isLikelyAuthor(potentialAuthor) {
			result = rest
		}
	}

	return strings.TrimSpace(result)
}

// cleanNoiseSources removes source-site signatures and opaque ID runs.
// Bounded fixed point: stripping one span can expose an adjacent one.
func cleanNoiseSources(s string) string {
	result := s
	for i := 0; i < 3; i++ {
		before := result
		for _, re := range noisePatterns {
			result = re.ReplaceAllString(result, "")
		}
		if result == before {
			break
		}
	}
	return strings.TrimSpace(result)
}

// removeDuplicateMarkers strips trailing copy indexes like "(1)" or "-2"
// that indicate a renamed download, not a distinct edition.
func removeDuplicateMarkers(s string) string {
	s = trailingIndexParenRegex.ReplaceAllString(s, "")
	s = trailingIndexDashRegex.ReplaceAllString(s, "")
	s = indexBeforeParenRegex.ReplaceAllString(s, " (")
	return s
}
