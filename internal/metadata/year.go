package metadata

import (
	"regexp"
	"strconv"
)

var yearRegex = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// extractYear returns the rightmost plausible publication year in s, or
// zero when none is present. Filenames often carry both a year inside
// the title and a publication year near the end; the rightmost token is
// the publication year by convention.
func extractYear(s string) int {
	matches := yearRegex.FindAllString(s, -1)
	if len(matches) == 0 {
		return 0
	}
	year, err := strconv.Atoi(matches[len(matches)-1])
	if err != nil {
		return 0
	}
	return year
}
