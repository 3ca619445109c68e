package metadata

import (
	"path/filepath"
	"regexp"
	"strings"

	"bindery/internal/library"
)

var (
	spaceRegex   = regexp.MustCompile(`\s{2,}`)
	bracketRegex = regexp.MustCompile(`\s*\[[^\]]*\]`)
)

// Parser turns noisy filename stems into structured metadata. The zero
// value is not usable; construct with NewParser.
type Parser struct {
	prefixes []string
}

// NewParser builds a parser with the built-in series prefixes plus any
// configured extras.
func NewParser(extraPrefixes ...string) *Parser {
	prefixes := make([]string, 0, len(builtinSeriesPrefixes)+len(extraPrefixes))
	prefixes = append(prefixes, builtinSeriesPrefixes...)
	for _, p := range extraPrefixes {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			prefixes = append(prefixes, trimmed)
		}
	}
	return &Parser{prefixes: prefixes}
}

// Parse infers metadata from a filename. The extension (with dot) is
// removed first, along with an incomplete-download suffix.
func (p *Parser) Parse(filename, extension string) library.Metadata {
	base := filename
	base = strings.TrimSuffix(base, ".download")
	base = strings.TrimSuffix(base, extension)
	base = strings.TrimSpace(base)

	// Series prefixes must go before bracket stripping; several of the
	// known prefixes open a bracket they never close.
	base = p.removeSeriesPrefixes(base)
	base = bracketRegex.ReplaceAllString(base, "")

	// Source signatures must go before author parsing or a site tag
	// ends up captured as the author.
	base = cleanNoiseSources(base)
	base = removeDuplicateMarkers(base)

	stem := strings.TrimSpace(base)

	year := extractYear(base)
	base = cleanParentheticals(base, year)

	authors, title := splitAuthorTitle(base)
	if title == "" {
		title = stem
	}

	return library.Metadata{
		Authors: authors,
		Title:   title,
		Year:    year,
	}
}

// NormalizeRecord fills NewName and NewPath on the record when the
// synthesized filename differs from the current one. Failed downloads
// and too-small files are left untouched.
func (p *Parser) NormalizeRecord(rec *library.FileRecord, preserveUnicode bool) {
	if rec == nil || rec.FailedDownload || rec.TooSmall {
		return
	}
	meta := p.Parse(rec.Name, rec.Extension)
	newName := Filename(meta, rec.Extension, preserveUnicode)
	if newName == rec.Name {
		return
	}
	rec.NewName = newName
	rec.NewPath = filepath.Join(filepath.Dir(rec.Path), newName)
}
