package metadata

import "regexp"

// Built-in series prefixes stripped from the front of a filename stem.
// Callers can extend the list through NewParser.
var builtinSeriesPrefixes = []string{
	"London Mathematical Society Lecture Note Series",
	"Graduate Texts in Mathematics",
	"Progress in Mathematics",
	"[Springer-Lehrbuch]",
	"[Graduate studies in mathematics",
	"[Progress in Mathematics №",
	"[AMS Mathematical Surveys and Monographs",
}

// Source-site signatures, opaque hash runs, and ISBN-like digit runs.
// Removing one span can expose another immediately adjacent, so the
// stripper applies these to a bounded fixed point.
var noisePatterns = []*regexp.Regexp{
	// Z-Library variants
	regexp.MustCompile(`\s*[-\(]?\s*[zZ]-?Library(?:\.pdf)?\s*[)\.]?`),
	regexp.MustCompile(`\s*\([zZ]-?Library(?:\.pdf)?\)`),
	regexp.MustCompile(`\s*-\s*[zZ]-?Library(?:\.pdf)?`),
	// libgen variants
	regexp.MustCompile(`\s*[-\(]?\s*libgen(?:\.li)?(?:\.pdf)?\s*[)\.]?`),
	regexp.MustCompile(`\s*\(libgen(?:\.li)?(?:\.pdf)?\)`),
	regexp.MustCompile(`\s*-\s*libgen(?:\.li)?(?:\.pdf)?`),
	// Anna's Archive variants
	regexp.MustCompile(`Anna'?s?\s*Archive`),
	regexp.MustCompile(`\s*[-\(]?\s*Anna'?s?\s+Archive\s*[)\.]?`),
	regexp.MustCompile(`\s*\(Anna'?s?\s+Archive\)`),
	regexp.MustCompile(`\s*-\s*Anna'?s?\s+Archive`),
	// Hash and ISBN runs between double dashes
	regexp.MustCompile(`\s*--\s*[a-f0-9]{32}\s*(?:--)?`),
	regexp.MustCompile(`\s*--\s*\d{10,13}\s*(?:--)?`),
	regexp.MustCompile(`\s*--\s*[A-Za-z0-9]{16,}\s*(?:--)?`),
	regexp.MustCompile(`\s*--\s*[a-f0-9]{8,}\s*(?:--)?`),
	// "Uploaded by" credits
	regexp.MustCompile(`\s*[-\(]?\s*[Uu]ploaded by\s+[^)\-]+[)\.]?`),
	regexp.MustCompile(`\s*-\s*[Uu]ploaded by\s+[^)\-]+`),
	// "Via ..." credits
	regexp.MustCompile(`\s*[-\(]?\s*[Vv]ia\s+[^)\-]+[)\.]?`),
	// Website URLs
	regexp.MustCompile(`\s*[-\(]?\s*w{3}\.[a-zA-Z0-9-]+\.[a-z]{2,}\s*[)\.]?`),
	regexp.MustCompile(`\s*[-\(]?\s*[a-zA-Z0-9-]+\.(?:com|org|net|edu|io)\s*[)\.]?`),
}

// Keywords marking a parenthetical as publisher or series information
// rather than an author name. Includes CJK publishing terms.
var publisherKeywords = []string{
	"Press", "Publishing", "Academic Press", "Springer", "Cambridge", "Oxford", "MIT Press",
	"Series", "Textbook Series", "Graduate Texts", "Graduate Studies", "Lecture Notes",
	"Pure and Applied", "Mathematics", "Foundations of", "Monographs", "Studies", "Collection",
	"Textbook", "Edition", "Vol.", "Volume", "No.", "Part", "理工", "出版社", "の",
	"Z-Library", "libgen", "Anna's Archive",
}

// Stricter keyword list used when deciding whether a dash-joined suffix
// (no surrounding parens) is a publisher tail worth cutting.
var strictPublisherKeywords = []string{
	"Press", "Publishing", "Springer", "Cambridge", "Oxford", "MIT", "Wiley", "Elsevier",
	"Routledge", "Pearson", "McGraw", "Addison", "Prentice", "O'Reilly", "Princeton",
	"Harvard", "Yale", "Stanford", "Chicago", "California", "Columbia", "University",
	"Verlag", "Birkhäuser", "CUP",
}

// Substrings that disqualify a candidate string from being an author.
var nonAuthorKeywords = []string{
	"auth.", "translator", "translated by", "z-library", "libgen", "anna's archive", "2-library",
}
