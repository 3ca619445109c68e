// Package metadata infers author, title, and publication year from noisy
// document filenames and synthesizes canonical replacements.
//
// The pipeline is a fixed sequence of heuristics: series-prefix and noise
// stripping, duplicate-marker removal, year extraction, parenthetical
// cleaning, an ordered author/title splitter cascade, and a final title
// cleanup pass. Order matters throughout; publisher names look like authors
// until the earlier passes have removed the surrounding context.
//
// Parsing never fails. Every stage falls back to a no-op when its pattern
// does not match, and an empty title after cleanup falls back to the
// noise-stripped stem so a synthesized name is always produced.
package metadata
