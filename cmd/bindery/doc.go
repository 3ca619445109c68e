// Command bindery scans document collections, normalizes noisy
// filenames, detects duplicates, and records the resulting plan in a
// local catalog for later application.
package main
