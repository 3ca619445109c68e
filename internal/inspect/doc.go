// Package inspect performs lightweight integrity checks on scanned
// files, classifying damaged or unreadable entries for later review.
package inspect
