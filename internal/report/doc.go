// Package report assembles the deterministic operations plan that the
// CLI prints and the catalog records.
package report
