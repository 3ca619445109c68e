// Package catalog stores planned and applied runs in a SQLite database
// so that a plan can be reviewed and applied later, and past runs can
// be audited.
package catalog
