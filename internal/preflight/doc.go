// Package preflight provides readiness checks for the filesystem paths
// a run depends on. The scan command calls RunAll before touching the
// tree so permission problems surface up front instead of halfway
// through a rename batch.
package preflight
