// Package organizer executes a planned run against the filesystem.
//
// It walks the catalog's pending operations in order, performing
// collision-safe renames and deletions. Individual failures are
// recorded against the operation and never abort the batch, so a
// permission problem on one file still lets the rest of the plan
// proceed.
package organizer
