// Package dedupe finds byte-identical documents and decides which copy
// survives.
//
// Files are hashed concurrently through a bounded worker pool, grouped
// by digest in a single-threaded merge, and resolved by a three-tier
// retention policy: normalized names beat unnormalized ones, shallower
// paths beat deeper ones, newer files beat older ones. Unreadable files
// are logged and skipped rather than failing the batch.
package dedupe
