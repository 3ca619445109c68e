// Package library defines the shared domain types passed between the
// scanner, the normalizer, the duplicate detector, and the reporting layer.
package library
