// Package todo maintains the markdown review checklist for files that
// need manual attention.
package todo
