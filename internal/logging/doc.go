// Package logging wraps log/slog with the handlers and attribute helpers used
// across the tool: a console handler that renders component-prefixed
// single-line records, a JSON handler for machine consumption, and shared
// helpers for building attrs and component loggers.
package logging
