// Package errors provides the structured error type shared by the renderer,
// the entity-linking scorer and the command-line tools.
// Every failure carries a machine-readable code so callers can branch on
// the failure class without string matching.
package errors
