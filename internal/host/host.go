// Package host defines the contracts tagsmith consumes from the
// application that owns the records, and a YAML-manifest
// implementation so the engine runs standalone from the command line.
package host

import (
	"context"

	"github.com/okoshkin/tagsmith/internal/model"
)

// Host is the record-owning collaborator
type Host interface {
	// Records enumerates the composite records of the given kind
	Records(ctx context.Context, kind string) ([]*model.Record, error)

	// IsVariant reports whether the record is a non-playable variant
	// (e.g. a creature fit) that should not be considered
	IsVariant(rec *model.Record) bool

	// ResolveMesh turns a component's mesh reference into a readable
	// file path
	ResolveMesh(meshPath string) string

	// EnsureKeyword makes sure the tag definition exists before it is
	// applied to any record
	EnsureKeyword(id string) error

	// ApplyKeyword adds the keyword to the record
	ApplyKeyword(rec *model.Record, id string) error

	// Logf reports a diagnostic line
	Logf(format string, args ...interface{})
}
