// Package store persists hygiene results between analysis runs. The engine
// itself never touches storage; cross-run continuity is the caller's job, and
// these stores are how the CLI discharges it.
package store

import (
	"errors"

	"github.com/gaphound/gaphound/models"
)

// ErrNotFound is returned when no result exists for the requested story.
var ErrNotFound = errors.New("no stored result found")

// ResultStore defines the interface for hygiene result persistence.
type ResultStore interface {
	// Save persists a result as the latest run for its story.
	Save(result *models.HygieneResult) error

	// Latest retrieves the most recent result for a story.
	// Returns ErrNotFound if the story has never been analyzed.
	Latest(storyID string) (*models.HygieneResult, error)

	// Stories lists the ids of all stories with a stored result.
	Stories() ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}
