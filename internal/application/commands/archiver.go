package commands

import (
	"linkshelf/internal/application/archive"
	"linkshelf/internal/domain"
)

// Archiver is the archive service the commands drive
type Archiver interface {
	ArchiveCategory(node *domain.Node) error
	ArchiveLink(node *domain.Node) error
	RestoreCategory(node *domain.Node) (*archive.RestoreResult, error)
	RestoreLink(node *domain.Node) (*archive.RestoreResult, error)
	PermanentlyDelete(node *domain.Node) error
	RestoreRating(entry *domain.Node) (*archive.RatingRestoreResult, error)
	ChangeRating(parent *domain.Node, ratingName string, score int, reason string) (*archive.RatingChangeResult, error)

	Summary() archive.Summary
	Entries() []archive.Entry
	Find(id string) (archive.Entry, error)
	Resolve(path string) (*domain.Node, error)
	PathOf(node *domain.Node) string
}

// Ensure Manager implements Archiver
var _ Archiver = (*archive.Manager)(nil)

// ShortID returns the display form of a node ID
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
