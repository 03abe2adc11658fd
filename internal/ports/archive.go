package ports

import "linkshelf/internal/domain"

// ArchiveStore loads and saves the archive document
type ArchiveStore interface {
	// Load returns an empty snapshot when the document is missing or malformed
	Load() (*domain.Snapshot, error)

	// Save overwrites the document and stamps LastModified
	Save(snapshot *domain.Snapshot) error
}
