package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"linkshelf/internal/domain"
	"linkshelf/internal/logger"
	"linkshelf/internal/ports"
)

// Store implements ports.ArchiveStore on a single JSON document
type Store struct {
	path string
	log  logger.Logger
	now  func() time.Time
}

// Ensure Store implements ArchiveStore
var _ ports.ArchiveStore = (*Store)(nil)

// NewStore creates a store backed by the file at path
func NewStore(path string, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{path: path, log: log, now: time.Now}
}

// Load reads the archive document. A missing or unreadable document yields
// an empty snapshot so the application can still start.
func (s *Store) Load() (*domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("archive unreadable, starting empty",
				logger.String("path", s.path),
				logger.Error(err),
			)
		}
		return emptySnapshot(), nil
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn("archive malformed, starting empty",
			logger.String("path", s.path),
			logger.Error(err),
		)
		return emptySnapshot(), nil
	}

	if snap.ArchivedCategories == nil {
		snap.ArchivedCategories = []domain.CategoryRecord{}
	}
	if snap.ArchivedLinks == nil {
		snap.ArchivedLinks = []domain.LinkRecord{}
	}

	s.log.Debug("archive loaded",
		logger.String("path", s.path),
		logger.Int("entries", snap.Len()),
	)
	return &snap, nil
}

// Save stamps LastModified and replaces the document atomically
func (s *Store) Save(snap *domain.Snapshot) error {
	if snap == nil {
		snap = emptySnapshot()
	}
	snap.LastModified = s.now().UTC()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".archive-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close archive: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace archive: %w", err)
	}

	return nil
}

func emptySnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		ArchivedCategories: []domain.CategoryRecord{},
		ArchivedLinks:      []domain.LinkRecord{},
	}
}
