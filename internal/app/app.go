package app

import (
	"fmt"
	"sync"

	"linkshelf/internal/adapters/jsonfile"
	"linkshelf/internal/adapters/sqlite"
	"linkshelf/internal/application/archive"
	"linkshelf/internal/application/paths"
	"linkshelf/internal/config"
	"linkshelf/internal/domain"
	"linkshelf/internal/logger"
	"linkshelf/internal/ports"
)

// App wires the tree database, the archive document and the archive manager.
// Outer surfaces run every operation through View or Mutate so tree edits
// and the database write that follows them are serialized.
type App struct {
	mu      sync.Mutex
	logger  logger.Logger
	repo    ports.TreeRepository
	tree    *domain.Tree
	archive *archive.Manager
}

// New opens the tree database, loads the tree and the archive document
func New(cfg *config.Config, log logger.Logger) (*App, error) {
	repo := sqlite.NewRepository()
	if err := repo.Open(cfg.TreeDBPath()); err != nil {
		return nil, fmt.Errorf("failed to open tree database: %w", err)
	}

	tree, err := repo.LoadTree()
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to load tree: %w", err)
	}
	log.Debug("tree loaded",
		logger.String("path", cfg.TreeDBPath()),
		logger.Int("nodes", tree.Len()),
	)

	manager, err := archive.Open(tree, jsonfile.NewStore(cfg.ArchivePath(), log), archive.WithLogger(log))
	if err != nil {
		repo.Close()
		return nil, err
	}

	return &App{
		logger:  log,
		repo:    repo,
		tree:    tree,
		archive: manager,
	}, nil
}

// Archive returns the archive manager
func (a *App) Archive() *archive.Manager {
	return a.archive
}

// Tree returns the managed tree
func (a *App) Tree() *domain.Tree {
	return a.tree
}

// Paths returns the resolver bound to the managed tree
func (a *App) Paths() *paths.Resolver {
	return a.archive.Paths()
}

// View runs fn with the tree locked
func (a *App) View(fn func() error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn()
}

// Mutate runs fn with the tree locked and writes the active tree back
// afterwards. The tree is saved even when fn fails, since a failed archive
// save still leaves the in-memory change in place.
func (a *App) Mutate(fn func() error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	opErr := fn()
	if err := a.repo.SaveTree(a.tree); err != nil {
		a.logger.Error("tree save failed", logger.Error(err))
		if opErr == nil {
			return fmt.Errorf("failed to save tree: %w", err)
		}
	}
	return opErr
}

// Close releases the tree database
func (a *App) Close() error {
	_ = a.logger.Sync()
	return a.repo.Close()
}
