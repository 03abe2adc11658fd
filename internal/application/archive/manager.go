// Package archive moves tree entities and rating values in and out of the
// archive root and keeps the archive document in step with every change.
package archive

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"linkshelf/internal/application"
	"linkshelf/internal/application/paths"
	"linkshelf/internal/domain"
	"linkshelf/internal/logger"
	"linkshelf/internal/ports"
)

// Manager archives, restores and deletes tree entities and rating values.
// All entry points share one mutex, so it is safe for concurrent callers.
type Manager struct {
	mu    sync.Mutex
	tree  ports.TreeStore
	store ports.ArchiveStore
	paths *paths.Resolver
	log   logger.Logger
	now   func() time.Time
	// held keeps document records that could not be attached at open. They
	// are written back on every save.
	held *domain.Snapshot
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger used for mutations and degraded outcomes
func WithLogger(log logger.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithClock overrides the time source for archive stamps
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Open loads the archive document once and attaches its entries under the
// archive root of tree. Load failures leave the archive empty. Records that
// conflict with tree are skipped but kept in the document.
func Open(tree ports.TreeStore, store ports.ArchiveStore, opts ...Option) (*Manager, error) {
	if tree == nil {
		return nil, errors.New("archive: tree store is required")
	}
	if store == nil {
		return nil, errors.New("archive: archive store is required")
	}

	m := &Manager{
		tree:  tree,
		store: store,
		log:   logger.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.paths = paths.NewResolver(tree, m.log)

	snap, err := store.Load()
	if err != nil {
		m.log.Warn("archive load failed, starting empty", logger.Error(err))
		snap = nil
	}
	if snap != nil {
		held, errs := attachSnapshot(tree, snap)
		for _, err := range errs {
			m.log.Warn("archive entry skipped, kept in document", logger.Error(err))
		}
		if !held.IsEmpty() {
			m.held = held
		}
	}
	m.relabel()

	m.log.Debug("archive opened", logger.Int("entries", m.countLocked()))
	return m, nil
}

// Paths exposes the resolver bound to the managed tree
func (m *Manager) Paths() *paths.Resolver {
	return m.paths
}

// ArchiveCategory moves a category and its subtree under the archive root
func (m *Manager) ArchiveCategory(node *domain.Node) error {
	return m.archiveNode(node, domain.KindCategory, "archive category")
}

// ArchiveLink moves a link under the archive root
func (m *Manager) ArchiveLink(node *domain.Node) error {
	return m.archiveNode(node, domain.KindLink, "archive link")
}

func (m *Manager) archiveNode(node *domain.Node, kind domain.NodeKind, op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := application.ValidateKind("node", node, kind); err != nil {
		return err
	}
	if err := m.checkActive(node); err != nil {
		return err
	}

	origin := m.paths.ComputePath(m.tree.Parent(node))
	if err := m.tree.MoveNode(node, m.tree.ArchiveRoot()); err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	node.MarkArchived(origin, m.now())
	m.relabel()

	m.log.Info("archived",
		logger.String("kind", kind.String()),
		logger.String("name", node.Name),
		logger.String("from", origin),
	)
	return m.persist(op)
}

// RestoreResult describes where a restored node ended up
type RestoreResult struct {
	Node   *domain.Node
	Parent *domain.Node
	Path   string
	// Degraded is set when the original location was gone and the node was
	// restored at the tree root instead.
	Degraded    bool
	MissingPath string
}

// RestoreCategory moves an archived category back under its original parent,
// or under the tree root when that parent no longer exists
func (m *Manager) RestoreCategory(node *domain.Node) (*RestoreResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := application.ValidateKind("node", node, domain.KindCategory); err != nil {
		return nil, err
	}
	if err := m.checkArchiveEntry(node); err != nil {
		return nil, err
	}
	if m.isRatingEntry(node) {
		return nil, &application.ValidationError{
			Field:   "node",
			Message: fmt.Sprintf("%q is an archived rating, restore it as a rating", node.Name),
		}
	}

	result := &RestoreResult{Node: node, Parent: m.tree.Root()}
	if node.OriginalPath != "" {
		target, err := m.paths.ResolvePath(node.OriginalPath)
		if err == nil && target.IsCategory() {
			result.Parent = target
		} else {
			result.Degraded = true
			result.MissingPath = node.OriginalPath
		}
	}

	if err := m.tree.MoveNode(node, result.Parent); err != nil {
		return nil, fmt.Errorf("failed to restore category: %w", err)
	}
	node.ClearArchive()
	m.relabel()
	result.Path = m.paths.ComputePath(node)

	if result.Degraded {
		m.log.Warn("original location missing, restored at root",
			logger.String("name", node.Name),
			logger.String("missing", result.MissingPath),
		)
	} else {
		m.log.Info("restored", logger.String("kind", "Category"), logger.String("path", result.Path))
	}

	return result, m.persist("restore category")
}

// RestoreLink moves an archived link back into its original category. There
// is no root fallback: an unresolved path aborts with nothing changed.
func (m *Manager) RestoreLink(node *domain.Node) (*RestoreResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := application.ValidateKind("node", node, domain.KindLink); err != nil {
		return nil, err
	}
	if err := m.checkArchiveEntry(node); err != nil {
		return nil, err
	}
	if node.OriginalPath == "" {
		return nil, &application.ValidationError{
			Field:   "originalPath",
			Message: fmt.Sprintf("archived link %q has no original category path", node.Name),
		}
	}

	target, err := m.paths.ResolvePath(node.OriginalPath)
	if err != nil {
		return nil, err
	}
	if !target.IsCategory() {
		return nil, &domain.NotFoundError{Path: node.OriginalPath}
	}

	if err := m.tree.MoveNode(node, target); err != nil {
		return nil, fmt.Errorf("failed to restore link: %w", err)
	}
	node.ClearArchive()
	m.relabel()

	result := &RestoreResult{Node: node, Parent: target, Path: m.paths.ComputePath(node)}
	m.log.Info("restored", logger.String("kind", "Link"), logger.String("path", result.Path))

	return result, m.persist("restore link")
}

// PermanentlyDelete removes an archive entry and its subtree for good.
// Callers must obtain confirmation first.
func (m *Manager) PermanentlyDelete(node *domain.Node) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if node == nil {
		return application.ValidateRequired("nodeID", "")
	}
	if err := m.checkArchiveEntry(node); err != nil {
		return err
	}

	if err := m.tree.RemoveNode(node); err != nil {
		return fmt.Errorf("failed to delete archive entry: %w", err)
	}
	m.relabel()

	m.log.Info("permanently deleted", logger.String("name", node.Name), logger.String("id", node.ID))
	return m.persist("delete")
}

// checkActive rejects nodes that are not part of the live tree
func (m *Manager) checkActive(node *domain.Node) error {
	if !m.owns(node) {
		return &application.ValidationError{Field: "node", Message: fmt.Sprintf("%q is not in the tree", node.Name)}
	}
	if node.ID == m.tree.Root().ID || node.IsArchiveRoot {
		return &application.ValidationError{Field: "node", Message: "cannot archive a root node"}
	}
	if m.inArchive(node) {
		return &application.ValidationError{Field: "node", Message: fmt.Sprintf("%q is already archived", node.Name)}
	}
	return nil
}

// checkArchiveEntry requires node to be a direct child of the archive root
func (m *Manager) checkArchiveEntry(node *domain.Node) error {
	if !m.owns(node) || m.tree.Parent(node) == nil || m.tree.Parent(node).ID != m.tree.ArchiveRoot().ID {
		return &application.ValidationError{
			Field:   "node",
			Message: fmt.Sprintf("%q is not an archive entry", node.Name),
		}
	}
	return nil
}

func (m *Manager) owns(node *domain.Node) bool {
	got, ok := m.tree.Node(node.ID)
	return ok && got == node
}

func (m *Manager) inArchive(node *domain.Node) bool {
	archiveID := m.tree.ArchiveRoot().ID
	for p := m.tree.Parent(node); p != nil; p = m.tree.Parent(p) {
		if p.ID == archiveID {
			return true
		}
	}
	return false
}

// isRatingEntry reports whether node is a synthetic rating archive entry
func (m *Manager) isRatingEntry(node *domain.Node) bool {
	if !node.IsCategory() || !domain.IsRatingArchiveName(node.Name) {
		return false
	}
	children := m.tree.Children(node)
	return len(children) == 1 && children[0].IsLink() && strings.HasPrefix(children[0].URL, "rating:")
}

// relabel recomputes the archive root display name. It never expands the node.
func (m *Manager) relabel() {
	root := m.tree.ArchiveRoot()
	root.Name = domain.ArchiveRootLabel(m.countLocked())
}

func (m *Manager) countLocked() int {
	return len(m.tree.Children(m.tree.ArchiveRoot()))
}

// persist writes the archive through. A failure leaves the in-memory change
// in place and is reported as a PersistError.
func (m *Manager) persist(op string) error {
	if err := m.store.Save(snapshotOf(m.tree, m.held)); err != nil {
		m.log.Error("archive save failed", logger.String("op", op), logger.Error(err))
		return &application.PersistError{Op: op, Err: err}
	}
	return nil
}
