// Package paths computes full tree paths and resolves them back to nodes.
package paths

import (
	"strings"

	"linkshelf/internal/domain"
	"linkshelf/internal/logger"
	"linkshelf/internal/ports"
)

// Separator joins the names of a full tree path
const Separator = " > "

// Resolver computes and resolves full tree paths against a TreeStore
type Resolver struct {
	tree ports.TreeStore
	log  logger.Logger
}

// NewResolver creates a Resolver over tree
func NewResolver(tree ports.TreeStore, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{tree: tree, log: log}
}

// ComputePath returns the names from the top level down to node, joined by
// Separator. The invisible root has the empty path.
func (r *Resolver) ComputePath(node *domain.Node) string {
	return Join(r.segments(node))
}

func (r *Resolver) segments(node *domain.Node) []string {
	root := r.tree.Root()
	var names []string
	for n := node; n != nil && n.ID != root.ID; n = r.tree.Parent(n) {
		names = append(names, n.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// ResolvePath finds the node at path. A path without Separator is matched
// against top-level categories first and then, as a deprecated fallback,
// against the first node with that name anywhere in the tree. The fallback
// is ambiguous when names repeat across branches; store full paths instead.
func (r *Resolver) ResolvePath(path string) (*domain.Node, error) {
	if strings.Contains(path, Separator) {
		return r.ResolveFullPath(path)
	}
	if path == "" {
		return nil, &domain.NotFoundError{Path: path}
	}

	for _, n := range r.topLevel() {
		if n.IsCategory() && n.Name == path {
			return n, nil
		}
	}

	archiveRoot := r.tree.ArchiveRoot()
	for _, n := range r.tree.Nodes() {
		if n.Name != path || r.inArchive(n, archiveRoot) {
			continue
		}
		r.log.Warn("resolved bare name by tree-wide fallback",
			logger.String("name", path),
			logger.String("resolved", r.ComputePath(n)),
		)
		return n, nil
	}

	return nil, &domain.NotFoundError{Path: path}
}

// ResolveFullPath walks path segment by segment with exact name matches.
// It never falls back to a bare-name search.
func (r *Resolver) ResolveFullPath(path string) (*domain.Node, error) {
	if path == "" {
		return nil, &domain.NotFoundError{Path: path}
	}

	segments := Split(path)
	candidates := r.topLevel()
	var current *domain.Node

	for i, seg := range segments {
		last := i == len(segments)-1
		current = nil
		for _, c := range candidates {
			if c.Name != seg {
				continue
			}
			if !last && !c.IsCategory() {
				continue
			}
			current = c
			break
		}
		if current == nil {
			return nil, &domain.NotFoundError{Path: path}
		}
		candidates = r.tree.Children(current)
	}

	return current, nil
}

// topLevel returns the children of the invisible root, archive root excluded
func (r *Resolver) topLevel() []*domain.Node {
	var out []*domain.Node
	for _, n := range r.tree.Children(r.tree.Root()) {
		if !n.IsArchiveRoot {
			out = append(out, n)
		}
	}
	return out
}

func (r *Resolver) inArchive(n, archiveRoot *domain.Node) bool {
	for p := n; p != nil; p = r.tree.Parent(p) {
		if p.ID == archiveRoot.ID {
			return true
		}
	}
	return false
}

// Join builds a full path from its segments
func Join(segments []string) string {
	return strings.Join(segments, Separator)
}

// Split breaks a full path into its segments
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, Separator)
}
