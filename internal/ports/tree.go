package ports

import "linkshelf/internal/domain"

// TreeStore is the hierarchical container of categories and links owned by
// the host application. The archive manager mutates it but never owns it.
type TreeStore interface {
	// Navigation
	Root() *domain.Node
	ArchiveRoot() *domain.Node
	Node(id string) (*domain.Node, bool)
	Children(node *domain.Node) []*domain.Node
	Parent(node *domain.Node) *domain.Node

	// Mutations
	AddNode(parent, node *domain.Node) error
	MoveNode(node, newParent *domain.Node) error
	RemoveNode(node *domain.Node) error

	// Nodes enumerates every node depth first (used by bare-name path fallback)
	Nodes() []*domain.Node
}

// TreeRepository persists the active (non-archived) part of the host tree
type TreeRepository interface {
	Open(path string) error
	Close() error

	LoadTree() (*domain.Tree, error)
	SaveTree(tree *domain.Tree) error
}
