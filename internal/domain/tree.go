package domain

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// ErrInvalidMove is returned when a tree mutation would break the hierarchy
var ErrInvalidMove = errors.New("invalid tree operation")

// Tree is an arena of nodes indexed by ID, with separate parent and child
// indexes. The root is invisible: its children are the top-level entries,
// one of which is the archive root.
type Tree struct {
	nodes    map[string]*Node
	parent   map[string]string
	children map[string][]string
	rootID   string
	archive  string
}

// NewTree creates an empty tree holding only the invisible root and the archive root
func NewTree() *Tree {
	root := &Node{ID: uuid.NewString(), Kind: KindCategory}
	t := &Tree{
		nodes:    map[string]*Node{root.ID: root},
		parent:   map[string]string{},
		children: map[string][]string{},
		rootID:   root.ID,
	}

	archiveRoot := &Node{
		ID:            uuid.NewString(),
		Kind:          KindCategory,
		Name:          ArchiveRootLabel(0),
		IsArchiveRoot: true,
	}
	t.attach(root.ID, archiveRoot)
	t.archive = archiveRoot.ID
	return t
}

// Root returns the invisible tree root
func (t *Tree) Root() *Node {
	return t.nodes[t.rootID]
}

// ArchiveRoot returns the well-known archive root
func (t *Tree) ArchiveRoot() *Node {
	return t.nodes[t.archive]
}

// Node looks a node up by ID
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Contains reports whether n belongs to this tree
func (t *Tree) Contains(n *Node) bool {
	if n == nil {
		return false
	}
	got, ok := t.nodes[n.ID]
	return ok && got == n
}

// Children returns the ordered children of n
func (t *Tree) Children(n *Node) []*Node {
	if n == nil {
		return nil
	}
	ids := t.children[n.ID]
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.nodes[id])
	}
	return out
}

// Parent returns the parent of n, or nil for the root and unknown nodes
func (t *Tree) Parent(n *Node) *Node {
	if n == nil {
		return nil
	}
	pid, ok := t.parent[n.ID]
	if !ok {
		return nil
	}
	return t.nodes[pid]
}

// AddNode appends n as the last child of parent
func (t *Tree) AddNode(parent, n *Node) error {
	if n == nil || n.ID == "" {
		return fmt.Errorf("%w: node has no ID", ErrInvalidMove)
	}
	if _, exists := t.nodes[n.ID]; exists {
		return fmt.Errorf("%w: node %s already in tree", ErrInvalidMove, n.ID)
	}
	if err := t.checkContainer(parent); err != nil {
		return err
	}
	t.attach(parent.ID, n)
	return nil
}

// MoveNode re-parents n, with its subtree, as the last child of newParent
func (t *Tree) MoveNode(n, newParent *Node) error {
	if !t.Contains(n) {
		return fmt.Errorf("%w: node is not in tree", ErrInvalidMove)
	}
	if n.ID == t.rootID || n.ID == t.archive {
		return fmt.Errorf("%w: cannot move %q", ErrInvalidMove, n.Name)
	}
	if err := t.checkContainer(newParent); err != nil {
		return err
	}
	if newParent.ID == n.ID || t.IsAncestor(n, newParent) {
		return fmt.Errorf("%w: cannot move %q into its own subtree", ErrInvalidMove, n.Name)
	}

	t.detach(n.ID)
	t.parent[n.ID] = newParent.ID
	t.children[newParent.ID] = append(t.children[newParent.ID], n.ID)
	return nil
}

// RemoveNode deletes n and its whole subtree
func (t *Tree) RemoveNode(n *Node) error {
	if !t.Contains(n) {
		return fmt.Errorf("%w: node is not in tree", ErrInvalidMove)
	}
	if n.ID == t.rootID || n.ID == t.archive {
		return fmt.Errorf("%w: cannot remove %q", ErrInvalidMove, n.Name)
	}

	t.detach(n.ID)
	t.drop(n.ID)
	return nil
}

// Nodes enumerates every node except the invisible root, depth first
func (t *Tree) Nodes() []*Node {
	var out []*Node
	t.walk(t.rootID, func(n *Node) {
		if n.ID != t.rootID {
			out = append(out, n)
		}
	})
	return out
}

// IsAncestor reports whether ancestor lies on the parent chain of n
func (t *Tree) IsAncestor(ancestor, n *Node) bool {
	if ancestor == nil || n == nil {
		return false
	}
	for id, ok := t.parent[n.ID]; ok; id, ok = t.parent[id] {
		if id == ancestor.ID {
			return true
		}
	}
	return false
}

// Len returns the number of nodes, the invisible root excluded
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

func (t *Tree) checkContainer(parent *Node) error {
	if !t.Contains(parent) {
		return fmt.Errorf("%w: parent is not in tree", ErrInvalidMove)
	}
	if !parent.IsCategory() {
		return fmt.Errorf("%w: %q is not a category", ErrInvalidMove, parent.Name)
	}
	return nil
}

func (t *Tree) attach(parentID string, n *Node) {
	t.nodes[n.ID] = n
	t.parent[n.ID] = parentID
	t.children[parentID] = append(t.children[parentID], n.ID)
}

func (t *Tree) detach(id string) {
	pid, ok := t.parent[id]
	if !ok {
		return
	}
	t.children[pid] = slices.DeleteFunc(t.children[pid], func(c string) bool { return c == id })
	delete(t.parent, id)
}

func (t *Tree) drop(id string) {
	for _, c := range t.children[id] {
		t.drop(c)
	}
	delete(t.children, id)
	delete(t.parent, id)
	delete(t.nodes, id)
}

func (t *Tree) walk(id string, fn func(*Node)) {
	fn(t.nodes[id])
	for _, c := range t.children[id] {
		t.walk(c, fn)
	}
}
