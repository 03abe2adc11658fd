package archive

import (
	"fmt"
	"strings"
	"time"

	"linkshelf/internal/application"
	"linkshelf/internal/domain"
)

// EntryKind classifies a direct child of the archive root
type EntryKind string

const (
	EntryCategory EntryKind = "category"
	EntryLink     EntryKind = "link"
	EntryRating   EntryKind = "rating"
)

// Entry is a read-only view of one archive entry
type Entry struct {
	Node         *domain.Node
	Kind         EntryKind
	OriginalPath string
	ArchivedDate *time.Time
}

// Summary is the archive state used to render the archive root label
type Summary struct {
	Count      int
	Label      string
	Categories int
	Links      int
	Ratings    int
}

// Summary returns the current archive counts
func (m *Manager) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Summary{Label: m.tree.ArchiveRoot().Name}
	for _, e := range m.entriesLocked() {
		s.Count++
		switch e.Kind {
		case EntryCategory:
			s.Categories++
		case EntryLink:
			s.Links++
		case EntryRating:
			s.Ratings++
		}
	}
	return s
}

// Entries lists the archive entries in archive order
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.entriesLocked()
}

func (m *Manager) entriesLocked() []Entry {
	children := m.tree.Children(m.tree.ArchiveRoot())
	out := make([]Entry, 0, len(children))
	for _, n := range children {
		kind := EntryCategory
		switch {
		case m.isRatingEntry(n):
			kind = EntryRating
		case n.IsLink():
			kind = EntryLink
		}
		out = append(out, Entry{
			Node:         n,
			Kind:         kind,
			OriginalPath: n.OriginalPath,
			ArchivedDate: n.ArchivedDate,
		})
	}
	return out
}

// Find returns the archive entry whose ID equals id or starts with it.
// A prefix matching several entries is rejected.
func (m *Manager) Find(id string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := application.ValidateRequired("nodeID", id); err != nil {
		return Entry{}, err
	}

	var matches []Entry
	for _, e := range m.entriesLocked() {
		if e.Node.ID == id {
			return e, nil
		}
		if strings.HasPrefix(e.Node.ID, id) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return Entry{}, fmt.Errorf("archive entry %s: %w", id, application.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return Entry{}, &application.ValidationError{
			Field:   "nodeID",
			Message: fmt.Sprintf("%s matches %d archive entries", id, len(matches)),
		}
	}
}

// Resolve finds an active node by its full path
func (m *Manager) Resolve(path string) (*domain.Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.paths.ResolveFullPath(path)
}

// PathOf returns the full path of node
func (m *Manager) PathOf(node *domain.Node) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.paths.ComputePath(node)
}
