package archive

import (
	"fmt"

	"github.com/google/uuid"

	"linkshelf/internal/domain"
	"linkshelf/internal/ports"
)

// snapshotOf serializes the direct children of the archive root, followed by
// the held records that could not be attached at open
func snapshotOf(tree ports.TreeStore, held *domain.Snapshot) *domain.Snapshot {
	snap := &domain.Snapshot{
		ArchivedCategories: []domain.CategoryRecord{},
		ArchivedLinks:      []domain.LinkRecord{},
	}
	for _, n := range tree.Children(tree.ArchiveRoot()) {
		switch n.Kind {
		case domain.KindCategory:
			snap.ArchivedCategories = append(snap.ArchivedCategories, categoryRecord(tree, n))
		case domain.KindLink:
			snap.ArchivedLinks = append(snap.ArchivedLinks, linkRecord(n))
		}
	}
	if held != nil {
		snap.ArchivedCategories = append(snap.ArchivedCategories, held.ArchivedCategories...)
		snap.ArchivedLinks = append(snap.ArchivedLinks, held.ArchivedLinks...)
	}
	return snap
}

// attachSnapshot rebuilds the entries of snap under the archive root, one
// top-level record at a time. A record that conflicts with the tree is
// removed again on its own and returned in held with the reason; the other
// records stay attached.
func attachSnapshot(tree ports.TreeStore, snap *domain.Snapshot) (held *domain.Snapshot, errs []error) {
	archiveRoot := tree.ArchiveRoot()
	held = &domain.Snapshot{}

	for _, rec := range snap.ArchivedCategories {
		n, err := attachCategory(tree, archiveRoot, rec)
		if err == nil {
			continue
		}
		if n != nil {
			_ = tree.RemoveNode(n)
		}
		held.ArchivedCategories = append(held.ArchivedCategories, rec)
		errs = append(errs, fmt.Errorf("category %q: %w", rec.Name, err))
	}
	for _, rec := range snap.ArchivedLinks {
		if err := tree.AddNode(archiveRoot, linkNode(rec)); err != nil {
			held.ArchivedLinks = append(held.ArchivedLinks, rec)
			errs = append(errs, fmt.Errorf("link %q: %w", rec.Title, err))
		}
	}
	return held, errs
}

// categoryRecord writes sub-categories to Children and links to Links, so a
// reload rebuilds sub-categories first and links after them. Interleaved
// sibling order is not preserved.
func categoryRecord(tree ports.TreeStore, n *domain.Node) domain.CategoryRecord {
	rec := domain.CategoryRecord{
		ID:                 n.ID,
		Name:               n.Name,
		Description:        n.Description,
		Icon:               n.Icon,
		CreatedDate:        n.CreatedDate,
		ModifiedDate:       n.ModifiedDate,
		ArchivedDate:       n.ArchivedDate,
		OriginalParentPath: n.OriginalPath,
		Ratings:            n.Ratings,
	}
	for _, c := range tree.Children(n) {
		switch c.Kind {
		case domain.KindCategory:
			rec.Children = append(rec.Children, categoryRecord(tree, c))
		case domain.KindLink:
			rec.Links = append(rec.Links, linkRecord(c))
		}
	}
	return rec
}

func linkRecord(n *domain.Node) domain.LinkRecord {
	return domain.LinkRecord{
		ID:                   n.ID,
		Title:                n.Name,
		URL:                  n.URL,
		Description:          n.Description,
		CreatedDate:          n.CreatedDate,
		ModifiedDate:         n.ModifiedDate,
		ArchivedDate:         n.ArchivedDate,
		OriginalCategoryPath: n.OriginalPath,
		Ratings:              n.Ratings,
	}
}

// attachCategory returns the created node even on a nested failure so the
// caller can roll it back
func attachCategory(tree ports.TreeStore, parent *domain.Node, rec domain.CategoryRecord) (*domain.Node, error) {
	n := &domain.Node{
		ID:           idOrNew(rec.ID),
		Kind:         domain.KindCategory,
		Name:         rec.Name,
		Description:  rec.Description,
		Icon:         rec.Icon,
		CreatedDate:  rec.CreatedDate,
		ModifiedDate: rec.ModifiedDate,
		ArchivedDate: rec.ArchivedDate,
		OriginalPath: rec.OriginalParentPath,
		Ratings:      rec.Ratings,
	}
	if err := tree.AddNode(parent, n); err != nil {
		return nil, err
	}
	for _, c := range rec.Children {
		if _, err := attachCategory(tree, n, c); err != nil {
			return n, err
		}
	}
	for _, l := range rec.Links {
		if err := tree.AddNode(n, linkNode(l)); err != nil {
			return n, err
		}
	}
	return n, nil
}

func linkNode(rec domain.LinkRecord) *domain.Node {
	return &domain.Node{
		ID:           idOrNew(rec.ID),
		Kind:         domain.KindLink,
		Name:         rec.Title,
		URL:          rec.URL,
		Description:  rec.Description,
		CreatedDate:  rec.CreatedDate,
		ModifiedDate: rec.ModifiedDate,
		ArchivedDate: rec.ArchivedDate,
		OriginalPath: rec.OriginalCategoryPath,
		Ratings:      rec.Ratings,
	}
}

func idOrNew(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}
