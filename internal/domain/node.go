package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NodeKind distinguishes categories from links in the tree
type NodeKind int

const (
	KindUnknown  NodeKind = iota
	KindCategory          // container, may hold categories and links
	KindLink              // leaf, carries a URL and ratings
)

func (k NodeKind) String() string {
	switch k {
	case KindCategory:
		return "Category"
	case KindLink:
		return "Link"
	default:
		return "Unknown"
	}
}

// RatingValue is a score given to a node for one rating definition
type RatingValue struct {
	RatingName   string    `json:"RatingName"` // full name of the rating definition, e.g. "Content.Quality"
	Score        int       `json:"Score"`
	Reason       string    `json:"Reason,omitempty"`
	CreatedDate  time.Time `json:"CreatedDate"`
	ModifiedDate time.Time `json:"ModifiedDate"`
}

// Node is a category or a link in the bookmark tree.
// Parent/child relations are held by the Tree index, not by the node.
type Node struct {
	ID           string
	Kind         NodeKind
	Name         string // category name or link title
	Description  string
	Icon         string
	URL          string // links only
	CreatedDate  time.Time
	ModifiedDate time.Time
	ArchivedDate *time.Time
	// OriginalPath is the full path of the parent at archive time
	// (originalParentPath for categories, originalCategoryPath for links).
	OriginalPath  string
	Ratings       []RatingValue
	IsArchiveRoot bool
	Expanded      bool
}

// NewCategory creates a category node with a fresh ID
func NewCategory(name, description string) *Node {
	now := time.Now()
	return &Node{
		ID:           uuid.NewString(),
		Kind:         KindCategory,
		Name:         name,
		Description:  description,
		CreatedDate:  now,
		ModifiedDate: now,
	}
}

// NewLink creates a link node with a fresh ID
func NewLink(title, url string) *Node {
	now := time.Now()
	return &Node{
		ID:           uuid.NewString(),
		Kind:         KindLink,
		Name:         title,
		URL:          url,
		CreatedDate:  now,
		ModifiedDate: now,
	}
}

// IsCategory reports whether the node is a category
func (n *Node) IsCategory() bool { return n.Kind == KindCategory }

// IsLink reports whether the node is a link
func (n *Node) IsLink() bool { return n.Kind == KindLink }

// IsArchived reports whether the node carries an archive stamp
func (n *Node) IsArchived() bool { return n.ArchivedDate != nil }

// MarkArchived stamps the archive date and the original parent path
func (n *Node) MarkArchived(originalPath string, at time.Time) {
	n.ArchivedDate = &at
	n.OriginalPath = originalPath
}

// ClearArchive removes archive metadata after a restore
func (n *Node) ClearArchive() {
	n.ArchivedDate = nil
	n.OriginalPath = ""
}

// Rating returns the value held for ratingName, if any
func (n *Node) Rating(ratingName string) (RatingValue, bool) {
	for _, r := range n.Ratings {
		if r.RatingName == ratingName {
			return r, true
		}
	}
	return RatingValue{}, false
}

// SetRating replaces or appends the value for v.RatingName
func (n *Node) SetRating(v RatingValue) {
	for i, r := range n.Ratings {
		if r.RatingName == v.RatingName {
			n.Ratings[i] = v
			return
		}
	}
	n.Ratings = append(n.Ratings, v)
}

// ArchiveRootLabel returns the display name for an archive root holding n entries
func ArchiveRootLabel(n int) string {
	return fmt.Sprintf("Archived (%d)", n)
}
