package domain

import "time"

// Snapshot is the persisted archive document
type Snapshot struct {
	ArchivedCategories []CategoryRecord `json:"ArchivedCategories"`
	ArchivedLinks      []LinkRecord     `json:"ArchivedLinks"`
	LastModified       time.Time        `json:"LastModified"`
}

// CategoryRecord is the serialized form of a category and its subtree
type CategoryRecord struct {
	ID                 string           `json:"ID,omitempty"`
	Name               string           `json:"Name"`
	Description        string           `json:"Description,omitempty"`
	Icon               string           `json:"Icon,omitempty"`
	CreatedDate        time.Time        `json:"CreatedDate"`
	ModifiedDate       time.Time        `json:"ModifiedDate"`
	ArchivedDate       *time.Time       `json:"ArchivedDate,omitempty"`
	OriginalParentPath string           `json:"OriginalParentPath,omitempty"`
	Ratings            []RatingValue    `json:"Ratings,omitempty"`
	Children           []CategoryRecord `json:"Children,omitempty"`
	Links              []LinkRecord     `json:"Links,omitempty"`
}

// LinkRecord is the serialized form of a link
type LinkRecord struct {
	ID                   string        `json:"ID,omitempty"`
	Title                string        `json:"Title"`
	URL                  string        `json:"Url"`
	Description          string        `json:"Description,omitempty"`
	CreatedDate          time.Time     `json:"CreatedDate"`
	ModifiedDate         time.Time     `json:"ModifiedDate"`
	ArchivedDate         *time.Time    `json:"ArchivedDate,omitempty"`
	OriginalCategoryPath string        `json:"OriginalCategoryPath,omitempty"`
	Ratings              []RatingValue `json:"Ratings,omitempty"`
}

// IsEmpty reports whether the snapshot holds no entries
func (s *Snapshot) IsEmpty() bool {
	return s == nil || len(s.ArchivedCategories) == 0 && len(s.ArchivedLinks) == 0
}

// Len returns the number of top-level archive entries
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ArchivedCategories) + len(s.ArchivedLinks)
}
