package archive

import (
	"fmt"

	"linkshelf/internal/application"
	"linkshelf/internal/application/paths"
	"linkshelf/internal/domain"
	"linkshelf/internal/logger"
)

// ArchiveRatingChange records oldValue as an archive entry for the
// (parent, ratingName) slot. The parent's current ratings are not touched.
func (m *Manager) ArchiveRatingChange(parent *domain.Node, ratingName string, oldValue domain.RatingValue) (*domain.Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, err := m.archiveRating(parent, ratingName, oldValue)
	if err != nil {
		return nil, err
	}
	m.relabel()

	return entry, m.persist("archive rating")
}

// RatingRestoreResult describes the outcome of a rating restore
type RatingRestoreResult struct {
	Parent     *domain.Node
	ParentPath string
	Restored   domain.RatingValue
	// Swapped is the new archive entry holding the value that occupied the
	// slot before the restore, nil if the slot was empty.
	Swapped *domain.Node
}

// RestoreRating puts an archived rating value back on its parent. The value
// currently in the slot, if any, is archived in its place.
func (m *Manager) RestoreRating(entry *domain.Node) (*RatingRestoreResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := application.ValidateKind("node", entry, domain.KindCategory); err != nil {
		return nil, err
	}
	if err := m.checkArchiveEntry(entry); err != nil {
		return nil, err
	}

	fullPath, ratingName, err := domain.DecodeRatingArchive(entry.Name)
	if err != nil {
		return nil, err
	}

	payloadLink := m.payloadLink(entry)
	if payloadLink == nil {
		return nil, &application.ValidationError{
			Field:   "payload",
			Message: fmt.Sprintf("rating archive %q has no payload", entry.Name),
		}
	}
	payload, err := domain.ParseRatingPayload(payloadLink.URL)
	if err != nil {
		return nil, err
	}
	if payload.RatingName != ratingName {
		return nil, &domain.FormatError{
			Input:  entry.Name,
			Reason: fmt.Sprintf("payload rating %q does not match %q", payload.RatingName, ratingName),
		}
	}

	// Full path only: a bare-name lookup could land on a same-named node in
	// another branch.
	parent, err := m.paths.ResolveFullPath(fullPath)
	if err != nil {
		return nil, err
	}

	now := m.now()
	restored := domain.RatingValue{
		RatingName:   ratingName,
		Score:        payload.Score,
		Reason:       payload.Reason,
		CreatedDate:  now,
		ModifiedDate: now,
	}

	result := &RatingRestoreResult{Parent: parent, ParentPath: fullPath, Restored: restored}

	current, had := parent.Rating(ratingName)
	if had {
		swapped, err := m.archiveRating(parent, ratingName, current)
		if err != nil {
			return nil, err
		}
		result.Swapped = swapped
		result.Restored.CreatedDate = current.CreatedDate
	}

	if err := m.tree.RemoveNode(entry); err != nil {
		if result.Swapped != nil {
			_ = m.tree.RemoveNode(result.Swapped)
		}
		return nil, fmt.Errorf("failed to consume rating archive: %w", err)
	}
	parent.SetRating(result.Restored)
	parent.ModifiedDate = now
	m.relabel()

	m.log.Info("rating restored",
		logger.String("path", fullPath),
		logger.String("rating", ratingName),
		logger.Int("score", payload.Score),
		logger.Bool("swapped", had),
	)

	return result, m.persist("restore rating")
}

// RatingChangeResult describes the outcome of ChangeRating
type RatingChangeResult struct {
	Parent   *domain.Node
	Value    domain.RatingValue
	Archived *domain.Node // entry holding the previous value, nil if none
}

// ChangeRating sets a new value for ratingName on parent, archiving the
// previous value first
func (m *Manager) ChangeRating(parent *domain.Node, ratingName string, score int, reason string) (*RatingChangeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkRatingParent(parent, ratingName); err != nil {
		return nil, err
	}
	if m.inArchive(parent) {
		return nil, &application.ValidationError{
			Field:   "parent",
			Message: fmt.Sprintf("%q is archived, restore it before rating", parent.Name),
		}
	}
	if _, err := (domain.RatingPayload{RatingName: ratingName, Score: score, Reason: reason}).Encode(); err != nil {
		return nil, err
	}

	now := m.now()
	value := domain.RatingValue{
		RatingName:   ratingName,
		Score:        score,
		Reason:       reason,
		CreatedDate:  now,
		ModifiedDate: now,
	}
	result := &RatingChangeResult{Parent: parent, Value: value}

	current, had := parent.Rating(ratingName)
	if had {
		if current.Score == score && current.Reason == reason {
			result.Value = current
			return result, nil
		}
		entry, err := m.archiveRating(parent, ratingName, current)
		if err != nil {
			return nil, err
		}
		result.Archived = entry
		value.CreatedDate = current.CreatedDate
		result.Value = value
	}

	parent.SetRating(value)
	parent.ModifiedDate = now
	m.relabel()

	return result, m.persist("change rating")
}

// archiveRating creates the synthetic entry without relabeling or saving.
// It either adds the complete entry or nothing.
func (m *Manager) archiveRating(parent *domain.Node, ratingName string, oldValue domain.RatingValue) (*domain.Node, error) {
	if err := m.checkRatingParent(parent, ratingName); err != nil {
		return nil, err
	}

	fullPath := m.ratingParentPath(parent)
	name, err := domain.EncodeRatingArchive(fullPath, ratingName)
	if err != nil {
		return nil, err
	}

	payload := domain.RatingPayload{RatingName: ratingName, Score: oldValue.Score, Reason: oldValue.Reason}
	encoded, err := payload.Encode()
	if err != nil {
		return nil, err
	}

	now := m.now()
	description := payload.Describe(now)

	entry := domain.NewCategory(name, description)
	entry.MarkArchived(fullPath, now)

	link := domain.NewLink(ratingName, encoded)
	link.Description = description
	link.ArchivedDate = entry.ArchivedDate

	if err := m.tree.AddNode(m.tree.ArchiveRoot(), entry); err != nil {
		return nil, fmt.Errorf("failed to archive rating: %w", err)
	}
	if err := m.tree.AddNode(entry, link); err != nil {
		_ = m.tree.RemoveNode(entry)
		return nil, fmt.Errorf("failed to archive rating: %w", err)
	}

	m.log.Info("rating archived",
		logger.String("path", fullPath),
		logger.String("rating", ratingName),
		logger.Int("score", oldValue.Score),
	)
	return entry, nil
}

func (m *Manager) checkRatingParent(parent *domain.Node, ratingName string) error {
	if parent == nil {
		return application.ValidateRequired("parent", "")
	}
	if err := application.ValidateRequired("ratingName", ratingName); err != nil {
		return err
	}
	if err := application.ValidateNoReservedToken("ratingName", ratingName); err != nil {
		return err
	}
	if !m.owns(parent) {
		return &application.ValidationError{Field: "parent", Message: fmt.Sprintf("%q is not in the tree", parent.Name)}
	}
	if parent.ID == m.tree.Root().ID || parent.IsArchiveRoot || m.isRatingEntry(parent) {
		return &application.ValidationError{Field: "parent", Message: fmt.Sprintf("%q cannot hold ratings", parent.Name)}
	}
	if p := m.tree.Parent(parent); p != nil && m.isRatingEntry(p) {
		return &application.ValidationError{Field: "parent", Message: "rating archive payloads cannot hold ratings"}
	}
	return nil
}

// ratingParentPath is the full path of parent. Nodes inside the archive
// report the path they will have once their archived ancestor is restored.
func (m *Manager) ratingParentPath(parent *domain.Node) string {
	if !m.inArchive(parent) {
		return m.paths.ComputePath(parent)
	}

	archiveID := m.tree.ArchiveRoot().ID
	var names []string
	n := parent
	for ; m.tree.Parent(n).ID != archiveID; n = m.tree.Parent(n) {
		names = append([]string{n.Name}, names...)
	}
	names = append([]string{n.Name}, names...)
	if n.OriginalPath != "" {
		names = append(paths.Split(n.OriginalPath), names...)
	}
	return paths.Join(names)
}

// payloadLink returns the single link child carrying the rating payload
func (m *Manager) payloadLink(entry *domain.Node) *domain.Node {
	for _, c := range m.tree.Children(entry) {
		if c.IsLink() && c.URL != "" {
			return c
		}
	}
	return nil
}
