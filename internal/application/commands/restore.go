package commands

import (
	"context"
	"fmt"

	"linkshelf/internal/application"
	"linkshelf/internal/application/archive"
)

// RestoreResult contains the result of restoring an archive entry
type RestoreResult struct {
	EntryID  string
	Kind     archive.EntryKind
	Path     string
	Degraded bool
	Message  string
}

// RestoreCommand restores an archive entry (category, link or rating) by ID
type RestoreCommand struct {
	svc     Archiver
	EntryID string            // full ID or unique prefix
	Only    archive.EntryKind // restrict to one entry kind when set
}

// NewRestoreCommand creates a new RestoreCommand
func NewRestoreCommand(svc Archiver, entryID string) *RestoreCommand {
	return &RestoreCommand{
		svc:     svc,
		EntryID: entryID,
	}
}

// NewRestoreRatingCommand creates a RestoreCommand that only accepts rating entries
func NewRestoreRatingCommand(svc Archiver, entryID string) *RestoreCommand {
	return &RestoreCommand{
		svc:     svc,
		EntryID: entryID,
		Only:    archive.EntryRating,
	}
}

// Validate checks if the restore operation is valid
func (c *RestoreCommand) Validate() error {
	return application.ValidateRequired("nodeID", c.EntryID)
}

// Execute runs the restore command
func (c *RestoreCommand) Execute(ctx context.Context) (*RestoreResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entry, err := c.svc.Find(c.EntryID)
	if err != nil {
		return nil, err
	}

	if c.Only != "" && entry.Kind != c.Only {
		return nil, &application.ValidationError{
			Field:   "nodeID",
			Message: fmt.Sprintf("%s is a %s entry, not a %s entry", ShortID(entry.Node.ID), entry.Kind, c.Only),
		}
	}

	result := &RestoreResult{EntryID: entry.Node.ID, Kind: entry.Kind}

	switch entry.Kind {
	case archive.EntryRating:
		restored, err := c.svc.RestoreRating(entry.Node)
		if err != nil {
			return nil, fmt.Errorf("failed to restore rating: %w", err)
		}
		result.Path = restored.ParentPath
		result.Message = fmt.Sprintf("Restored %s = %d on %s",
			restored.Restored.RatingName, restored.Restored.Score, restored.ParentPath)
		if restored.Swapped != nil {
			result.Message += fmt.Sprintf(" (previous value archived as %s)", ShortID(restored.Swapped.ID))
		}

	case archive.EntryCategory:
		restored, err := c.svc.RestoreCategory(entry.Node)
		if err != nil {
			return nil, fmt.Errorf("failed to restore category: %w", err)
		}
		result.Path = restored.Path
		result.Degraded = restored.Degraded
		if restored.Degraded {
			result.Message = fmt.Sprintf("Restored %s at the top level (%s no longer exists)", restored.Path, restored.MissingPath)
		} else {
			result.Message = fmt.Sprintf("Restored %s", restored.Path)
		}

	case archive.EntryLink:
		restored, err := c.svc.RestoreLink(entry.Node)
		if err != nil {
			return nil, fmt.Errorf("failed to restore link: %w", err)
		}
		result.Path = restored.Path
		result.Message = fmt.Sprintf("Restored %s", restored.Path)
	}

	return result, nil
}

// RestoreEligibility contains the result of checking if an entry can be restored
type RestoreEligibility struct {
	CanRestore bool
	Reason     string
}

// CheckRestoreEligibility reports whether entry has what a restore needs
func CheckRestoreEligibility(entry archive.Entry) RestoreEligibility {
	if entry.Node == nil {
		return RestoreEligibility{CanRestore: false, Reason: "no entry selected"}
	}
	if entry.Kind == archive.EntryLink && entry.OriginalPath == "" {
		return RestoreEligibility{CanRestore: false, Reason: "link has no original category path"}
	}
	return RestoreEligibility{CanRestore: true}
}
