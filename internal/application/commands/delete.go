package commands

import (
	"context"
	"fmt"

	"linkshelf/internal/application"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID string
	Message   string
}

// DeleteCommand permanently deletes an archive entry. It refuses to run
// unless the caller has confirmed.
type DeleteCommand struct {
	svc       Archiver
	EntryID   string
	Confirmed bool
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(svc Archiver, entryID string, confirmed bool) *DeleteCommand {
	return &DeleteCommand{
		svc:       svc,
		EntryID:   entryID,
		Confirmed: confirmed,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	if err := application.ValidateRequired("nodeID", c.EntryID); err != nil {
		return err
	}

	if !c.Confirmed {
		return &application.ValidationError{
			Field:   "confirmed",
			Message: "permanent deletion cannot be undone and must be confirmed",
		}
	}

	return nil
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entry, err := c.svc.Find(c.EntryID)
	if err != nil {
		return nil, err
	}

	if err := c.svc.PermanentlyDelete(entry.Node); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.EntryID, err)
	}

	return &DeleteResult{
		DeletedID: entry.Node.ID,
		Message:   fmt.Sprintf("Deleted %s %q", ShortID(entry.Node.ID), entry.Node.Name),
	}, nil
}
