package commands

import (
	"context"

	"linkshelf/internal/application/archive"
)

// ListArchiveResult holds the archive entries and their summary
type ListArchiveResult struct {
	Summary archive.Summary
	Entries []archive.Entry
}

// ListArchiveCommand lists every archive entry
type ListArchiveCommand struct {
	svc Archiver
}

// NewListArchiveCommand creates a new ListArchiveCommand
func NewListArchiveCommand(svc Archiver) *ListArchiveCommand {
	return &ListArchiveCommand{svc: svc}
}

// Execute runs the list command
func (c *ListArchiveCommand) Execute(ctx context.Context) (*ListArchiveResult, error) {
	return &ListArchiveResult{
		Summary: c.svc.Summary(),
		Entries: c.svc.Entries(),
	}, nil
}
