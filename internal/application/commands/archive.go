package commands

import (
	"context"
	"fmt"

	"linkshelf/internal/application"
	"linkshelf/internal/domain"
)

// ArchiveResult contains the result of archiving a node
type ArchiveResult struct {
	OriginalPath string
	Node         *domain.Node
	Label        string
	Message      string
}

// ArchiveCommand archives the category or link at Path
type ArchiveCommand struct {
	svc  Archiver
	Path string
}

// NewArchiveCommand creates a new ArchiveCommand
func NewArchiveCommand(svc Archiver, path string) *ArchiveCommand {
	return &ArchiveCommand{
		svc:  svc,
		Path: path,
	}
}

// Validate checks if the node can be archived
func (c *ArchiveCommand) Validate() error {
	if err := application.ValidateRequired("path", c.Path); err != nil {
		return err
	}
	return application.ValidateNoReservedToken("path", c.Path)
}

// Execute runs the archive command
func (c *ArchiveCommand) Execute(ctx context.Context) (*ArchiveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	node, err := c.svc.Resolve(c.Path)
	if err != nil {
		return nil, err
	}

	switch node.Kind {
	case domain.KindCategory:
		err = c.svc.ArchiveCategory(node)
	case domain.KindLink:
		err = c.svc.ArchiveLink(node)
	default:
		return nil, &application.ValidationError{
			Field:   "path",
			Message: fmt.Sprintf("cannot archive %s %q", node.Kind, node.Name),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to archive %s: %w", c.Path, err)
	}

	label := c.svc.Summary().Label
	return &ArchiveResult{
		OriginalPath: c.Path,
		Node:         node,
		Label:        label,
		Message:      fmt.Sprintf("Archived %s [%s] -> %s", c.Path, ShortID(node.ID), label),
	}, nil
}

// ArchiveEligibility contains the result of checking if a node can be archived
type ArchiveEligibility struct {
	CanArchive bool
	Reason     string
}

// CheckArchiveEligibility determines if a node can be archived
func CheckArchiveEligibility(node *domain.Node) ArchiveEligibility {
	switch {
	case node == nil:
		return ArchiveEligibility{CanArchive: false, Reason: "no node selected"}
	case node.IsArchiveRoot:
		return ArchiveEligibility{CanArchive: false, Reason: "cannot archive the archive"}
	case node.IsArchived():
		return ArchiveEligibility{CanArchive: false, Reason: fmt.Sprintf("%q is already archived", node.Name)}
	case node.Kind != domain.KindCategory && node.Kind != domain.KindLink:
		return ArchiveEligibility{
			CanArchive: false,
			Reason:     fmt.Sprintf("cannot archive %s (only categories and links can be archived)", node.Kind),
		}
	default:
		return ArchiveEligibility{CanArchive: true}
	}
}
