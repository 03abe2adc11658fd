package commands

import (
	"context"
	"fmt"

	"linkshelf/internal/application"
)

// RateResult contains the result of a rating change
type RateResult struct {
	Path       string
	RatingName string
	Score      int
	ArchivedID string // empty when there was no previous value
	Message    string
}

// RateCommand sets a rating on the node at Path, archiving the previous value
type RateCommand struct {
	svc        Archiver
	Path       string
	RatingName string
	Score      int
	Reason     string
}

// NewRateCommand creates a new RateCommand
func NewRateCommand(svc Archiver, path, ratingName string, score int, reason string) *RateCommand {
	return &RateCommand{
		svc:        svc,
		Path:       path,
		RatingName: ratingName,
		Score:      score,
		Reason:     reason,
	}
}

// Validate checks if the rating change is valid
func (c *RateCommand) Validate() error {
	if err := application.ValidateRequired("path", c.Path); err != nil {
		return err
	}
	if err := application.ValidateRequired("ratingName", c.RatingName); err != nil {
		return err
	}
	return application.ValidateNoReservedToken("ratingName", c.RatingName)
}

// Execute runs the rate command
func (c *RateCommand) Execute(ctx context.Context) (*RateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	node, err := c.svc.Resolve(c.Path)
	if err != nil {
		return nil, err
	}

	changed, err := c.svc.ChangeRating(node, c.RatingName, c.Score, c.Reason)
	if err != nil {
		return nil, fmt.Errorf("failed to rate %s: %w", c.Path, err)
	}

	result := &RateResult{
		Path:       c.Path,
		RatingName: c.RatingName,
		Score:      changed.Value.Score,
		Message:    fmt.Sprintf("Rated %s %s = %d", c.Path, c.RatingName, changed.Value.Score),
	}
	if changed.Archived != nil {
		result.ArchivedID = changed.Archived.ID
		result.Message += fmt.Sprintf(" (previous value archived as %s)", ShortID(changed.Archived.ID))
	}
	return result, nil
}
