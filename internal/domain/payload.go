package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	payloadFieldSeparator = "|"
	payloadRatingPrefix   = "rating:"
	payloadScorePrefix    = "score:"
	payloadReasonPrefix   = "reason:"
)

// RatingPayload is the value stored in a rating archive entry
type RatingPayload struct {
	RatingName string
	Score      int
	Reason     string
}

// Encode renders the payload as rating:<name>|score:<int>|reason:<text>
func (p RatingPayload) Encode() (string, error) {
	if strings.Contains(p.RatingName, payloadFieldSeparator) {
		return "", &FormatError{Input: p.RatingName, Reason: "rating name contains " + payloadFieldSeparator}
	}
	if strings.Contains(p.Reason, payloadFieldSeparator) {
		return "", &FormatError{Input: p.Reason, Reason: "reason contains " + payloadFieldSeparator}
	}
	return payloadRatingPrefix + p.RatingName +
		payloadFieldSeparator + payloadScorePrefix + strconv.Itoa(p.Score) +
		payloadFieldSeparator + payloadReasonPrefix + p.Reason, nil
}

// ParseRatingPayload parses a payload. It requires exactly three fields.
func ParseRatingPayload(s string) (RatingPayload, error) {
	fields := strings.Split(s, payloadFieldSeparator)
	if len(fields) != 3 {
		return RatingPayload{}, &FormatError{
			Input:  s,
			Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields)),
		}
	}

	name, ok := strings.CutPrefix(fields[0], payloadRatingPrefix)
	if !ok || name == "" {
		return RatingPayload{}, &FormatError{Input: s, Reason: "missing rating field"}
	}

	rawScore, ok := strings.CutPrefix(fields[1], payloadScorePrefix)
	if !ok {
		return RatingPayload{}, &FormatError{Input: s, Reason: "missing score field"}
	}
	score, err := strconv.Atoi(strings.TrimSpace(rawScore))
	if err != nil {
		return RatingPayload{}, &FormatError{Input: s, Reason: fmt.Sprintf("score %q is not an integer", rawScore)}
	}

	reason, ok := strings.CutPrefix(fields[2], payloadReasonPrefix)
	if !ok {
		return RatingPayload{}, &FormatError{Input: s, Reason: "missing reason field"}
	}

	return RatingPayload{RatingName: name, Score: score, Reason: reason}, nil
}

// Describe renders the multi-part human readable description of an archived rating
func (p RatingPayload) Describe(archivedAt time.Time) string {
	reason := p.Reason
	if reason == "" {
		reason = "(none)"
	}
	return fmt.Sprintf("Rating: %s | Score: %d | Reason: %s | Archived: %s",
		p.RatingName, p.Score, reason, archivedAt.Format(time.RFC3339))
}
