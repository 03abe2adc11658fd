package application

import (
	"fmt"
	"strings"

	"linkshelf/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "nodeID" -> "node ID")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "nodeID" -> "node ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"nodeID":       "node ID",
		"path":         "path",
		"ratingName":   "rating name",
		"originalPath": "original path",
		"payload":      "payload",
		"parent":       "parent",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateKind checks that a node is of the expected kind
func ValidateKind(fieldName string, node *domain.Node, expected domain.NodeKind) error {
	if node == nil {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	if node.Kind != expected {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected %s, got %s %q", expected, node.Kind, node.Name),
		}
	}
	return nil
}

// ValidateNoReservedToken rejects values that would break rating archive names
func ValidateNoReservedToken(fieldName, value string) error {
	if strings.Contains(value, domain.RatingArchiveSeparator) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s may not contain %q", formatFieldName(fieldName), domain.RatingArchiveSeparator),
		}
	}
	return nil
}
