package application

import (
	"fmt"
	"math"
	"strings"

	"vesselx/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "sessionID" -> "session ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"sessionID": "session ID",
		"nodeID":    "node ID",
		"parentID":  "parent ID",
		"siblingID": "sibling ID",
		"position":  "position",
		"name":      "name",
		"strategy":  "strategy",
		"template":  "template",
		"path":      "path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidatePosition rejects NaN and infinite coordinates
func ValidatePosition(fieldName string, pos domain.Position) error {
	for _, v := range []float64{pos.X, pos.Y, pos.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("%s must be finite, got: %s", formatFieldName(fieldName), FormatPosition(pos)),
			}
		}
	}
	return nil
}
