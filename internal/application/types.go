package application

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"vesselx/internal/domain"
)

// Re-export domain types for use by adapters
type (
	NodeID        = domain.NodeID
	Position      = domain.Position
	Node          = domain.Node
	SequenceEntry = domain.SequenceEntry
	Session       = domain.Session
	VolumeHandle  = domain.VolumeHandle
	BranchTree    = domain.BranchTree
)

// NewPosition builds a RAS position
func NewPosition(x, y, z float64) Position {
	return r3.Vector{X: x, Y: y, Z: z}
}

// ParsePosition parses "x,y,z" (spaces allowed around the values)
func ParsePosition(s string) (Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Position{}, &ValidationError{
			Field:   "position",
			Message: fmt.Sprintf("expected x,y,z, got: %q", s),
		}
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Position{}, &ValidationError{
				Field:   "position",
				Message: fmt.Sprintf("invalid coordinate %q", strings.TrimSpace(p)),
			}
		}
		v[i] = f
	}
	pos := NewPosition(v[0], v[1], v[2])
	if err := ValidatePosition("position", pos); err != nil {
		return Position{}, err
	}
	return pos, nil
}

// FormatPosition renders a position the way ParsePosition reads it
func FormatPosition(pos Position) string {
	return fmt.Sprintf("%.3f,%.3f,%.3f", pos.X, pos.Y, pos.Z)
}
