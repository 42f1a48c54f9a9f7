package domain

import (
	"fmt"
	"slices"
)

// SeedSet is the input of one extraction run: the front propagates from the
// seeds and stops at the stoppers.
type SeedSet struct {
	SeedIDs    []NodeID
	Seeds      []Position
	StopperIDs []NodeID
	Stoppers   []Position
}

// SeedPoints is an ordered path of nodes along one vessel. All points but the
// last are seeds, the last one is the stopper.
type SeedPoints struct {
	ids       []NodeID
	positions []Position
}

// Append adds a point at the end of the path
func (p *SeedPoints) Append(id NodeID, pos Position) {
	p.ids = append(p.ids, id)
	p.positions = append(p.positions, pos)
}

// Valid reports whether the path has at least two points
func (p SeedPoints) Valid() bool {
	return len(p.ids) > 1
}

// IDs returns the node ids along the path
func (p SeedPoints) IDs() []NodeID {
	return slices.Clone(p.ids)
}

// FirstID returns the first node id, empty when the path is invalid
func (p SeedPoints) FirstID() NodeID {
	if !p.Valid() {
		return ""
	}
	return p.ids[0]
}

// LastID returns the last node id, empty when the path is invalid
func (p SeedPoints) LastID() NodeID {
	if !p.Valid() {
		return ""
	}
	return p.ids[len(p.ids)-1]
}

// SeedSet splits the path into seeds and a single stopper. Empty when invalid.
func (p SeedPoints) SeedSet() SeedSet {
	if !p.Valid() {
		return SeedSet{}
	}
	last := len(p.ids) - 1
	return SeedSet{
		SeedIDs:    slices.Clone(p.ids[:last]),
		Seeds:      slices.Clone(p.positions[:last]),
		StopperIDs: []NodeID{p.ids[last]},
		Stoppers:   []Position{p.positions[last]},
	}
}

// CombineSeedPoints joins two paths where first ends on the node second starts from
func CombineSeedPoints(first, second SeedPoints) (SeedPoints, error) {
	if !first.Valid() || !second.Valid() || first.LastID() != second.FirstID() {
		return SeedPoints{}, &TreeError{
			Op:     "combine seeds",
			Kind:   ErrInvalidState,
			Reason: fmt.Sprintf("cannot join %v and %v", first.ids, second.ids),
		}
	}
	combined := SeedPoints{
		ids:       slices.Concat(first.ids, second.ids[1:]),
		positions: slices.Concat(first.positions, second.positions[1:]),
	}
	return combined, nil
}

func seedPath(s *Snapshot, ids ...NodeID) SeedPoints {
	var p SeedPoints
	for _, id := range ids {
		pos, _ := s.Position(id)
		p.Append(id, pos)
	}
	return p
}
