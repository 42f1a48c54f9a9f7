package domain

import "slices"

// Snapshot is a read-only copy of a tree taken before a long-running step
// such as vessel extraction. Later edits to the tree do not affect it.
type Snapshot struct {
	Sequence []SequenceEntry
	children map[NodeID][]NodeID
	index    map[NodeID]int
}

// Snapshot captures the current depth-first sequence and adjacency
func (t *BranchTree) Snapshot() *Snapshot {
	seq := t.DepthFirstSequence()
	s := &Snapshot{
		Sequence: seq,
		children: make(map[NodeID][]NodeID, len(seq)),
		index:    make(map[NodeID]int, len(seq)),
	}
	for i, e := range seq {
		s.index[e.ID] = i
		s.children[e.ID] = slices.Clone(t.nodes[e.ID].Children)
	}
	return s
}

// Len returns the number of nodes
func (s *Snapshot) Len() int {
	return len(s.Sequence)
}

// Root returns the root id, empty for an empty snapshot
func (s *Snapshot) Root() NodeID {
	if len(s.Sequence) == 0 {
		return ""
	}
	return s.Sequence[0].ID
}

// Children returns the ordered children of id
func (s *Snapshot) Children(id NodeID) []NodeID {
	return s.children[id]
}

// IsLeaf reports whether id has no children
func (s *Snapshot) IsLeaf(id NodeID) bool {
	return len(s.children[id]) == 0
}

// Position returns the position of id
func (s *Snapshot) Position(id NodeID) (Position, bool) {
	i, ok := s.index[id]
	if !ok {
		return Position{}, false
	}
	return s.Sequence[i].Position, true
}

// Unplaced returns ids that have no user-provided position yet
func (s *Snapshot) Unplaced() []NodeID {
	var ids []NodeID
	for _, e := range s.Sequence {
		if !e.Placed {
			ids = append(ids, e.ID)
		}
	}
	return ids
}
