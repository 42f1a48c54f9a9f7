package domain

import (
	"fmt"
	"sort"
)

// Strategy turns a tree snapshot into the extraction runs to perform
type Strategy interface {
	Name() string
	SeedSets(s *Snapshot) []SeedSet
}

// Strategy names
const (
	StrategyAllInOne       = "all-in-one"
	StrategyParentChild    = "parent-child"
	StrategyParentSubChild = "parent-subchild"
	StrategyBranch         = "branch"
)

var strategies = map[string]Strategy{
	StrategyAllInOne:       AllInOneStrategy{},
	StrategyParentChild:    ParentChildStrategy{},
	StrategyParentSubChild: ParentSubChildStrategy{},
	StrategyBranch:         BranchStrategy{},
}

// StrategyByName returns a built-in strategy
func StrategyByName(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, &TreeError{Op: "strategy", Kind: ErrNotFound, Reason: fmt.Sprintf("unknown strategy %q", name)}
	}
	return s, nil
}

// StrategyNames lists the built-in strategies in sorted order
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllInOneStrategy runs a single extraction: every branching node is a seed and
// every leaf is a stopper.
type AllInOneStrategy struct{}

func (AllInOneStrategy) Name() string { return StrategyAllInOne }

func (AllInOneStrategy) SeedSets(s *Snapshot) []SeedSet {
	if s.Len() < 2 {
		return nil
	}
	var set SeedSet
	for _, e := range s.Sequence {
		if s.IsLeaf(e.ID) {
			set.StopperIDs = append(set.StopperIDs, e.ID)
			set.Stoppers = append(set.Stoppers, e.Position)
		} else {
			set.SeedIDs = append(set.SeedIDs, e.ID)
			set.Seeds = append(set.Seeds, e.Position)
		}
	}
	return []SeedSet{set}
}

// ParentChildStrategy runs one extraction per parent/child edge.
//
//	n0
//	 |_ n1
//	 |_ n2
//	     |_ n3
//
// yields [n0 n1], [n0 n2], [n2 n3].
type ParentChildStrategy struct{}

func (ParentChildStrategy) Name() string { return StrategyParentChild }

func (ParentChildStrategy) SeedSets(s *Snapshot) []SeedSet {
	var sets []SeedSet
	for _, e := range s.Sequence {
		for _, c := range s.Children(e.ID) {
			sets = append(sets, seedPath(s, e.ID, c).SeedSet())
		}
	}
	return sets
}

// ParentSubChildStrategy pairs each node with its grandchildren, skipping one level.
// Leaf children of the root are paired with the root directly so no node is missed.
//
//	n0
//	 |_ n1
//	 |_ n2
//	     |_ n3
//	     |_ n4
//	         |_ n5
//
// yields [n0 n1], [n0 n3], [n0 n4], [n2 n5].
type ParentSubChildStrategy struct{}

func (ParentSubChildStrategy) Name() string { return StrategyParentSubChild }

func (ParentSubChildStrategy) SeedSets(s *Snapshot) []SeedSet {
	root := s.Root()
	if root == "" {
		return nil
	}
	var sets []SeedSet
	var walk func(start NodeID, isRoot bool)
	walk = func(start NodeID, isRoot bool) {
		for _, child := range s.Children(start) {
			sub := s.Children(child)
			for _, gc := range sub {
				sets = append(sets, seedPath(s, start, gc).SeedSet())
			}
			if len(sub) == 0 && isRoot {
				sets = append(sets, seedPath(s, start, child).SeedSet())
			}
			walk(child, false)
		}
	}
	walk(root, true)
	return sets
}

// BranchStrategy follows each unbranched run of nodes from a branching point down
// to the next branching point or leaf.
//
//	n0
//	 |_ n1
//	     |_ n2
//	         |_ n3
//	         |_ n4
//	             |_ n5
//
// yields [n0 n1 n2], [n2 n3], [n2 n4 n5].
type BranchStrategy struct{}

func (BranchStrategy) Name() string { return StrategyBranch }

func (BranchStrategy) SeedSets(s *Snapshot) []SeedSet {
	root := s.Root()
	if root == "" {
		return nil
	}
	var sets []SeedSet
	var walk func(start NodeID)
	walk = func(start NodeID) {
		for _, child := range s.Children(start) {
			path := seedPath(s, start, child)
			end := child
			for len(s.Children(end)) == 1 {
				next := s.Children(end)[0]
				joined, err := CombineSeedPoints(path, seedPath(s, end, next))
				if err != nil {
					break
				}
				path, end = joined, next
			}
			sets = append(sets, path.SeedSet())
			walk(end)
		}
	}
	walk(root)
	return sets
}
