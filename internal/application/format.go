package application

import (
	"fmt"
	"strings"

	"vesselx/internal/domain"
)

// FormatNode renders one node as "id (x,y,z)" with its flags
func FormatNode(id NodeID, pos Position, locked, placed bool) string {
	var b strings.Builder
	b.WriteString(string(id))
	if placed {
		fmt.Fprintf(&b, " (%s)", FormatPosition(pos))
	} else {
		b.WriteString(" (unplaced)")
	}
	if locked {
		b.WriteString(" [locked]")
	}
	return b.String()
}

// FormatTree renders the tree as indented lines in depth-first order
func FormatTree(tree *domain.BranchTree) string {
	if tree == nil || tree.IsEmpty() {
		return "(empty tree)"
	}

	depth := make(map[NodeID]int, tree.Len())
	var b strings.Builder
	for _, e := range tree.DepthFirstSequence() {
		d := 0
		if e.Parent != "" {
			d = depth[e.Parent] + 1
		}
		depth[e.ID] = d
		b.WriteString(strings.Repeat("  ", d))
		b.WriteString(FormatNode(e.ID, e.Position, e.Locked, e.Placed))
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatSequence renders the depth-first sequence one entry per line as
// "index id x,y,z parent"
func FormatSequence(seq []SequenceEntry) string {
	var b strings.Builder
	for i, e := range seq {
		parent := string(e.Parent)
		if parent == "" {
			parent = "-"
		}
		fmt.Fprintf(&b, "%d\t%s\t%s\t%s\n", i, e.ID, FormatPosition(e.Position), parent)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatEdges renders the parent list one "parent child" pair per line, the root as "- root"
func FormatEdges(tree *domain.BranchTree) string {
	var b strings.Builder
	for _, pair := range tree.ParentList() {
		parent := string(pair[0])
		if parent == "" {
			parent = "-"
		}
		fmt.Fprintf(&b, "%s\t%s\n", parent, pair[1])
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatPolyline renders the single-polyline walk of the tree, one point per line
func FormatPolyline(tree *domain.BranchTree) string {
	var b strings.Builder
	for _, p := range tree.LinePointSequence() {
		b.WriteString(FormatPosition(p))
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}
