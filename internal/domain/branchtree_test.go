package domain

import (
	"errors"
	"slices"
	"testing"

	"github.com/golang/geo/r3"
)

func pos(x float64) Position {
	return r3.Vector{X: x, Y: x * 2, Z: x * 3}
}

func sequenceIDs(t *BranchTree) []NodeID {
	var ids []NodeID
	for _, e := range t.DepthFirstSequence() {
		ids = append(ids, e.ID)
	}
	return ids
}

func must(t *testing.T) func(NodeID, error) NodeID {
	return func(id NodeID, err error) NodeID {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return id
	}
}

func TestAddRoot_RejectsSecondRoot(t *testing.T) {
	tree := NewBranchTree()
	root := must(t)(tree.AddRoot(pos(0)))

	_, err := tree.AddRoot(pos(1))
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if tree.Len() != 1 || tree.Root() != root {
		t.Errorf("tree changed after failed AddRoot: len=%d root=%s", tree.Len(), tree.Root())
	}
}

func TestAddChild_UnknownParent(t *testing.T) {
	tree := NewBranchTree()
	_, err := tree.AddChild("missing", pos(1))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if tree.Len() != 0 {
		t.Errorf("expected empty tree, got %d nodes", tree.Len())
	}
}

func TestInsertBefore_PlacesNodeBetweenParentAndSibling(t *testing.T) {
	tree := NewBranchTree()
	root := must(t)(tree.AddRoot(pos(0)))
	p1 := must(t)(tree.AddChild(root, pos(1)))
	p2 := must(t)(tree.AddChild(root, pos(2)))
	mid := must(t)(tree.InsertBefore(p2, pos(1.5)))

	want := []NodeID{root, p1, mid, p2}
	if got := sequenceIDs(tree); !slices.Equal(got, want) {
		t.Fatalf("expected sequence %v, got %v", want, got)
	}

	seq := tree.DepthFirstSequence()
	if seq[2].Position != pos(1.5) {
		t.Errorf("expected inserted position %v, got %v", pos(1.5), seq[2].Position)
	}
	if parent, _ := tree.Parent(p2); parent != mid {
		t.Errorf("expected %s parent to be %s, got %s", p2, mid, parent)
	}
	if parent, _ := tree.Parent(mid); parent != root {
		t.Errorf("expected %s parent to be root, got %s", mid, parent)
	}
	if children, _ := tree.Children(mid); !slices.Equal(children, []NodeID{p2}) {
		t.Errorf("expected %s to have only child %s, got %v", mid, p2, children)
	}
	if children, _ := tree.Children(root); !slices.Equal(children, []NodeID{p1, mid}) {
		t.Errorf("expected root children [%s %s], got %v", p1, mid, children)
	}
}

func TestInsertBefore_Failures(t *testing.T) {
	tree := NewBranchTree()
	root := must(t)(tree.AddRoot(pos(0)))

	tests := []struct {
		name    string
		sibling NodeID
	}{
		{name: "unknown sibling", sibling: "missing"},
		{name: "root has no siblings", sibling: root},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tree.InsertBefore(tt.sibling, pos(9))
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
			if tree.Len() != 1 {
				t.Errorf("expected 1 node, got %d", tree.Len())
			}
		})
	}
}

func TestDeleteNode_PromotesChildrenToParent(t *testing.T) {
	tree := NewBranchTree()
	root := must(t)(tree.AddRoot(pos(0)))
	a := must(t)(tree.AddChild(root, pos(1)))
	b := must(t)(tree.AddChild(a, pos(2)))

	if err := tree.DeleteNode(a); err != nil {
		t.Fatalf("DeleteNode failed: %v", err)
	}

	if got := sequenceIDs(tree); !slices.Equal(got, []NodeID{root, b}) {
		t.Fatalf("expected [%s %s], got %v", root, b, got)
	}
	if parent, _ := tree.Parent(b); parent != root {
		t.Errorf("expected %s parent to be root, got %s", b, parent)
	}
	if tree.Has(a) {
		t.Errorf("deleted node %s still present", a)
	}
}

func TestDeleteNode_SplicesChildrenAtOrdinal(t *testing.T) {
	tree := NewBranchTree()
	root := must(t)(tree.AddRoot(pos(0)))
	first := must(t)(tree.AddChild(root, pos(1)))
	mid := must(t)(tree.AddChild(root, pos(2)))
	last := must(t)(tree.AddChild(root, pos(3)))
	c1 := must(t)(tree.AddChild(mid, pos(4)))
	c2 := must(t)(tree.AddChild(mid, pos(5)))

	if err := tree.DeleteNode(mid); err != nil {
		t.Fatalf("DeleteNode failed: %v", err)
	}

	want := []NodeID{first, c1, c2, last}
	if children, _ := tree.Children(root); !slices.Equal(children, want) {
		t.Errorf("expected root children %v, got %v", want, children)
	}
}

func TestDeleteNode_Root(t *testing.T) {
	t.Run("single child becomes root", func(t *testing.T) {
		tree := NewBranchTree()
		root := must(t)(tree.AddRoot(pos(0)))
		child := must(t)(tree.AddChild(root, pos(1)))
		grandchild := must(t)(tree.AddChild(child, pos(2)))

		if err := tree.DeleteNode(root); err != nil {
			t.Fatalf("DeleteNode failed: %v", err)
		}
		if tree.Root() != child {
			t.Errorf("expected root %s, got %s", child, tree.Root())
		}
		if parent, _ := tree.Parent(child); parent != "" {
			t.Errorf("expected new root to have no parent, got %s", parent)
		}
		if got := sequenceIDs(tree); !slices.Equal(got, []NodeID{child, grandchild}) {
			t.Errorf("unexpected sequence %v", got)
		}
	})

	t.Run("multiple children is ambiguous", func(t *testing.T) {
		tree := NewBranchTree()
		root := must(t)(tree.AddRoot(pos(0)))
		must(t)(tree.AddChild(root, pos(1)))
		must(t)(tree.AddChild(root, pos(2)))
		before := sequenceIDs(tree)

		if err := tree.DeleteNode(root); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
		if got := sequenceIDs(tree); !slices.Equal(got, before) {
			t.Errorf("tree changed after failed delete: %v", got)
		}
	})

	t.Run("lone root", func(t *testing.T) {
		tree := NewBranchTree()
		root := must(t)(tree.AddRoot(pos(0)))
		if err := tree.DeleteNode(root); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
		if tree.Root() != root {
			t.Errorf("root changed after failed delete")
		}
	})

	t.Run("unknown node", func(t *testing.T) {
		tree := NewBranchTree()
		if err := tree.DeleteNode("missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSetPosition_LockedNode(t *testing.T) {
	tree := NewBranchTree()
	root := must(t)(tree.AddRoot(pos(0)))

	if err := tree.SetLocked(root, true); err != nil {
		t.Fatalf("SetLocked failed: %v", err)
	}
	if err := tree.SetPosition(root, pos(7)); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	n, _ := tree.Node(root)
	if n.Position != pos(0) {
		t.Errorf("locked node moved to %v", n.Position)
	}

	if err := tree.SetLocked(root, false); err != nil {
		t.Fatalf("SetLocked failed: %v", err)
	}
	if err := tree.SetPosition(root, pos(7)); err != nil {
		t.Fatalf("SetPosition failed: %v", err)
	}
	n, _ = tree.Node(root)
	if n.Position != pos(7) {
		t.Errorf("expected position %v, got %v", pos(7), n.Position)
	}
}

func TestSetLocked_UnknownNode(t *testing.T) {
	tree := NewBranchTree()
	if err := tree.SetLocked("missing", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReorderChild(t *testing.T) {
	tree := NewBranchTree()
	root := must(t)(tree.AddRoot(pos(0)))
	a := must(t)(tree.AddChild(root, pos(1)))
	b := must(t)(tree.AddChild(root, pos(2)))
	c := must(t)(tree.AddChild(root, pos(3)))
	orphan := must(t)(tree.AddChild(a, pos(4)))

	tests := []struct {
		name    string
		parent  NodeID
		node    NodeID
		index   int
		wantErr error
		want    []NodeID
	}{
		{name: "move last to front", parent: root, node: c, index: 0, want: []NodeID{c, a, b}},
		{name: "move front to back", parent: root, node: c, index: 2, want: []NodeID{a, b, c}},
		{name: "same place", parent: root, node: b, index: 1, want: []NodeID{a, b, c}},
		{name: "unknown parent", parent: "missing", node: a, index: 0, wantErr: ErrNotFound, want: []NodeID{a, b, c}},
		{name: "not a child", parent: root, node: orphan, index: 0, wantErr: ErrNotFound, want: []NodeID{a, b, c}},
		{name: "negative index", parent: root, node: a, index: -1, wantErr: ErrOutOfRange, want: []NodeID{a, b, c}},
		{name: "index past end", parent: root, node: a, index: 3, wantErr: ErrOutOfRange, want: []NodeID{a, b, c}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tree.ReorderChild(tt.parent, tt.node, tt.index)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if children, _ := tree.Children(root); !slices.Equal(children, tt.want) {
				t.Errorf("expected children %v, got %v", tt.want, children)
			}
		})
	}
}

func TestDepthFirstSequence_PreOrder(t *testing.T) {
	tree := NewBranchTree()
	root := must(t)(tree.AddRoot(pos(0)))
	a := must(t)(tree.AddChild(root, pos(1)))
	b := must(t)(tree.AddChild(root, pos(2)))
	a1 := must(t)(tree.AddChild(a, pos(3)))
	a2 := must(t)(tree.AddChild(a, pos(4)))
	b1 := must(t)(tree.AddChild(b, pos(5)))

	want := []NodeID{root, a, a1, a2, b, b1}
	if got := sequenceIDs(tree); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// Restartable: a second traversal yields the same result
	if got := sequenceIDs(tree); !slices.Equal(got, want) {
		t.Errorf("second traversal differs: %v", got)
	}

	seq := tree.DepthFirstSequence()
	if seq[0].Parent != "" {
		t.Errorf("expected root without parent, got %s", seq[0].Parent)
	}
	if seq[5].Parent != b {
		t.Errorf("expected %s parent %s, got %s", b1, b, seq[5].Parent)
	}
}

func TestDepthFirstSequence_LengthTracksAddsAndDeletes(t *testing.T) {
	tree := NewBranchTree()
	root := must(t)(tree.AddRoot(pos(0)))
	adds, deletes := 1, 0

	var last NodeID = root
	for i := 1; i <= 10; i++ {
		parent := root
		if i%3 == 0 {
			parent = last
		}
		last = must(t)(tree.AddChild(parent, pos(float64(i))))
		adds++
	}
	for _, id := range sequenceIDs(tree)[1:4] {
		if err := tree.DeleteNode(id); err != nil {
			t.Fatalf("DeleteNode(%s) failed: %v", id, err)
		}
		deletes++
	}

	if got := len(tree.DepthFirstSequence()); got != adds-deletes {
		t.Errorf("expected %d entries, got %d", adds-deletes, got)
	}
}

func TestAdjacencyMatrix(t *testing.T) {
	tree := NewBranchTree()
	if m := tree.AdjacencyMatrix(); m != nil {
		t.Fatalf("expected nil matrix for empty tree")
	}

	root := must(t)(tree.AddRoot(pos(0)))
	a := must(t)(tree.AddChild(root, pos(1)))
	must(t)(tree.AddChild(root, pos(2)))
	must(t)(tree.AddChild(a, pos(3)))
	if err := tree.DeleteNode(a); err != nil {
		t.Fatalf("DeleteNode failed: %v", err)
	}
	must(t)(tree.AddChild(root, pos(4)))

	m := tree.AdjacencyMatrix()
	rows, cols := m.Dims()
	if rows != tree.Len() || cols != tree.Len() {
		t.Fatalf("expected %dx%d matrix, got %dx%d", tree.Len(), tree.Len(), rows, cols)
	}

	seq := tree.DepthFirstSequence()
	parents := 0
	for i := 0; i < rows; i++ {
		if m.At(i, i) != 0 {
			t.Errorf("self loop at %d", i)
		}
		for j := 0; j < cols; j++ {
			if m.At(i, j) != 0 && m.At(j, i) != 0 {
				t.Errorf("symmetric edge between %d and %d", i, j)
			}
		}
	}
	for j := range seq {
		incoming := 0
		for i := 0; i < rows; i++ {
			if m.At(i, j) == 1 {
				incoming++
				if seq[i].ID != seq[j].Parent {
					t.Errorf("edge %s->%s but parent is %s", seq[i].ID, seq[j].ID, seq[j].Parent)
				}
			}
		}
		if j == 0 && incoming != 0 {
			t.Errorf("root has %d incoming edges", incoming)
		}
		if j > 0 && incoming != 1 {
			t.Errorf("node %s has %d incoming edges", seq[j].ID, incoming)
		}
		parents += incoming
	}
	if parents != len(seq)-1 {
		t.Errorf("expected %d edges, got %d", len(seq)-1, parents)
	}
}

func TestParentList(t *testing.T) {
	tree := NewBranchTree()
	root := must(t)(tree.AddRoot(pos(0)))
	a := must(t)(tree.AddChild(root, pos(1)))
	b := must(t)(tree.AddChild(root, pos(2)))
	a1 := must(t)(tree.AddChild(a, pos(3)))

	want := [][2]NodeID{{"", root}, {root, a}, {root, b}, {a, a1}}
	if got := tree.ParentList(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLinePointSequence(t *testing.T) {
	tree := NewBranchTree()
	root := must(t)(tree.AddRoot(pos(0)))
	child := must(t)(tree.AddChild(root, pos(1)))
	must(t)(tree.AddChild(child, pos(2)))
	must(t)(tree.AddChild(root, pos(3)))

	want := []Position{pos(0), pos(1), pos(2), pos(1), pos(0), pos(3), pos(0)}
	if got := tree.LinePointSequence(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFromSequence_RoundTrip(t *testing.T) {
	tree := NewBranchTree()
	root := must(t)(tree.AddRoot(pos(0)))
	a := must(t)(tree.AddChild(root, pos(1)))
	must(t)(tree.AddChild(a, pos(2)))
	must(t)(tree.AddChild(root, pos(3)))
	if err := tree.SetLocked(a, true); err != nil {
		t.Fatalf("SetLocked failed: %v", err)
	}

	restored, err := FromSequence(tree.DepthFirstSequence())
	if err != nil {
		t.Fatalf("FromSequence failed: %v", err)
	}
	if !slices.Equal(restored.DepthFirstSequence(), tree.DepthFirstSequence()) {
		t.Errorf("restored tree differs")
	}

	// New ids must not collide with restored ones
	id := must(t)(restored.AddChild(root, pos(9)))
	if tree.Has(id) {
		t.Errorf("generated id %s collides with an existing node", id)
	}
}

func TestFromSequence_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		seq     []SequenceEntry
		wantErr error
	}{
		{
			name:    "two roots",
			seq:     []SequenceEntry{{ID: "a"}, {ID: "b"}},
			wantErr: ErrInvalidState,
		},
		{
			name:    "child before parent",
			seq:     []SequenceEntry{{ID: "a"}, {ID: "c", Parent: "b"}, {ID: "b", Parent: "a"}},
			wantErr: ErrNotFound,
		},
		{
			name:    "duplicate id",
			seq:     []SequenceEntry{{ID: "a"}, {ID: "a", Parent: "a"}},
			wantErr: ErrInvalidState,
		},
		{
			name:    "empty id",
			seq:     []SequenceEntry{{ID: ""}},
			wantErr: ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromSequence(tt.seq)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClone_IsIndependent(t *testing.T) {
	tree := NewBranchTree()
	root := must(t)(tree.AddRoot(pos(0)))
	must(t)(tree.AddChild(root, pos(1)))

	clone := tree.Clone()
	must(t)(clone.AddChild(root, pos(2)))

	if tree.Len() != 2 {
		t.Errorf("original modified through clone: %d nodes", tree.Len())
	}
	if clone.Len() != 3 {
		t.Errorf("expected clone to have 3 nodes, got %d", clone.Len())
	}
}

func TestWithIDGenerator(t *testing.T) {
	tree := NewBranchTree(WithIDGenerator(SequentialIDs("F-")))
	root := must(t)(tree.AddRoot(pos(0)))
	child := must(t)(tree.AddChild(root, pos(1)))
	if root != "F-0" || child != "F-1" {
		t.Errorf("expected F-0 and F-1, got %s and %s", root, child)
	}
}

func TestWithIDGenerator_RepeatingGeneratorFails(t *testing.T) {
	tree := NewBranchTree(WithIDGenerator(func() NodeID { return "x" }))
	root := must(t)(tree.AddRoot(pos(0)))

	if _, err := tree.AddChild(root, pos(1)); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("AddChild: expected ErrInvalidState, got %v", err)
	}
	if _, err := tree.InsertBefore(root, pos(1)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("InsertBefore on root: expected ErrNotFound, got %v", err)
	}
	if tree.Len() != 1 {
		t.Errorf("tree changed after failed allocation: len=%d", tree.Len())
	}
}
