package domain

import (
	"fmt"
	"slices"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// NodeID identifies a branching node within one tree
type NodeID string

// Position is a node location in the host's RAS world space
type Position = r3.Vector

// Node is a user-placed vessel branching point
type Node struct {
	ID       NodeID
	Position Position
	Parent   NodeID // empty for the root
	Children []NodeID
	Locked   bool
	Placed   bool // false for template nodes the user has not positioned yet
}

// SequenceEntry is one node of the depth-first sequence handed to export and extraction
type SequenceEntry struct {
	ID       NodeID
	Position Position
	Parent   NodeID
	Locked   bool
	Placed   bool
}

// IDGenerator produces candidate node ids. Candidates already used in the tree are skipped.
type IDGenerator func() NodeID

// TreeOption configures a BranchTree
type TreeOption func(*BranchTree)

// WithIDGenerator replaces the default sequential node_N generator
func WithIDGenerator(gen IDGenerator) TreeOption {
	return func(t *BranchTree) {
		t.nextID = gen
	}
}

// SequentialIDs returns a generator yielding prefix0, prefix1, ...
func SequentialIDs(prefix string) IDGenerator {
	n := 0
	return func() NodeID {
		id := NodeID(fmt.Sprintf("%s%d", prefix, n))
		n++
		return id
	}
}

// BranchTree is the hierarchy of vessel branching points for one segmentation session.
// It holds at most one root, every other node has exactly one parent and sibling
// order is significant. It is not safe for concurrent mutation.
type BranchTree struct {
	nodes  map[NodeID]*Node
	root   NodeID
	nextID IDGenerator
}

// NewBranchTree creates an empty tree
func NewBranchTree(opts ...TreeOption) *BranchTree {
	t := &BranchTree{
		nodes:  make(map[NodeID]*Node),
		nextID: SequentialIDs("node_"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Len returns the number of nodes
func (t *BranchTree) Len() int {
	return len(t.nodes)
}

// IsEmpty reports whether the tree has no nodes
func (t *BranchTree) IsEmpty() bool {
	return t.root == ""
}

// Root returns the root id, empty when the tree is empty
func (t *BranchTree) Root() NodeID {
	return t.root
}

// Has reports whether id is in the tree
func (t *BranchTree) Has(id NodeID) bool {
	_, ok := t.nodes[id]
	return ok
}

// Node returns a copy of the node with the given id
func (t *BranchTree) Node(id NodeID) (Node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return Node{}, notFound("get node", id, "no such node")
	}
	cp := *n
	cp.Children = slices.Clone(n.Children)
	return cp, nil
}

// Children returns the ordered child ids of id
func (t *BranchTree) Children(id NodeID) ([]NodeID, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, notFound("children", id, "no such node")
	}
	return slices.Clone(n.Children), nil
}

// Parent returns the parent id, empty for the root
func (t *BranchTree) Parent(id NodeID) (NodeID, error) {
	n, ok := t.nodes[id]
	if !ok {
		return "", notFound("parent", id, "no such node")
	}
	return n.Parent, nil
}

// IsLeaf reports whether id has no children
func (t *BranchTree) IsLeaf(id NodeID) (bool, error) {
	n, ok := t.nodes[id]
	if !ok {
		return false, notFound("is leaf", id, "no such node")
	}
	return len(n.Children) == 0, nil
}

// AddRoot creates the first node of the tree
func (t *BranchTree) AddRoot(pos Position) (NodeID, error) {
	if t.root != "" {
		return "", invalidState("add root", t.root, "tree already has a root")
	}
	id, err := t.allocateID("add root")
	if err != nil {
		return "", err
	}
	t.nodes[id] = &Node{ID: id, Position: pos, Placed: true}
	t.root = id
	return id, nil
}

// AddChild appends a new node as the last child of parent
func (t *BranchTree) AddChild(parent NodeID, pos Position) (NodeID, error) {
	p, ok := t.nodes[parent]
	if !ok {
		return "", notFound("add child", parent, "no such parent")
	}
	id, err := t.allocateID("add child")
	if err != nil {
		return "", err
	}
	t.nodes[id] = &Node{ID: id, Position: pos, Parent: parent, Placed: true}
	p.Children = append(p.Children, id)
	return id, nil
}

// InsertBefore places a new node between sibling and its parent. The new node keeps
// sibling's ordinal and sibling becomes its only child.
func (t *BranchTree) InsertBefore(sibling NodeID, pos Position) (NodeID, error) {
	s, ok := t.nodes[sibling]
	if !ok {
		return "", notFound("insert before", sibling, "no such node")
	}
	if s.Parent == "" {
		return "", notFound("insert before", sibling, "root has no siblings")
	}
	p := t.nodes[s.Parent]
	idx := slices.Index(p.Children, sibling)

	id, err := t.allocateID("insert before")
	if err != nil {
		return "", err
	}
	t.nodes[id] = &Node{
		ID:       id,
		Position: pos,
		Parent:   p.ID,
		Children: []NodeID{sibling},
		Placed:   true,
	}
	p.Children[idx] = id
	s.Parent = id
	return id, nil
}

// DeleteNode removes id. Children move, in order, to the deleted node's ordinal under
// its parent. A root is only removed when it has exactly one child, which becomes the root.
func (t *BranchTree) DeleteNode(id NodeID) error {
	n, ok := t.nodes[id]
	if !ok {
		return notFound("delete", id, "no such node")
	}

	if n.Parent == "" {
		if len(n.Children) != 1 {
			return invalidState("delete", id,
				fmt.Sprintf("root has %d children, cannot choose a new root", len(n.Children)))
		}
		child := t.nodes[n.Children[0]]
		child.Parent = ""
		t.root = child.ID
		delete(t.nodes, id)
		return nil
	}

	p := t.nodes[n.Parent]
	idx := slices.Index(p.Children, id)
	children := make([]NodeID, 0, len(p.Children)-1+len(n.Children))
	children = append(children, p.Children[:idx]...)
	children = append(children, n.Children...)
	children = append(children, p.Children[idx+1:]...)
	p.Children = children
	for _, c := range n.Children {
		t.nodes[c].Parent = p.ID
	}
	delete(t.nodes, id)
	return nil
}

// SetPosition moves an unlocked node and marks it placed
func (t *BranchTree) SetPosition(id NodeID, pos Position) error {
	n, ok := t.nodes[id]
	if !ok {
		return notFound("set position", id, "no such node")
	}
	if n.Locked {
		return invalidState("set position", id, "node is locked")
	}
	n.Position = pos
	n.Placed = true
	return nil
}

// SetLocked toggles whether the node position may be edited
func (t *BranchTree) SetLocked(id NodeID, locked bool) error {
	n, ok := t.nodes[id]
	if !ok {
		return notFound("set locked", id, "no such node")
	}
	n.Locked = locked
	return nil
}

// ReorderChild moves id to newIndex among the children of parent
func (t *BranchTree) ReorderChild(parent, id NodeID, newIndex int) error {
	p, ok := t.nodes[parent]
	if !ok {
		return notFound("reorder", parent, "no such parent")
	}
	idx := slices.Index(p.Children, id)
	if idx < 0 {
		return notFound("reorder", id, fmt.Sprintf("not a child of %s", parent))
	}
	if newIndex < 0 || newIndex >= len(p.Children) {
		return outOfRange("reorder", id,
			fmt.Sprintf("index %d outside [0, %d)", newIndex, len(p.Children)))
	}
	p.Children = slices.Delete(p.Children, idx, idx+1)
	p.Children = slices.Insert(p.Children, newIndex, id)
	return nil
}

// DepthFirstSequence lists the tree in pre-order: root first, then each child
// subtree before the next sibling.
func (t *BranchTree) DepthFirstSequence() []SequenceEntry {
	if t.root == "" {
		return nil
	}
	seq := make([]SequenceEntry, 0, len(t.nodes))
	stack := []NodeID{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[id]
		seq = append(seq, SequenceEntry{
			ID:       n.ID,
			Position: n.Position,
			Parent:   n.Parent,
			Locked:   n.Locked,
			Placed:   n.Placed,
		})
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return seq
}

// AdjacencyMatrix returns the parent→child matrix indexed by depth-first order:
// m[i][j] is 1 when entry i is the parent of entry j. Nil for an empty tree.
func (t *BranchTree) AdjacencyMatrix() *mat.Dense {
	seq := t.DepthFirstSequence()
	if len(seq) == 0 {
		return nil
	}
	index := make(map[NodeID]int, len(seq))
	for i, e := range seq {
		index[e.ID] = i
	}
	m := mat.NewDense(len(seq), len(seq), nil)
	for j, e := range seq {
		if e.Parent != "" {
			m.Set(index[e.Parent], j, 1)
		}
	}
	return m
}

// ParentList returns [parent, child] pairs with the root listed as ["", root].
// Each node's children are listed together before descending into them.
func (t *BranchTree) ParentList() [][2]NodeID {
	if t.root == "" {
		return nil
	}
	pairs := [][2]NodeID{{"", t.root}}
	var walk func(id NodeID)
	walk = func(id NodeID) {
		n := t.nodes[id]
		for _, c := range n.Children {
			pairs = append(pairs, [2]NodeID{id, c})
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.root)
	return pairs
}

// Leaves returns the leaf ids in depth-first order
func (t *BranchTree) Leaves() []NodeID {
	var leaves []NodeID
	for _, e := range t.DepthFirstSequence() {
		if len(t.nodes[e.ID].Children) == 0 {
			leaves = append(leaves, e.ID)
		}
	}
	return leaves
}

// LinePointSequence walks the tree as a single open polyline, returning to each
// parent after visiting a child: root, child, grandchild, child, root, child2, root.
func (t *BranchTree) LinePointSequence() []Position {
	if t.root == "" {
		return nil
	}
	var walk func(id NodeID) []Position
	walk = func(id NodeID) []Position {
		n := t.nodes[id]
		points := []Position{n.Position}
		for _, c := range n.Children {
			points = append(points, walk(c)...)
			points = append(points, n.Position)
		}
		return points
	}
	return walk(t.root)
}

// Clone returns an independent copy sharing the id generator
func (t *BranchTree) Clone() *BranchTree {
	cp := &BranchTree{
		nodes:  make(map[NodeID]*Node, len(t.nodes)),
		root:   t.root,
		nextID: t.nextID,
	}
	for id, n := range t.nodes {
		nn := *n
		nn.Children = slices.Clone(n.Children)
		cp.nodes[id] = &nn
	}
	return cp
}

// FromSequence rebuilds a tree from a depth-first sequence. Parents must precede
// their children and sibling order follows sequence order.
func FromSequence(seq []SequenceEntry, opts ...TreeOption) (*BranchTree, error) {
	t := NewBranchTree(opts...)
	for i, e := range seq {
		if e.ID == "" {
			return nil, invalidState("restore", "", fmt.Sprintf("entry %d has no id", i))
		}
		if _, dup := t.nodes[e.ID]; dup {
			return nil, invalidState("restore", e.ID, "duplicate node id")
		}
		n := &Node{
			ID:       e.ID,
			Position: e.Position,
			Parent:   e.Parent,
			Locked:   e.Locked,
			Placed:   e.Placed,
		}
		if e.Parent == "" {
			if t.root != "" {
				return nil, invalidState("restore", e.ID, "second root in sequence")
			}
			t.root = e.ID
		} else {
			p, ok := t.nodes[e.Parent]
			if !ok {
				return nil, notFound("restore", e.Parent, fmt.Sprintf("parent of %s not seen before it", e.ID))
			}
			p.Children = append(p.Children, e.ID)
		}
		t.nodes[e.ID] = n
	}
	return t, nil
}

// maxIDAttempts bounds how many generated ids may collide before allocation fails
const maxIDAttempts = 1024

func (t *BranchTree) allocateID(op string) (NodeID, error) {
	for range maxIDAttempts {
		id := t.nextID()
		if _, used := t.nodes[id]; !used && id != "" {
			return id, nil
		}
	}
	return "", invalidState(op, "", fmt.Sprintf("id generator gave no unused id in %d attempts", maxIDAttempts))
}

// insertNamed adds an unplaced node with a caller-chosen id. Callers validate first.
func (t *BranchTree) insertNamed(id, parent NodeID) {
	t.nodes[id] = &Node{ID: id, Parent: parent}
	if parent == "" {
		t.root = id
		return
	}
	p := t.nodes[parent]
	p.Children = append(p.Children, id)
}
