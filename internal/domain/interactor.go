package domain

// InsertMode decides where the next placed node goes relative to the selection
type InsertMode int

const (
	InsertAfter  InsertMode = iota // new node becomes the last child of the selection
	InsertBefore                   // new node is inserted between the selection and its parent
)

func (m InsertMode) String() string {
	if m == InsertBefore {
		return "insert before"
	}
	return "insert after"
}

// Interactor turns user clicks into tree edits. One click places one node.
// After an insert-before the mode falls back to insert-after so the user can
// continue down the newly repaired branch.
type Interactor struct {
	tree     *BranchTree
	selected NodeID
	mode     InsertMode
}

// NewInteractor creates an interactor editing tree
func NewInteractor(tree *BranchTree) *Interactor {
	return &Interactor{tree: tree, selected: tree.Root()}
}

// Tree returns the edited tree
func (i *Interactor) Tree() *BranchTree {
	return i.tree
}

// Selected returns the selected node id, empty when nothing is selected
func (i *Interactor) Selected() NodeID {
	return i.selected
}

// Mode returns the current insertion mode
func (i *Interactor) Mode() InsertMode {
	return i.mode
}

// Select makes id the insertion anchor. before selects insert-before mode.
func (i *Interactor) Select(id NodeID, before bool) error {
	if !i.tree.Has(id) {
		return notFound("select", id, "no such node")
	}
	i.selected = id
	i.mode = InsertAfter
	if before {
		i.mode = InsertBefore
	}
	return nil
}

// Place handles one click at pos. While template nodes remain unplaced the
// click positions the next one; otherwise a new node is inserted relative to
// the selection according to the mode.
func (i *Interactor) Place(pos Position) (NodeID, error) {
	if next, ok := NextUnplaced(i.tree); ok {
		if err := i.tree.SetPosition(next, pos); err != nil {
			return "", err
		}
		i.selected = next
		return next, nil
	}

	var (
		id  NodeID
		err error
	)
	switch {
	case i.tree.IsEmpty():
		id, err = i.tree.AddRoot(pos)
	case i.selected == "":
		return "", invalidState("place", "", "no node selected")
	case i.mode == InsertBefore:
		id, err = i.tree.InsertBefore(i.selected, pos)
	default:
		id, err = i.tree.AddChild(i.selected, pos)
	}
	if err != nil {
		return "", err
	}
	i.selected = id
	i.mode = InsertAfter
	return id, nil
}

// Delete removes id and moves the selection to the root if id was selected
func (i *Interactor) Delete(id NodeID) error {
	if err := i.tree.DeleteNode(id); err != nil {
		return err
	}
	if i.selected == id {
		i.selected = i.tree.Root()
		i.mode = InsertAfter
	}
	return nil
}
