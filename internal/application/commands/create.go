package commands

import (
	"context"
	"fmt"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// CreateMode indicates where a new node is attached
type CreateMode int

const (
	CreateModeRoot CreateMode = iota
	CreateModeChild
	CreateModeBefore
)

// DetermineCreateMode returns how a node placed relative to anchor is created.
// An empty tree always gets a root. The root cannot get a node inserted before it.
func DetermineCreateMode(tree *domain.BranchTree, anchor domain.NodeID, before bool) (CreateMode, error) {
	if tree.IsEmpty() {
		return CreateModeRoot, nil
	}
	if anchor == "" {
		return 0, &application.ValidationError{
			Field:   "nodeID",
			Message: "select a node to attach to",
		}
	}
	if before {
		if anchor == tree.Root() {
			return 0, &application.ValidationError{
				Field:   "siblingID",
				Message: "cannot insert before the root",
			}
		}
		return CreateModeBefore, nil
	}
	return CreateModeChild, nil
}

// CreateNodeResult contains the result of adding a node
type CreateNodeResult struct {
	NodeID  domain.NodeID
	Parent  domain.NodeID
	Tree    *domain.BranchTree
	Message string
}

// AddRootCommand places the first node of a session tree
type AddRootCommand struct {
	store     ports.SessionStore
	SessionID string
	Position  domain.Position
}

// NewAddRootCommand creates a new AddRootCommand
func NewAddRootCommand(store ports.SessionStore, sessionID string, pos domain.Position) *AddRootCommand {
	return &AddRootCommand{
		store:     store,
		SessionID: sessionID,
		Position:  pos,
	}
}

// Validate checks if the add root operation is valid
func (c *AddRootCommand) Validate() error {
	if err := application.ValidateRequired("sessionID", c.SessionID); err != nil {
		return err
	}
	return application.ValidatePosition("position", c.Position)
}

// Execute runs the add root command
func (c *AddRootCommand) Execute(ctx context.Context) (*CreateNodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var id domain.NodeID
	tree, err := mutateTree(ctx, c.store, c.SessionID, "add root", func(t *domain.BranchTree) error {
		var err error
		id, err = t.AddRoot(c.Position)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add root: %w", err)
	}

	return &CreateNodeResult{
		NodeID:  id,
		Tree:    tree,
		Message: fmt.Sprintf("Added root %s at %s", id, application.FormatPosition(c.Position)),
	}, nil
}

// AddChildCommand appends a node as the last child of a parent
type AddChildCommand struct {
	store     ports.SessionStore
	SessionID string
	ParentID  domain.NodeID
	Position  domain.Position
}

// NewAddChildCommand creates a new AddChildCommand
func NewAddChildCommand(store ports.SessionStore, sessionID string, parentID domain.NodeID, pos domain.Position) *AddChildCommand {
	return &AddChildCommand{
		store:     store,
		SessionID: sessionID,
		ParentID:  parentID,
		Position:  pos,
	}
}

// Validate checks if the add child operation is valid
func (c *AddChildCommand) Validate() error {
	if err := application.ValidateRequired("sessionID", c.SessionID); err != nil {
		return err
	}
	if err := application.ValidateRequired("parentID", string(c.ParentID)); err != nil {
		return err
	}
	return application.ValidatePosition("position", c.Position)
}

// Execute runs the add child command
func (c *AddChildCommand) Execute(ctx context.Context) (*CreateNodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var id domain.NodeID
	tree, err := mutateTree(ctx, c.store, c.SessionID, "add child", func(t *domain.BranchTree) error {
		var err error
		id, err = t.AddChild(c.ParentID, c.Position)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add child: %w", err)
	}

	return &CreateNodeResult{
		NodeID:  id,
		Parent:  c.ParentID,
		Tree:    tree,
		Message: fmt.Sprintf("Added %s under %s", id, c.ParentID),
	}, nil
}

// InsertBeforeCommand places a node between a sibling and its parent
type InsertBeforeCommand struct {
	store     ports.SessionStore
	SessionID string
	SiblingID domain.NodeID
	Position  domain.Position
}

// NewInsertBeforeCommand creates a new InsertBeforeCommand
func NewInsertBeforeCommand(store ports.SessionStore, sessionID string, siblingID domain.NodeID, pos domain.Position) *InsertBeforeCommand {
	return &InsertBeforeCommand{
		store:     store,
		SessionID: sessionID,
		SiblingID: siblingID,
		Position:  pos,
	}
}

// Validate checks if the insert operation is valid
func (c *InsertBeforeCommand) Validate() error {
	if err := application.ValidateRequired("sessionID", c.SessionID); err != nil {
		return err
	}
	if err := application.ValidateRequired("siblingID", string(c.SiblingID)); err != nil {
		return err
	}
	return application.ValidatePosition("position", c.Position)
}

// Execute runs the insert before command
func (c *InsertBeforeCommand) Execute(ctx context.Context) (*CreateNodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var (
		id     domain.NodeID
		parent domain.NodeID
	)
	tree, err := mutateTree(ctx, c.store, c.SessionID, "insert before", func(t *domain.BranchTree) error {
		var err error
		id, err = t.InsertBefore(c.SiblingID, c.Position)
		if err != nil {
			return err
		}
		parent, err = t.Parent(id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert before %s: %w", c.SiblingID, err)
	}

	return &CreateNodeResult{
		NodeID:  id,
		Parent:  parent,
		Tree:    tree,
		Message: fmt.Sprintf("Inserted %s before %s", id, c.SiblingID),
	}, nil
}
