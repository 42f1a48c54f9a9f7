package commands

import (
	"context"
	"fmt"
	"slices"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// ReorderResult contains the result of moving a node among its siblings
type ReorderResult struct {
	NodeID  domain.NodeID
	Parent  domain.NodeID
	Index   int
	Tree    *domain.BranchTree
	Message string
}

// ReorderChildCommand moves a node to a new index among its siblings.
// When ParentID is empty the node's current parent is used. Indexes outside
// the sibling list, negative ones included, fail with domain.ErrOutOfRange.
type ReorderChildCommand struct {
	store     ports.SessionStore
	SessionID string
	ParentID  domain.NodeID
	NodeID    domain.NodeID
	Index     int
}

// NewReorderChildCommand creates a new ReorderChildCommand
func NewReorderChildCommand(store ports.SessionStore, sessionID string, parentID, nodeID domain.NodeID, index int) *ReorderChildCommand {
	return &ReorderChildCommand{
		store:     store,
		SessionID: sessionID,
		ParentID:  parentID,
		NodeID:    nodeID,
		Index:     index,
	}
}

// Validate checks if the reorder operation is valid
func (c *ReorderChildCommand) Validate() error {
	if err := application.ValidateRequired("sessionID", c.SessionID); err != nil {
		return err
	}
	return application.ValidateRequired("nodeID", string(c.NodeID))
}

// Execute runs the reorder command
func (c *ReorderChildCommand) Execute(ctx context.Context) (*ReorderResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	parent := c.ParentID
	tree, err := mutateTree(ctx, c.store, c.SessionID, "reorder", func(t *domain.BranchTree) error {
		if parent == "" {
			p, err := t.Parent(c.NodeID)
			if err != nil {
				return err
			}
			if p == "" {
				return &domain.TreeError{Op: "reorder", NodeID: c.NodeID, Kind: domain.ErrNotFound, Reason: "root has no siblings"}
			}
			parent = p
		}
		return t.ReorderChild(parent, c.NodeID, c.Index)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to move %s: %w", c.NodeID, err)
	}

	return &ReorderResult{
		NodeID:  c.NodeID,
		Parent:  parent,
		Index:   c.Index,
		Tree:    tree,
		Message: fmt.Sprintf("Moved %s to position %d under %s", c.NodeID, c.Index, parent),
	}, nil
}

// ShiftChildCommand moves a node up (negative delta) or down among its siblings.
// Shifting past either end is a no-op.
type ShiftChildCommand struct {
	store     ports.SessionStore
	SessionID string
	NodeID    domain.NodeID
	Delta     int
}

// NewShiftChildCommand creates a new ShiftChildCommand
func NewShiftChildCommand(store ports.SessionStore, sessionID string, nodeID domain.NodeID, delta int) *ShiftChildCommand {
	return &ShiftChildCommand{
		store:     store,
		SessionID: sessionID,
		NodeID:    nodeID,
		Delta:     delta,
	}
}

// Execute runs the shift command
func (c *ShiftChildCommand) Execute(ctx context.Context) (*ReorderResult, error) {
	if err := application.ValidateRequired("sessionID", c.SessionID); err != nil {
		return nil, err
	}
	if err := application.ValidateRequired("nodeID", string(c.NodeID)); err != nil {
		return nil, err
	}

	var (
		parent domain.NodeID
		index  int
	)
	tree, err := mutateTree(ctx, c.store, c.SessionID, "shift", func(t *domain.BranchTree) error {
		p, err := t.Parent(c.NodeID)
		if err != nil {
			return err
		}
		if p == "" {
			return &domain.TreeError{Op: "shift", NodeID: c.NodeID, Kind: domain.ErrInvalidState, Reason: "root has no siblings"}
		}
		siblings, err := t.Children(p)
		if err != nil {
			return err
		}
		parent = p
		index = min(max(slices.Index(siblings, c.NodeID)+c.Delta, 0), len(siblings)-1)
		return t.ReorderChild(p, c.NodeID, index)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to move %s: %w", c.NodeID, err)
	}

	return &ReorderResult{
		NodeID:  c.NodeID,
		Parent:  parent,
		Index:   index,
		Tree:    tree,
		Message: fmt.Sprintf("Moved %s to position %d under %s", c.NodeID, index, parent),
	}, nil
}
