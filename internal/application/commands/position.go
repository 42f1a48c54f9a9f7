package commands

import (
	"context"
	"fmt"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// SetPositionResult contains the result of moving a node
type SetPositionResult struct {
	NodeID   domain.NodeID
	Position domain.Position
	Tree     *domain.BranchTree
	Message  string
}

// SetPositionCommand moves an unlocked node, placing it if it came from a template
type SetPositionCommand struct {
	store     ports.SessionStore
	SessionID string
	NodeID    domain.NodeID
	Position  domain.Position
}

// NewSetPositionCommand creates a new SetPositionCommand
func NewSetPositionCommand(store ports.SessionStore, sessionID string, nodeID domain.NodeID, pos domain.Position) *SetPositionCommand {
	return &SetPositionCommand{
		store:     store,
		SessionID: sessionID,
		NodeID:    nodeID,
		Position:  pos,
	}
}

// Validate checks if the set position operation is valid
func (c *SetPositionCommand) Validate() error {
	if err := application.ValidateRequired("sessionID", c.SessionID); err != nil {
		return err
	}
	if err := application.ValidateRequired("nodeID", string(c.NodeID)); err != nil {
		return err
	}
	return application.ValidatePosition("position", c.Position)
}

// Execute runs the set position command
func (c *SetPositionCommand) Execute(ctx context.Context) (*SetPositionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tree, err := mutateTree(ctx, c.store, c.SessionID, "set position", func(t *domain.BranchTree) error {
		return t.SetPosition(c.NodeID, c.Position)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to move %s: %w", c.NodeID, err)
	}

	return &SetPositionResult{
		NodeID:   c.NodeID,
		Position: c.Position,
		Tree:     tree,
		Message:  fmt.Sprintf("Moved %s to %s", c.NodeID, application.FormatPosition(c.Position)),
	}, nil
}

// SetLockedResult contains the result of locking or unlocking a node
type SetLockedResult struct {
	NodeID  domain.NodeID
	Locked  bool
	Tree    *domain.BranchTree
	Message string
}

// SetLockedCommand toggles whether a node may be moved
type SetLockedCommand struct {
	store     ports.SessionStore
	SessionID string
	NodeID    domain.NodeID
	Locked    bool
}

// NewSetLockedCommand creates a new SetLockedCommand
func NewSetLockedCommand(store ports.SessionStore, sessionID string, nodeID domain.NodeID, locked bool) *SetLockedCommand {
	return &SetLockedCommand{
		store:     store,
		SessionID: sessionID,
		NodeID:    nodeID,
		Locked:    locked,
	}
}

// Validate checks if the lock operation is valid
func (c *SetLockedCommand) Validate() error {
	if err := application.ValidateRequired("sessionID", c.SessionID); err != nil {
		return err
	}
	return application.ValidateRequired("nodeID", string(c.NodeID))
}

// Execute runs the set locked command
func (c *SetLockedCommand) Execute(ctx context.Context) (*SetLockedResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tree, err := mutateTree(ctx, c.store, c.SessionID, "set locked", func(t *domain.BranchTree) error {
		return t.SetLocked(c.NodeID, c.Locked)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update lock on %s: %w", c.NodeID, err)
	}

	verb := "Unlocked"
	if c.Locked {
		verb = "Locked"
	}
	return &SetLockedResult{
		NodeID:  c.NodeID,
		Locked:  c.Locked,
		Tree:    tree,
		Message: fmt.Sprintf("%s %s", verb, c.NodeID),
	}, nil
}
