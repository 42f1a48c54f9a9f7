package commands

import (
	"context"
	"fmt"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID domain.NodeID
	Promoted  []domain.NodeID // children moved up to the deleted node's parent
	Tree      *domain.BranchTree
	Message   string
}

// DeleteNodeCommand deletes a node and promotes its children
type DeleteNodeCommand struct {
	store     ports.SessionStore
	SessionID string
	NodeID    domain.NodeID
}

// NewDeleteNodeCommand creates a new DeleteNodeCommand
func NewDeleteNodeCommand(store ports.SessionStore, sessionID string, nodeID domain.NodeID) *DeleteNodeCommand {
	return &DeleteNodeCommand{
		store:     store,
		SessionID: sessionID,
		NodeID:    nodeID,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteNodeCommand) Validate() error {
	if err := application.ValidateRequired("sessionID", c.SessionID); err != nil {
		return err
	}
	return application.ValidateRequired("nodeID", string(c.NodeID))
}

// Execute runs the delete command
func (c *DeleteNodeCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var promoted []domain.NodeID
	tree, err := mutateTree(ctx, c.store, c.SessionID, "delete", func(t *domain.BranchTree) error {
		children, err := t.Children(c.NodeID)
		if err != nil {
			return err
		}
		promoted = children
		return t.DeleteNode(c.NodeID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.NodeID, err)
	}

	msg := fmt.Sprintf("Deleted %s", c.NodeID)
	if len(promoted) > 0 {
		msg = fmt.Sprintf("Deleted %s, promoted %d children", c.NodeID, len(promoted))
	}
	return &DeleteResult{
		DeletedID: c.NodeID,
		Promoted:  promoted,
		Tree:      tree,
		Message:   msg,
	}, nil
}
