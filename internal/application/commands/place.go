package commands

import (
	"context"
	"fmt"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// PlaceResult contains the result of a placement click
type PlaceResult struct {
	NodeID   domain.NodeID
	Template bool // an unplaced template node was positioned
	Mode     CreateMode
	Tree     *domain.BranchTree
	Message  string
}

// PlaceCommand handles one click in the viewer. While template nodes are
// unplaced the click positions the next one and Anchor is ignored. Otherwise an
// empty tree gets its root, and a non-empty one gets a child of Anchor or, with
// Before, a node inserted between Anchor and its parent.
type PlaceCommand struct {
	store     ports.SessionStore
	SessionID string
	Anchor    domain.NodeID
	Before    bool
	Position  domain.Position
}

// NewPlaceCommand creates a new PlaceCommand
func NewPlaceCommand(store ports.SessionStore, sessionID string, anchor domain.NodeID, before bool, pos domain.Position) *PlaceCommand {
	return &PlaceCommand{
		store:     store,
		SessionID: sessionID,
		Anchor:    anchor,
		Before:    before,
		Position:  pos,
	}
}

// Validate checks if the place operation is valid
func (c *PlaceCommand) Validate() error {
	if err := application.ValidateRequired("sessionID", c.SessionID); err != nil {
		return err
	}
	return application.ValidatePosition("position", c.Position)
}

// Execute runs the place command
func (c *PlaceCommand) Execute(ctx context.Context) (*PlaceResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	res := &PlaceResult{}
	tree, err := mutateTree(ctx, c.store, c.SessionID, "place", func(t *domain.BranchTree) error {
		in := domain.NewInteractor(t)
		if _, ok := domain.NextUnplaced(t); ok {
			res.Template = true
		} else {
			mode, err := DetermineCreateMode(t, c.Anchor, c.Before)
			if err != nil {
				return err
			}
			res.Mode = mode
			if mode != CreateModeRoot {
				if err := in.Select(c.Anchor, c.Before); err != nil {
					return err
				}
			}
		}

		id, err := in.Place(c.Position)
		if err != nil {
			return err
		}
		res.NodeID = id
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to place point: %w", err)
	}

	res.Tree = tree
	pos := application.FormatPosition(c.Position)
	switch {
	case res.Template:
		res.Message = fmt.Sprintf("Positioned %s at %s", res.NodeID, pos)
		if next, ok := domain.NextUnplaced(tree); ok {
			res.Message += fmt.Sprintf(", next: %s", next)
		}
	case res.Mode == CreateModeRoot:
		res.Message = fmt.Sprintf("Added root %s at %s", res.NodeID, pos)
	case res.Mode == CreateModeBefore:
		res.Message = fmt.Sprintf("Inserted %s before %s", res.NodeID, c.Anchor)
	default:
		res.Message = fmt.Sprintf("Added %s under %s", res.NodeID, c.Anchor)
	}
	return res, nil
}
