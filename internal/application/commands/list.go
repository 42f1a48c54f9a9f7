package commands

import (
	"context"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// ListSessionsCommand lists all stored sessions
type ListSessionsCommand struct {
	store ports.SessionStore
}

// NewListSessionsCommand creates a new ListSessionsCommand
func NewListSessionsCommand(store ports.SessionStore) *ListSessionsCommand {
	return &ListSessionsCommand{store: store}
}

// Execute runs the list sessions command
func (c *ListSessionsCommand) Execute(ctx context.Context) ([]domain.Session, error) {
	return c.store.ListSessions()
}

// ShowTreeResult contains a session tree and its derived views
type ShowTreeResult struct {
	Session  *domain.Session
	Tree     *domain.BranchTree
	Sequence []domain.SequenceEntry
}

// ShowTreeCommand loads the tree of a session
type ShowTreeCommand struct {
	store     ports.SessionStore
	SessionID string
}

// NewShowTreeCommand creates a new ShowTreeCommand
func NewShowTreeCommand(store ports.SessionStore, sessionID string) *ShowTreeCommand {
	return &ShowTreeCommand{
		store:     store,
		SessionID: sessionID,
	}
}

// Execute runs the show tree command
func (c *ShowTreeCommand) Execute(ctx context.Context) (*ShowTreeResult, error) {
	if err := application.ValidateRequired("sessionID", c.SessionID); err != nil {
		return nil, err
	}

	s, err := c.store.GetSession(c.SessionID)
	if err != nil {
		return nil, err
	}
	tree, err := c.store.LoadTree(c.SessionID)
	if err != nil {
		return nil, err
	}

	return &ShowTreeResult{
		Session:  s,
		Tree:     tree,
		Sequence: tree.DepthFirstSequence(),
	}, nil
}
