package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// CreateSessionResult contains the result of creating a session
type CreateSessionResult struct {
	Session *domain.Session
	Message string
}

// CreateSessionCommand creates an empty segmentation session
type CreateSessionCommand struct {
	store ports.SessionStore
	Name  string
}

// NewCreateSessionCommand creates a new CreateSessionCommand
func NewCreateSessionCommand(store ports.SessionStore, name string) *CreateSessionCommand {
	return &CreateSessionCommand{
		store: store,
		Name:  name,
	}
}

// Validate checks if the create operation is valid
func (c *CreateSessionCommand) Validate() error {
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the create session command
func (c *CreateSessionCommand) Execute(ctx context.Context) (*CreateSessionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	s, err := c.store.CreateSession(c.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("session", s.ID).Str("name", s.Name).Msg("session created")

	return &CreateSessionResult{
		Session: s,
		Message: fmt.Sprintf("Created session: %s %s", s.ID, s.Name),
	}, nil
}

// DeleteSessionResult contains the result of deleting a session
type DeleteSessionResult struct {
	DeletedID string
	Message   string
}

// DeleteSessionCommand removes a session and its tree
type DeleteSessionCommand struct {
	store     ports.SessionStore
	SessionID string
}

// NewDeleteSessionCommand creates a new DeleteSessionCommand
func NewDeleteSessionCommand(store ports.SessionStore, sessionID string) *DeleteSessionCommand {
	return &DeleteSessionCommand{
		store:     store,
		SessionID: sessionID,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteSessionCommand) Validate() error {
	return application.ValidateRequired("sessionID", c.SessionID)
}

// Execute runs the delete session command
func (c *DeleteSessionCommand) Execute(ctx context.Context) (*DeleteSessionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.store.DeleteSession(c.SessionID); err != nil {
		return nil, fmt.Errorf("failed to delete session %s: %w", c.SessionID, err)
	}

	return &DeleteSessionResult{
		DeletedID: c.SessionID,
		Message:   fmt.Sprintf("Deleted session %s", c.SessionID),
	}, nil
}

// mutateTree loads the session tree, applies fn and saves the tree only when fn succeeds
func mutateTree(ctx context.Context, store ports.SessionStore, sessionID, op string, fn func(*domain.BranchTree) error) (*domain.BranchTree, error) {
	tree, err := store.LoadTree(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tree: %w", err)
	}

	log := zerolog.Ctx(ctx).With().Str("session", sessionID).Str("op", op).Logger()
	if err := fn(tree); err != nil {
		log.Debug().Err(err).Msg("tree edit rejected")
		return nil, err
	}

	if err := store.SaveTree(sessionID, tree); err != nil {
		return nil, fmt.Errorf("failed to save tree: %w", err)
	}
	log.Debug().Int("nodes", tree.Len()).Msg("tree saved")
	return tree, nil
}
