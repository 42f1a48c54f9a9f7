package commands

import (
	"context"
	"fmt"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// ApplyTemplateResult contains the result of seeding a tree from a template
type ApplyTemplateResult struct {
	Template  string
	NodeCount int
	Next      domain.NodeID // first node the user should position
	Tree      *domain.BranchTree
	Message   string
}

// ApplyTemplateCommand fills an empty session tree with a named vessel template
type ApplyTemplateCommand struct {
	store     ports.SessionStore
	SessionID string
	Template  string
}

// NewApplyTemplateCommand creates a new ApplyTemplateCommand
func NewApplyTemplateCommand(store ports.SessionStore, sessionID, template string) *ApplyTemplateCommand {
	return &ApplyTemplateCommand{
		store:     store,
		SessionID: sessionID,
		Template:  template,
	}
}

// Validate checks if the template operation is valid
func (c *ApplyTemplateCommand) Validate() error {
	if err := application.ValidateRequired("sessionID", c.SessionID); err != nil {
		return err
	}
	if err := application.ValidateRequired("template", c.Template); err != nil {
		return err
	}
	if _, err := domain.TemplateByName(c.Template); err != nil {
		return &application.ValidationError{
			Field:   "template",
			Message: fmt.Sprintf("unknown template: %s", c.Template),
		}
	}
	return nil
}

// Execute runs the apply template command
func (c *ApplyTemplateCommand) Execute(ctx context.Context) (*ApplyTemplateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tmpl, _ := domain.TemplateByName(c.Template)
	tree, err := mutateTree(ctx, c.store, c.SessionID, "apply template", func(t *domain.BranchTree) error {
		return domain.ApplyTemplate(t, tmpl)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply template %s: %w", c.Template, err)
	}

	next, _ := domain.NextUnplaced(tree)
	return &ApplyTemplateResult{
		Template:  tmpl.Name,
		NodeCount: tree.Len(),
		Next:      next,
		Tree:      tree,
		Message:   fmt.Sprintf("Applied %s template (%d nodes), place %s first", tmpl.Name, tree.Len(), next),
	}, nil
}
