package commands

import (
	"context"
	"fmt"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// ExportResult contains the files written for a session
type ExportResult struct {
	Files   *ports.ExportResult
	Message string
}

// ExportCommand writes the fiducial list and adjacency matrix of a session tree.
// Name defaults to the session name.
type ExportCommand struct {
	store     ports.SessionStore
	exporter  ports.TreeExporter
	SessionID string
	Name      string
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(store ports.SessionStore, exporter ports.TreeExporter, sessionID, name string) *ExportCommand {
	return &ExportCommand{
		store:     store,
		exporter:  exporter,
		SessionID: sessionID,
		Name:      name,
	}
}

// Validate checks if the export operation is valid
func (c *ExportCommand) Validate() error {
	return application.ValidateRequired("sessionID", c.SessionID)
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	name := c.Name
	if name == "" {
		s, err := c.store.GetSession(c.SessionID)
		if err != nil {
			return nil, err
		}
		name = s.Name
	}

	tree, err := c.store.LoadTree(c.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tree: %w", err)
	}
	if tree.IsEmpty() {
		return nil, &domain.TreeError{Op: "export", Kind: domain.ErrInvalidState, Reason: "tree is empty"}
	}

	files, err := c.exporter.Export(name, tree)
	if err != nil {
		return nil, fmt.Errorf("failed to export: %w", err)
	}

	return &ExportResult{
		Files:   files,
		Message: fmt.Sprintf("Exported %d nodes to %s", files.NodeCount, files.FiducialPath),
	}, nil
}

// ImportResult contains the result of loading a fiducial file into a session
type ImportResult struct {
	NodeCount int
	Tree      *domain.BranchTree
	Message   string
}

// ImportCommand replaces an empty session tree with one read from a fiducial file
type ImportCommand struct {
	store     ports.SessionStore
	importer  ports.TreeImporter
	SessionID string
	Path      string
	Replace   bool // allow overwriting a non-empty tree
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(store ports.SessionStore, importer ports.TreeImporter, sessionID, path string, replace bool) *ImportCommand {
	return &ImportCommand{
		store:     store,
		importer:  importer,
		SessionID: sessionID,
		Path:      path,
		Replace:   replace,
	}
}

// Validate checks if the import operation is valid
func (c *ImportCommand) Validate() error {
	if err := application.ValidateRequired("sessionID", c.SessionID); err != nil {
		return err
	}
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	imported, err := c.importer.Import(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.Path, err)
	}

	current, err := c.store.LoadTree(c.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tree: %w", err)
	}
	if !current.IsEmpty() && !c.Replace {
		return nil, &domain.TreeError{
			Op:     "import",
			Kind:   domain.ErrInvalidState,
			Reason: fmt.Sprintf("session already has %d nodes", current.Len()),
		}
	}

	if err := c.store.SaveTree(c.SessionID, imported); err != nil {
		return nil, fmt.Errorf("failed to save tree: %w", err)
	}

	return &ImportResult{
		NodeCount: imported.Len(),
		Tree:      imported,
		Message:   fmt.Sprintf("Imported %d nodes from %s", imported.Len(), c.Path),
	}, nil
}
