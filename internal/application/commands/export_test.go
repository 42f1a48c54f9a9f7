package commands

import (
	"context"
	"errors"
	"testing"

	"vesselx/internal/domain"
)

func TestExportCommand_Execute(t *testing.T) {
	ctx := context.Background()
	store := newMemStore("s1")
	store.seed(t, "s1", [][2]domain.NodeID{{"", "R"}, {"R", "A"}})
	exporter := &fakeExporter{}

	res, err := NewExportCommand(store, exporter, "s1", "").Execute(ctx)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if exporter.name != "session-s1" {
		t.Errorf("expected session name as default, got %q", exporter.name)
	}
	if res.Files.NodeCount != 2 {
		t.Errorf("expected 2 nodes, got %d", res.Files.NodeCount)
	}

	if _, err := NewExportCommand(store, exporter, "s1", "custom").Execute(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if exporter.name != "custom" {
		t.Errorf("expected custom name, got %q", exporter.name)
	}
}

func TestExportCommand_EmptyTree(t *testing.T) {
	store := newMemStore("s1")
	_, err := NewExportCommand(store, &fakeExporter{}, "s1", "x").Execute(context.Background())
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestImportCommand_Execute(t *testing.T) {
	ctx := context.Background()
	imported, err := domain.FromSequence([]domain.SequenceEntry{
		{ID: "R", Placed: true},
		{ID: "A", Parent: "R", Placed: true},
	})
	if err != nil {
		t.Fatalf("FromSequence failed: %v", err)
	}
	importer := &fakeImporter{tree: imported}

	store := newMemStore("s1", "s2")
	res, err := NewImportCommand(store, importer, "s1", "tree.csv", false).Execute(ctx)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if res.NodeCount != 2 || store.sessions["s1"].NodeCount != 2 {
		t.Errorf("expected 2 imported nodes, got %d", res.NodeCount)
	}

	store.seed(t, "s2", [][2]domain.NodeID{{"", "X"}})
	if _, err := NewImportCommand(store, importer, "s2", "tree.csv", false).Execute(ctx); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState without replace, got %v", err)
	}
	if _, err := NewImportCommand(store, importer, "s2", "tree.csv", true).Execute(ctx); err != nil {
		t.Errorf("import with replace failed: %v", err)
	}
}
