package commands

import (
	"context"
	"errors"
	"slices"
	"testing"

	"vesselx/internal/domain"
)

func TestDeleteNodeCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes children", func(t *testing.T) {
		store := newMemStore("s1")
		store.seed(t, "s1", [][2]domain.NodeID{{"", "R"}, {"R", "A"}, {"A", "B"}})

		res, err := NewDeleteNodeCommand(store, "s1", "A").Execute(ctx)
		if err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if !slices.Equal(res.Promoted, []domain.NodeID{"B"}) {
			t.Errorf("expected B promoted, got %v", res.Promoted)
		}
		if got := store.ids("s1"); !slices.Equal(got, []domain.NodeID{"R", "B"}) {
			t.Errorf("expected [R B], got %v", got)
		}
		if parent, _ := res.Tree.Parent("B"); parent != "R" {
			t.Errorf("expected B under R, got %s", parent)
		}
	})

	t.Run("root with many children is rejected", func(t *testing.T) {
		store := newMemStore("s1")
		store.seed(t, "s1", [][2]domain.NodeID{{"", "R"}, {"R", "A"}, {"R", "B"}})

		_, err := NewDeleteNodeCommand(store, "s1", "R").Execute(ctx)
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
		if got := store.ids("s1"); !slices.Equal(got, []domain.NodeID{"R", "A", "B"}) {
			t.Errorf("tree changed after rejected delete: %v", got)
		}
	})

	t.Run("unknown node", func(t *testing.T) {
		store := newMemStore("s1")
		store.seed(t, "s1", [][2]domain.NodeID{{"", "R"}})

		_, err := NewDeleteNodeCommand(store, "s1", "X").Execute(ctx)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteNodeCommand_Validate(t *testing.T) {
	if err := (&DeleteNodeCommand{SessionID: "s1"}).Validate(); err == nil {
		t.Error("expected error for empty node ID")
	}
	if err := (&DeleteNodeCommand{NodeID: "A"}).Validate(); err == nil {
		t.Error("expected error for empty session ID")
	}
}
