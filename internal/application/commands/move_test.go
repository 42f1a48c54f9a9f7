package commands

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"vesselx/internal/domain"
)

func TestReorderChildCommand_Execute(t *testing.T) {
	ctx := context.Background()
	links := [][2]domain.NodeID{{"", "R"}, {"R", "A"}, {"R", "B"}, {"R", "C"}}

	tests := []struct {
		name    string
		parent  domain.NodeID
		node    domain.NodeID
		index   int
		want    []domain.NodeID
		wantErr error
	}{
		{name: "explicit parent", parent: "R", node: "C", index: 0, want: []domain.NodeID{"R", "C", "A", "B"}},
		{name: "parent resolved", node: "A", index: 2, want: []domain.NodeID{"R", "B", "C", "A"}},
		{name: "index past end", node: "A", index: 3, want: []domain.NodeID{"R", "A", "B", "C"}, wantErr: domain.ErrOutOfRange},
		{name: "negative index", node: "A", index: -1, want: []domain.NodeID{"R", "A", "B", "C"}, wantErr: domain.ErrOutOfRange},
		{name: "negative index explicit parent", parent: "R", node: "B", index: -1, want: []domain.NodeID{"R", "A", "B", "C"}, wantErr: domain.ErrOutOfRange},
		{name: "root has no parent", node: "R", index: 0, want: []domain.NodeID{"R", "A", "B", "C"}, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore("s1")
			store.seed(t, "s1", links)

			_, err := NewReorderChildCommand(store, "s1", tt.parent, tt.node, tt.index).Execute(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := store.ids("s1"); !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestReorderChildCommand_Validate(t *testing.T) {
	if err := (&ReorderChildCommand{SessionID: "s1", Index: 0}).Validate(); err == nil {
		t.Error("expected error for missing node")
	}
	if err := (&ReorderChildCommand{SessionID: "s1", NodeID: "A", Index: -1}).Validate(); err != nil {
		t.Errorf("index bounds belong to the tree, got %v", err)
	}
}

func TestReorderChildCommand_RootNamesNode(t *testing.T) {
	store := newMemStore("s1")
	store.seed(t, "s1", [][2]domain.NodeID{{"", "R"}, {"R", "A"}})

	_, err := NewReorderChildCommand(store, "s1", "", "R", 0).Execute(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "reorder R: root has no siblings") {
		t.Errorf("expected root error naming R, got %q", err.Error())
	}
}

func TestShiftChildCommand_Execute(t *testing.T) {
	ctx := context.Background()
	store := newMemStore("s1")
	store.seed(t, "s1", [][2]domain.NodeID{{"", "R"}, {"R", "A"}, {"R", "B"}, {"R", "C"}})

	res, err := NewShiftChildCommand(store, "s1", "C", -1).Execute(ctx)
	if err != nil {
		t.Fatalf("shift failed: %v", err)
	}
	if res.Index != 1 {
		t.Errorf("expected index 1, got %d", res.Index)
	}
	if got := store.ids("s1"); !slices.Equal(got, []domain.NodeID{"R", "A", "C", "B"}) {
		t.Errorf("unexpected order %v", got)
	}

	// Clamped at the first position
	if _, err := NewShiftChildCommand(store, "s1", "A", -1).Execute(ctx); err != nil {
		t.Fatalf("shift failed: %v", err)
	}
	if got := store.ids("s1"); !slices.Equal(got, []domain.NodeID{"R", "A", "C", "B"}) {
		t.Errorf("unexpected order after clamped shift %v", got)
	}

	if _, err := NewShiftChildCommand(store, "s1", "R", 1).Execute(ctx); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState shifting root, got %v", err)
	}
}
