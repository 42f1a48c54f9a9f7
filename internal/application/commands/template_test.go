package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vesselx/internal/domain"
)

func TestApplyTemplateCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		wantErr  bool
		errMsg   string
	}{
		{name: "portal", template: "portal"},
		{name: "ivc", template: "ivc"},
		{name: "empty", template: "", wantErr: true, errMsg: "template is required"},
		{name: "unknown", template: "artery", wantErr: true, errMsg: "unknown template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&ApplyTemplateCommand{SessionID: "s1", Template: tt.template}).Validate()
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestApplyTemplateCommand_Execute(t *testing.T) {
	ctx := context.Background()
	store := newMemStore("s1", "s2")

	res, err := NewApplyTemplateCommand(store, "s1", "portal").Execute(ctx)
	if err != nil {
		t.Fatalf("apply template failed: %v", err)
	}
	if res.NodeCount != len(domain.PortalVeinTemplate.Branches) {
		t.Errorf("expected %d nodes, got %d", len(domain.PortalVeinTemplate.Branches), res.NodeCount)
	}
	if res.Next != domain.PortalVeinRoot {
		t.Errorf("expected %s next, got %s", domain.PortalVeinRoot, res.Next)
	}

	store.seed(t, "s2", [][2]domain.NodeID{{"", "R"}})
	_, err = NewApplyTemplateCommand(store, "s2", "ivc").Execute(ctx)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState on non-empty tree, got %v", err)
	}
}
