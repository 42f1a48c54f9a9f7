package mcp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vesselx/internal/adapters/sqlite"
	"vesselx/internal/domain"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s := sqlite.NewStore(zerolog.Nop())
	require.NoError(t, s.Open(filepath.Join(t.TempDir(), "vesselx.db")))
	t.Cleanup(func() { s.Close() })
	return s
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, res.IsError
}

func TestTools_BuildAndShowTree(t *testing.T) {
	store := openStore(t)
	session, err := store.CreateSession("liver-01")
	require.NoError(t, err)

	_, isErr := call(t, addRootHandler(store), map[string]any{
		"session_id": session.ID, "x": 0.0, "y": 0.0, "z": 0.0,
	})
	require.False(t, isErr)

	_, isErr = call(t, addChildHandler(store), map[string]any{
		"session_id": session.ID, "parent_id": "node_0", "x": 1.0, "y": 2.0, "z": 3.0,
	})
	require.False(t, isErr)

	_, isErr = call(t, insertBeforeHandler(store), map[string]any{
		"session_id": session.ID, "sibling_id": "node_1", "x": 0.5, "y": 1.0, "z": 1.5,
	})
	require.False(t, isErr)

	out, isErr := call(t, sequenceHandler(store), map[string]any{"session_id": session.ID})
	require.False(t, isErr)
	assert.Equal(t,
		"0\tnode_0\t0.000,0.000,0.000\t-\n"+
			"1\tnode_2\t0.500,1.000,1.500\tnode_0\n"+
			"2\tnode_1\t1.000,2.000,3.000\tnode_2",
		out)

	out, isErr = call(t, adjacencyHandler(store), map[string]any{"session_id": session.ID})
	require.False(t, isErr)
	assert.Equal(t, "0 1 0\n0 0 1\n0 0 0", out)

	out, isErr = call(t, treeHandler(store), map[string]any{"session_id": session.ID})
	require.False(t, isErr)
	assert.Contains(t, out, "liver-01 (3 nodes)")
	assert.Contains(t, out, "    node_1 (1.000,2.000,3.000)")
}

func TestTools_LockedNodeRejectsMove(t *testing.T) {
	store := openStore(t)
	session, err := store.CreateSession("liver-02")
	require.NoError(t, err)

	_, isErr := call(t, addRootHandler(store), map[string]any{
		"session_id": session.ID, "x": 1.0, "y": 1.0, "z": 1.0,
	})
	require.False(t, isErr)

	out, isErr := call(t, setLockedHandler(store), map[string]any{
		"session_id": session.ID, "node_id": "node_0", "locked": true,
	})
	require.False(t, isErr)
	assert.Equal(t, "Locked node_0", out)

	_, isErr = call(t, setPositionHandler(store), map[string]any{
		"session_id": session.ID, "node_id": "node_0", "x": 5.0, "y": 5.0, "z": 5.0,
	})
	assert.True(t, isErr)

	tree, err := store.LoadTree(session.ID)
	require.NoError(t, err)
	n, err := tree.Node("node_0")
	require.NoError(t, err)
	assert.Equal(t, 1.0, n.Position.X)
}

func TestTools_Errors(t *testing.T) {
	store := openStore(t)
	session, err := store.CreateSession("liver-03")
	require.NoError(t, err)

	tests := []struct {
		name string
		h    server.ToolHandlerFunc
		args map[string]any
	}{
		{"missing coordinate", addRootHandler(store), map[string]any{"session_id": session.ID, "x": 1.0, "y": 1.0}},
		{"unknown parent", addChildHandler(store), map[string]any{"session_id": session.ID, "parent_id": "nope", "x": 1.0, "y": 1.0, "z": 1.0}},
		{"unknown session", treeHandler(store), map[string]any{"session_id": "missing"}},
		{"empty tree delete", deleteHandler(store), map[string]any{"session_id": session.ID, "node_id": "node_0"}},
		{"missing index", reorderHandler(store), map[string]any{"session_id": session.ID, "node_id": "node_0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, isErr := call(t, tt.h, tt.args)
			assert.True(t, isErr)
		})
	}
}

func TestTools_ApplyTemplate(t *testing.T) {
	store := openStore(t)
	session, err := store.CreateSession("liver-04")
	require.NoError(t, err)

	_, isErr := call(t, applyTemplateHandler(store), map[string]any{
		"session_id": session.ID, "template": "ivc",
	})
	require.False(t, isErr)

	tree, err := store.LoadTree(session.ID)
	require.NoError(t, err)
	assert.Equal(t, len(domain.InferiorCavaVeinTemplate.Branches), tree.Len())
}

func TestTools_Sessions(t *testing.T) {
	store := openStore(t)

	out, _ := call(t, sessionsHandler(store), map[string]any{})
	assert.Equal(t, "No sessions found.", out)

	_, isErr := call(t, newSessionHandler(store), map[string]any{"name": "liver-05"})
	require.False(t, isErr)

	out, _ = call(t, sessionsHandler(store), map[string]any{})
	assert.Contains(t, out, "liver-05  (0 nodes)")
}

func TestTools_Place(t *testing.T) {
	store := openStore(t)
	session, err := store.CreateSession("liver-place")
	require.NoError(t, err)
	place := placeHandler(store)

	out, isErr := call(t, place, map[string]any{
		"session_id": session.ID, "x": 0.0, "y": 0.0, "z": 0.0,
	})
	require.False(t, isErr, out)
	assert.Equal(t, "Added root node_0 at 0.000,0.000,0.000", out)

	out, isErr = call(t, place, map[string]any{
		"session_id": session.ID, "anchor_id": "node_0", "x": 2.0, "y": 0.0, "z": 0.0,
	})
	require.False(t, isErr, out)
	assert.Equal(t, "Added node_1 under node_0", out)

	out, isErr = call(t, place, map[string]any{
		"session_id": session.ID, "anchor_id": "node_1", "before": true, "x": 1.0, "y": 0.0, "z": 0.0,
	})
	require.False(t, isErr, out)
	assert.Equal(t, "Inserted node_2 before node_1", out)

	_, isErr = call(t, place, map[string]any{
		"session_id": session.ID, "x": 3.0, "y": 0.0, "z": 0.0,
	})
	assert.True(t, isErr, "placing without an anchor should fail on a non-empty tree")

	out, isErr = call(t, treeHandler(store), map[string]any{"session_id": session.ID, "format": "edges"})
	require.False(t, isErr)
	assert.Equal(t, "-\tnode_0\nnode_0\tnode_2\nnode_2\tnode_1", out)

	out, isErr = call(t, treeHandler(store), map[string]any{"session_id": session.ID, "format": "polyline"})
	require.False(t, isErr)
	assert.Equal(t, "0.000,0.000,0.000\n1.000,0.000,0.000\n2.000,0.000,0.000\n1.000,0.000,0.000\n0.000,0.000,0.000", out)
}

func TestTools_PlaceFollowsTemplate(t *testing.T) {
	store := openStore(t)
	session, err := store.CreateSession("liver-ivc")
	require.NoError(t, err)

	_, isErr := call(t, applyTemplateHandler(store), map[string]any{"session_id": session.ID, "template": "ivc"})
	require.False(t, isErr)

	out, isErr := call(t, placeHandler(store), map[string]any{
		"session_id": session.ID, "anchor_id": "ignored", "x": 1.0, "y": 1.0, "z": 1.0,
	})
	require.False(t, isErr, out)
	assert.Equal(t, "Positioned InferiorCavaVeinRoot at 1.000,1.000,1.000, next: InferiorCavaVein", out)
}
