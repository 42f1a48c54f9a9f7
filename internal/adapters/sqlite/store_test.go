package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vesselx/internal/application"
	"vesselx/internal/domain"
)

func openTestStore(t testing.TB) *Store {
	t.Helper()
	s := NewStore(zerolog.Nop())
	require.NoError(t, s.Open(filepath.Join(t.TempDir(), "sessions", "vesselx.db")))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Open(t *testing.T) {
	s := openTestStore(t)
	assert.Equal(t, schemaVersion, s.SchemaVersion())
}

func TestStore_SessionLifecycle(t *testing.T) {
	s := openTestStore(t)

	created, err := s.CreateSession("portal-patient-07")
	require.NoError(t, err)
	assert.Len(t, created.ID, 36)

	got, err := s.GetSession(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "portal-patient-07", got.Name)
	assert.Equal(t, 0, got.NodeCount)
	assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, 0)

	_, err = s.CreateSession("ivc-patient-07")
	require.NoError(t, err)
	sessions, err := s.ListSessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	require.NoError(t, s.DeleteSession(created.ID))
	_, err = s.GetSession(created.ID)
	assert.ErrorIs(t, err, application.ErrSessionNotFound)
	assert.ErrorIs(t, s.DeleteSession(created.ID), application.ErrSessionNotFound)
}

func TestStore_SaveAndLoadTree(t *testing.T) {
	s := openTestStore(t)
	sess, err := s.CreateSession("portal")
	require.NoError(t, err)

	tree := domain.NewBranchTree()
	root, err := tree.AddRoot(domain.Position{X: 1, Y: 2, Z: 3})
	require.NoError(t, err)
	a, err := tree.AddChild(root, domain.Position{X: 4, Y: 5, Z: 6})
	require.NoError(t, err)
	b, err := tree.AddChild(root, domain.Position{X: 7, Y: 8, Z: 9})
	require.NoError(t, err)
	_, err = tree.AddChild(a, domain.Position{X: 10, Y: 11, Z: 12})
	require.NoError(t, err)
	require.NoError(t, tree.SetLocked(b, true))
	require.NoError(t, tree.ReorderChild(root, b, 0))

	require.NoError(t, s.SaveTree(sess.ID, tree))

	loaded, err := s.LoadTree(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, tree.DepthFirstSequence(), loaded.DepthFirstSequence())

	children, err := loaded.Children(root)
	require.NoError(t, err)
	assert.Equal(t, []domain.NodeID{b, a}, children, "sibling order must survive storage")

	got, err := s.GetSession(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.NodeCount)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestStore_SaveTreeReplacesPrevious(t *testing.T) {
	s := openTestStore(t)
	sess, err := s.CreateSession("portal")
	require.NoError(t, err)

	tree := domain.NewBranchTree()
	root, _ := tree.AddRoot(domain.Position{})
	child, _ := tree.AddChild(root, domain.Position{X: 1})
	require.NoError(t, s.SaveTree(sess.ID, tree))

	require.NoError(t, tree.DeleteNode(child))
	require.NoError(t, s.SaveTree(sess.ID, tree))

	loaded, err := s.LoadTree(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
}

func TestStore_TemplateNodesStayUnplaced(t *testing.T) {
	s := openTestStore(t)
	sess, err := s.CreateSession("ivc")
	require.NoError(t, err)

	tree := domain.NewBranchTree()
	require.NoError(t, domain.ApplyTemplate(tree, domain.InferiorCavaVeinTemplate))
	require.NoError(t, tree.SetPosition(domain.InferiorCavaRoot, domain.Position{X: 1}))
	require.NoError(t, s.SaveTree(sess.ID, tree))

	loaded, err := s.LoadTree(sess.ID)
	require.NoError(t, err)
	next, ok := domain.NextUnplaced(loaded)
	assert.True(t, ok)
	assert.Equal(t, domain.InferiorCavaVein, next)
}

func TestStore_UnknownSession(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadTree("missing")
	assert.ErrorIs(t, err, application.ErrSessionNotFound)

	err = s.SaveTree("missing", domain.NewBranchTree())
	assert.ErrorIs(t, err, application.ErrSessionNotFound)
}

func TestStore_EmptySessionLoadsEmptyTree(t *testing.T) {
	s := openTestStore(t)
	sess, err := s.CreateSession("empty")
	require.NoError(t, err)

	tree, err := s.LoadTree(sess.ID)
	require.NoError(t, err)
	assert.True(t, tree.IsEmpty())
}

func TestStore_TxRollback(t *testing.T) {
	s := openTestStore(t)
	sess, err := s.CreateSession("rollback")
	require.NoError(t, err)

	tx, err := s.BeginTx()
	require.NoError(t, err)
	require.NoError(t, tx.ReplaceNodes(sess.ID, []domain.SequenceEntry{{ID: "R", Placed: true}}))
	require.NoError(t, tx.Rollback())

	tree, err := s.LoadTree(sess.ID)
	require.NoError(t, err)
	assert.True(t, tree.IsEmpty())
}
