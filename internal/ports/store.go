package ports

import "vesselx/internal/domain"

// SessionStore persists segmentation sessions and their branch trees.
// A tree is always saved whole so a failed edit never leaves a partial tree behind.
type SessionStore interface {
	// Lifecycle
	Close() error

	// Session operations
	CreateSession(name string) (*domain.Session, error)
	GetSession(id string) (*domain.Session, error)
	ListSessions() ([]domain.Session, error)
	DeleteSession(id string) error

	// Tree operations
	LoadTree(sessionID string) (*domain.BranchTree, error)
	SaveTree(sessionID string, tree *domain.BranchTree) error

	// Batch updates
	BeginTx() (SessionTx, error)
}

// SessionTx represents a transaction for atomic tree replacement
type SessionTx interface {
	ReplaceNodes(sessionID string, seq []domain.SequenceEntry) error
	TouchSession(sessionID string, nodeCount int) error

	// Transaction control
	Commit() error
	Rollback() error
}
