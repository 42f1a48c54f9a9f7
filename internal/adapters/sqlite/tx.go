package sqlite

import (
	"database/sql"
	"time"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// sessionTx implements ports.SessionTx
type sessionTx struct {
	tx *sql.Tx
}

// Ensure sessionTx implements SessionTx
var _ ports.SessionTx = (*sessionTx)(nil)

// ReplaceNodes deletes the stored nodes of a session and inserts seq in order
func (t *sessionTx) ReplaceNodes(sessionID string, seq []domain.SequenceEntry) error {
	if _, err := t.tx.Exec(`DELETE FROM nodes WHERE session_id = ?`, sessionID); err != nil {
		return err
	}

	stmt, err := t.tx.Prepare(`
		INSERT INTO nodes (session_id, id, parent_id, ordinal, x, y, z, locked, placed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range seq {
		_, err := stmt.Exec(sessionID, string(e.ID), string(e.Parent), i,
			e.Position.X, e.Position.Y, e.Position.Z, e.Locked, e.Placed)
		if err != nil {
			return err
		}
	}
	return nil
}

// TouchSession records the node count and bumps the update time
func (t *sessionTx) TouchSession(sessionID string, nodeCount int) error {
	res, err := t.tx.Exec(`
		UPDATE sessions SET updated_at = ?, node_count = ? WHERE id = ?
	`, time.Now().UTC().UnixNano(), nodeCount, sessionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &application.SessionError{SessionID: sessionID, Reason: "not found"}
	}
	return nil
}

// Commit commits the transaction
func (t *sessionTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *sessionTx) Rollback() error {
	return t.tx.Rollback()
}
