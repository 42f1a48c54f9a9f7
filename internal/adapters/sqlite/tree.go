package sqlite

import (
	"fmt"

	"vesselx/internal/domain"
)

// LoadTree rebuilds the tree of a session from its stored depth-first sequence
func (s *Store) LoadTree(sessionID string) (*domain.BranchTree, error) {
	if _, err := s.GetSession(sessionID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, parent_id, x, y, z, locked, placed
		FROM nodes WHERE session_id = ?
		ORDER BY ordinal
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seq []domain.SequenceEntry
	for rows.Next() {
		var e domain.SequenceEntry
		if err := rows.Scan(&e.ID, &e.Parent, &e.Position.X, &e.Position.Y, &e.Position.Z, &e.Locked, &e.Placed); err != nil {
			return nil, err
		}
		seq = append(seq, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tree, err := domain.FromSequence(seq)
	if err != nil {
		return nil, fmt.Errorf("stored tree for %s is corrupt: %w", sessionID, err)
	}
	return tree, nil
}

// SaveTree replaces the stored tree of a session in one transaction
func (s *Store) SaveTree(sessionID string, tree *domain.BranchTree) error {
	if _, err := s.GetSession(sessionID); err != nil {
		return err
	}

	tx, err := s.BeginTx()
	if err != nil {
		return err
	}

	seq := tree.DepthFirstSequence()
	if err := tx.ReplaceNodes(sessionID, seq); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to write nodes: %w", err)
	}
	if err := tx.TouchSession(sessionID, len(seq)); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.log.Debug().Str("session", sessionID).Int("nodes", len(seq)).Msg("tree saved")
	return nil
}
