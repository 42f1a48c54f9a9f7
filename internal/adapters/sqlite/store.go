package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

const schemaVersion = "1"

// Store implements ports.SessionStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
	log    zerolog.Logger
}

// Ensure Store implements SessionStore
var _ ports.SessionStore = (*Store)(nil)

// NewStore creates a new SQLite session store
func NewStore(log zerolog.Logger) *Store {
	return &Store{log: log}
}

// Open opens or creates the session database at dbPath
func (s *Store) Open(dbPath string) error {
	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	s.dbPath = dbPath

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Pragmas + schema in a single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			node_count INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS nodes (
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			id TEXT NOT NULL,
			parent_id TEXT NOT NULL DEFAULT '',
			ordinal INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			z REAL NOT NULL,
			locked INTEGER NOT NULL DEFAULT 0,
			placed INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (session_id, id)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_nodes_order ON nodes(session_id, ordinal);
		CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	s.log.Debug().Str("path", dbPath).Msg("session store opened")
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SchemaVersion returns the schema version recorded in the database
func (s *Store) SchemaVersion() string {
	var version string
	s.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	return version
}

// CreateSession inserts an empty session with a fresh uuid
func (s *Store) CreateSession(name string) (*domain.Session, error) {
	now := time.Now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.Exec(`
		INSERT INTO sessions (id, name, created_at, updated_at, node_count)
		VALUES (?, ?, ?, ?, 0)
	`, sess.ID, sess.Name, now.UnixNano(), now.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	s.log.Info().Str("session", sess.ID).Str("name", name).Msg("session created")
	return sess, nil
}

// GetSession retrieves a session by id
func (s *Store) GetSession(id string) (*domain.Session, error) {
	row := s.db.QueryRow(`
		SELECT id, name, created_at, updated_at, node_count
		FROM sessions WHERE id = ?
	`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &application.SessionError{SessionID: id, Reason: "not found"}
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// ListSessions returns all sessions, most recently edited first
func (s *Store) ListSessions() ([]domain.Session, error) {
	rows, err := s.db.Query(`
		SELECT id, name, created_at, updated_at, node_count
		FROM sessions ORDER BY updated_at DESC, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session and its nodes
func (s *Store) DeleteSession(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM nodes WHERE session_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &application.SessionError{SessionID: id, Reason: "not found"}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.log.Info().Str("session", id).Msg("session deleted")
	return nil
}

// BeginTx starts a transaction for batch updates
func (s *Store) BeginTx() (ports.SessionTx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	return &sessionTx{tx: tx}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		sess             domain.Session
		created, updated int64
	)
	if err := row.Scan(&sess.ID, &sess.Name, &created, &updated, &sess.NodeCount); err != nil {
		return nil, err
	}
	sess.CreatedAt = time.Unix(0, created).UTC()
	sess.UpdatedAt = time.Unix(0, updated).UTC()
	return &sess, nil
}
