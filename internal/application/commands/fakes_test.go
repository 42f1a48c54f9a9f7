package commands

import (
	"context"
	"fmt"
	"time"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// memStore keeps sessions in memory and stores trees as sequences so
// loaded trees never alias the saved ones.
type memStore struct {
	sessions map[string]*domain.Session
	trees    map[string][]domain.SequenceEntry
	saves    int
}

func newMemStore(ids ...string) *memStore {
	s := &memStore{
		sessions: make(map[string]*domain.Session),
		trees:    make(map[string][]domain.SequenceEntry),
	}
	for _, id := range ids {
		s.sessions[id] = &domain.Session{ID: id, Name: "session-" + id}
	}
	return s
}

func (s *memStore) Close() error { return nil }

func (s *memStore) CreateSession(name string) (*domain.Session, error) {
	id := fmt.Sprintf("s%d", len(s.sessions)+1)
	sess := &domain.Session{ID: id, Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.sessions[id] = sess
	return sess, nil
}

func (s *memStore) GetSession(id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, &application.SessionError{SessionID: id, Reason: "not found"}
	}
	cp := *sess
	return &cp, nil
}

func (s *memStore) ListSessions() ([]domain.Session, error) {
	var out []domain.Session
	for _, sess := range s.sessions {
		out = append(out, *sess)
	}
	return out, nil
}

func (s *memStore) DeleteSession(id string) error {
	if _, ok := s.sessions[id]; !ok {
		return &application.SessionError{SessionID: id, Reason: "not found"}
	}
	delete(s.sessions, id)
	delete(s.trees, id)
	return nil
}

func (s *memStore) LoadTree(sessionID string) (*domain.BranchTree, error) {
	if _, ok := s.sessions[sessionID]; !ok {
		return nil, &application.SessionError{SessionID: sessionID, Reason: "not found"}
	}
	return domain.FromSequence(s.trees[sessionID])
}

func (s *memStore) SaveTree(sessionID string, tree *domain.BranchTree) error {
	if _, ok := s.sessions[sessionID]; !ok {
		return &application.SessionError{SessionID: sessionID, Reason: "not found"}
	}
	s.trees[sessionID] = tree.DepthFirstSequence()
	s.sessions[sessionID].NodeCount = tree.Len()
	s.saves++
	return nil
}

func (s *memStore) BeginTx() (ports.SessionTx, error) {
	return nil, fmt.Errorf("transactions not supported")
}

func (s *memStore) seed(t interface{ Fatalf(string, ...any) }, sessionID string, links [][2]domain.NodeID) {
	var seq []domain.SequenceEntry
	for i, l := range links {
		seq = append(seq, domain.SequenceEntry{
			ID:       l[1],
			Parent:   l[0],
			Position: application.NewPosition(float64(i), 0, 0),
			Placed:   true,
		})
	}
	if _, err := domain.FromSequence(seq); err != nil {
		t.Fatalf("invalid seed tree: %v", err)
	}
	s.trees[sessionID] = seq
}

func (s *memStore) ids(sessionID string) []domain.NodeID {
	var ids []domain.NodeID
	for _, e := range s.trees[sessionID] {
		ids = append(ids, e.ID)
	}
	return ids
}

type fakeExtractor struct {
	available bool
	err       error
	got       *ports.ExtractionRequest
}

func (f *fakeExtractor) IsAvailable() bool { return f.available }

func (f *fakeExtractor) Extract(ctx context.Context, req ports.ExtractionRequest) (*domain.VolumeHandle, error) {
	f.got = &req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.VolumeHandle{VolumeID: "vol-1", ModelID: "model-1"}, nil
}

type fakeExporter struct {
	name string
	tree *domain.BranchTree
}

func (f *fakeExporter) Export(name string, tree *domain.BranchTree) (*ports.ExportResult, error) {
	f.name = name
	f.tree = tree
	return &ports.ExportResult{
		FiducialPath: "/tmp/" + name + ".csv",
		MatrixPath:   "/tmp/" + name + "_matrix.csv",
		NodeCount:    tree.Len(),
	}, nil
}

type fakeImporter struct {
	tree *domain.BranchTree
	err  error
}

func (f *fakeImporter) Import(path string) (*domain.BranchTree, error) {
	return f.tree, f.err
}
