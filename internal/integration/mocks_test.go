package integration

import (
	"context"
	"sort"
	"time"

	"github.com/voicenotes/scribe/internal/errors"
	"github.com/voicenotes/scribe/internal/store"
)

// memStore is an in-memory Store used to exercise the full router without a
// database.
type memStore struct {
	sessions map[int64]*store.AudioSession
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[int64]*store.AudioSession)}
}

func (m *memStore) CreateEmptySession(ctx context.Context) (int64, error) {
	m.nextID++
	m.sessions[m.nextID] = &store.AudioSession{ID: m.nextID, CreatedTime: time.Now()}
	return m.nextID, nil
}

func (m *memStore) GetSession(ctx context.Context, id int64) (*store.AudioSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("audio session not found", "SESSION_NOT_FOUND", "")
	}
	copied := *s
	return &copied, nil
}

func (m *memStore) ListSessions(ctx context.Context) ([]store.AudioSession, error) {
	ids := make([]int64, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]store.AudioSession, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.sessions[id])
	}
	return out, nil
}

func (m *memStore) SearchOutputs(ctx context.Context, searchText string) ([]store.AudioSession, error) {
	return nil, nil
}

func (m *memStore) SaveRunResult(ctx context.Context, sessionID int64, meta store.SessionMetadata, transcriptionText, notesText string) error {
	s, ok := m.sessions[sessionID]
	if !ok {
		return errors.NewNotFoundError("audio session not found", "SESSION_NOT_FOUND", "")
	}
	s.SessionName = meta.Name
	s.QueryFile = meta.File
	s.QueryLang = meta.Lang
	s.QueryPrompt = meta.Prompt
	s.QueryAudioKind = meta.AudioKind
	if s.Output == nil {
		s.Output = &store.Output{ID: sessionID, CreatedTime: time.Now(), AudioSessionID: sessionID}
	}
	s.Output.TranscriptionText = transcriptionText
	s.Output.NotesText = notesText
	return nil
}
