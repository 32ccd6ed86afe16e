package store

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/voicenotes/scribe/internal/errors"
)

// Store is the persistence surface consumed by the API handlers and the
// pipeline orchestrator.
type Store interface {
	CreateEmptySession(ctx context.Context) (int64, error)
	GetSession(ctx context.Context, id int64) (*AudioSession, error)
	ListSessions(ctx context.Context) ([]AudioSession, error)
	SearchOutputs(ctx context.Context, searchText string) ([]AudioSession, error)
	SaveRunResult(ctx context.Context, sessionID int64, meta SessionMetadata, transcription, notes string) error
}

type gormStore struct {
	db *gorm.DB
}

// New wraps a GORM connection in the Store interface.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Migrate creates or updates the sessions and outputs tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&AudioSession{}, &Output{})
}

func (s *gormStore) CreateEmptySession(ctx context.Context) (int64, error) {
	session := AudioSession{}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return 0, errors.NewPersistenceError("failed to create audio session", err)
	}
	return session.ID, nil
}

func (s *gormStore) GetSession(ctx context.Context, id int64) (*AudioSession, error) {
	var session AudioSession
	err := s.db.WithContext(ctx).Preload("Output").First(&session, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.NewNotFoundError(
			fmt.Sprintf("audio session with id %d not found", id),
			"SESSION_NOT_FOUND",
			"Create a session via /api/audio-sessions/new first.",
		)
	}
	if err != nil {
		return nil, errors.NewPersistenceError("failed to load audio session", err)
	}
	return &session, nil
}

func (s *gormStore) ListSessions(ctx context.Context) ([]AudioSession, error) {
	var sessions []AudioSession
	if err := s.db.WithContext(ctx).Order("id").Find(&sessions).Error; err != nil {
		return nil, errors.NewPersistenceError("failed to list audio sessions", err)
	}
	return sessions, nil
}

// SearchOutputs returns sessions whose output text contains searchText,
// case-insensitively, ranked by the number of matching fields and then by
// session recency.
func (s *gormStore) SearchOutputs(ctx context.Context, searchText string) ([]AudioSession, error) {
	pattern := "%" + searchText + "%"

	rank := clause.Expr{
		SQL: "(CASE WHEN outputs.transcription_text ILIKE ? THEN 1 ELSE 0 END + " +
			"CASE WHEN outputs.notes_text ILIKE ? THEN 1 ELSE 0 END) DESC, audio_sessions.created_time DESC",
		Vars:               []interface{}{pattern, pattern},
		WithoutParentheses: true,
	}

	var sessions []AudioSession
	err := s.db.WithContext(ctx).
		Joins("JOIN outputs ON outputs.audio_session_id = audio_sessions.id").
		Where("outputs.transcription_text ILIKE ? OR outputs.notes_text ILIKE ?", pattern, pattern).
		Order(clause.OrderBy{Expression: rank}).
		Preload("Output").
		Find(&sessions).Error
	if err != nil {
		return nil, errors.NewPersistenceError("failed to search outputs", err)
	}
	return sessions, nil
}

// SaveRunResult records a completed pipeline run: the session's query
// metadata is updated and the output row is created or overwritten, all in
// one transaction. created_time is never touched.
func (s *gormStore) SaveRunResult(ctx context.Context, sessionID int64, meta SessionMetadata, transcription, notes string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&AudioSession{}).Where("id = ?", sessionID).Updates(map[string]interface{}{
			"session_name":     meta.Name,
			"query_file":       meta.File,
			"query_lang":       meta.Lang,
			"query_prompt":     meta.Prompt,
			"query_audio_kind": meta.AudioKind,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var output Output
		err := tx.Where("audio_session_id = ?", sessionID).First(&output).Error
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			output = Output{
				TranscriptionText: transcription,
				NotesText:         notes,
				AudioSessionID:    sessionID,
			}
			return tx.Create(&output).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&output).Updates(map[string]interface{}{
			"transcription_text": transcription,
			"notes_text":         notes,
		}).Error
	})

	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NewNotFoundError(
			fmt.Sprintf("audio session with id %d not found", sessionID),
			"SESSION_NOT_FOUND",
			"Create a session via /api/audio-sessions/new first.",
		)
	}
	if err != nil {
		return errors.NewPersistenceError("failed to save pipeline output", err)
	}
	return nil
}
