package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/voicenotes/scribe/internal/config"
	"github.com/voicenotes/scribe/internal/errors"
	"github.com/voicenotes/scribe/internal/logger"
	"github.com/voicenotes/scribe/internal/pipeline"
	"github.com/voicenotes/scribe/internal/services/notes"
	"github.com/voicenotes/scribe/internal/services/transcription"
	"github.com/voicenotes/scribe/internal/store"
	"github.com/voicenotes/scribe/internal/validation"
)

// Defaults recorded when the client omits the corresponding query parameter.
const (
	defaultSessionName = "default-session-name"
	defaultQueryLang   = "default-query-lang"
	defaultQueryPrompt = "default-query-prompt"
	defaultAudioKind   = "default-query-audio-kind"
)

type Server struct {
	cfg  *config.Config
	st   store.Store
	runs *pipeline.Orchestrator
	log  *slog.Logger
}

func NewServer(cfg *config.Config, st store.Store, runs *pipeline.Orchestrator, log *slog.Logger) *Server {
	return &Server{cfg: cfg, st: st, runs: runs, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	appErr := errors.AsAppError(err)
	writeJSON(w, appErr.StatusCode, map[string]*errors.AppError{"error": appErr})
}

// OutputRead mirrors one outputs row.
type OutputRead struct {
	ID                int64     `json:"id"`
	CreatedTime       time.Time `json:"created_time"`
	TranscriptionText string    `json:"transcription_text"`
	NotesText         string    `json:"notes_text"`
	AudioSessionID    int64     `json:"audio_session_id"`
}

// SessionSummary is a session without its output body.
type SessionSummary struct {
	ID             int64     `json:"id"`
	SessionName    string    `json:"session_name"`
	CreatedTime    time.Time `json:"created_time"`
	QueryLang      string    `json:"query_lang"`
	QueryFile      string    `json:"query_file"`
	QueryPrompt    string    `json:"query_prompt"`
	QueryAudioKind string    `json:"query_audio_kind"`
}

// SessionDetail is a session with its output nested, null when no run has
// completed yet.
type SessionDetail struct {
	SessionSummary
	Output *OutputRead `json:"output"`
}

func toSummary(s store.AudioSession) SessionSummary {
	return SessionSummary{
		ID:             s.ID,
		SessionName:    s.SessionName,
		CreatedTime:    s.CreatedTime,
		QueryLang:      s.QueryLang,
		QueryFile:      s.QueryFile,
		QueryPrompt:    s.QueryPrompt,
		QueryAudioKind: s.QueryAudioKind,
	}
}

func toDetail(s store.AudioSession) SessionDetail {
	detail := SessionDetail{SessionSummary: toSummary(s)}
	if s.Output != nil {
		detail.Output = &OutputRead{
			ID:                s.Output.ID,
			CreatedTime:       s.Output.CreatedTime,
			TranscriptionText: s.Output.TranscriptionText,
			NotesText:         s.Output.NotesText,
			AudioSessionID:    s.Output.AudioSessionID,
		}
	}
	return detail
}

func queryOrDefault(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}

// saveUpload writes the multipart file under the upload directory with a
// UUID-prefixed name so concurrent uploads of the same filename never collide.
func (s *Server) saveUpload(r *http.Request) (storedPath, clientName string, err error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", errors.NewValidationError(
			"multipart form field 'file' is missing",
			"UPLOAD_FILE_MISSING",
			"Send the audio as a multipart form file named 'file'.",
		)
	}
	defer file.Close()

	if err := validation.ValidateUpload(header.Filename, header.Size, s.cfg.Pipeline.MaxUploadBytes); err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(s.cfg.Pipeline.UploadDir, 0o755); err != nil {
		return "", "", errors.NewPersistenceError("failed to create upload directory", err)
	}

	storedPath = filepath.Join(s.cfg.Pipeline.UploadDir, uuid.New().String()+"_"+filepath.Base(header.Filename))
	dst, err := os.Create(storedPath)
	if err != nil {
		return "", "", errors.NewPersistenceError("failed to create upload file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(storedPath)
		return "", "", errors.NewPersistenceError("failed to write upload file", err)
	}
	return storedPath, header.Filename, nil
}

// HandleTranscribeAndGenerateNotes runs the full pipeline for an existing
// session and returns both texts.
func (s *Server) HandleTranscribeAndGenerateNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sessionID, err := strconv.ParseInt(q.Get("session_id"), 10, 64)
	if err != nil {
		writeError(w, errors.NewValidationError(
			"session_id must be an integer",
			"SESSION_ID_INVALID",
			"Create a session via GET /api/audio-sessions/new first.",
		))
		return
	}

	transcriptionMethod, err := transcription.ParseProviderType(
		queryOrDefault(r, "transcription_method", s.cfg.Pipeline.TranscriptionDefault))
	if err != nil {
		writeError(w, err)
		return
	}
	notesMethod, err := notes.ParseProviderType(
		queryOrDefault(r, "notes_method", s.cfg.Pipeline.NotesDefault))
	if err != nil {
		writeError(w, err)
		return
	}

	if s.cfg.Pipeline.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Pipeline.MaxUploadBytes)
	}
	storedPath, clientName, err := s.saveUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	meta := store.SessionMetadata{
		Name:      queryOrDefault(r, "session_name", defaultSessionName),
		File:      clientName,
		Lang:      queryOrDefault(r, "query_lang", defaultQueryLang),
		Prompt:    queryOrDefault(r, "query_prompt", defaultQueryPrompt),
		AudioKind: queryOrDefault(r, "query_audio_kind", defaultAudioKind),
	}

	result, err := s.runs.Run(r.Context(), pipeline.RunParams{
		SessionID:           sessionID,
		AudioPath:           storedPath,
		Meta:                meta,
		TranscriptionMethod: transcriptionMethod,
		NotesMethod:         notesMethod,
	})
	if err != nil {
		s.log.ErrorContext(r.Context(), "pipeline run failed",
			slog.Int64("session_id", sessionID),
			slog.String("error", err.Error()),
			logger.WithTraceContext(r.Context()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"transcription": result.Transcription,
		"notes":         result.Notes,
	})
}

// HandleTranscribeAudio runs the transcription stage alone. Useful for
// checking a provider locally; nothing is persisted.
func (s *Server) HandleTranscribeAudio(w http.ResponseWriter, r *http.Request) {
	method, err := transcription.ParseProviderType(
		queryOrDefault(r, "transcription_method", s.cfg.Pipeline.TranscriptionDefault))
	if err != nil {
		writeError(w, err)
		return
	}

	if s.cfg.Pipeline.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Pipeline.MaxUploadBytes)
	}
	storedPath, _, err := s.saveUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer os.Remove(storedPath)

	text, err := s.runs.Transcribe(r.Context(), method, transcription.Request{
		AudioPath: storedPath,
		Language:  r.URL.Query().Get("query_lang"),
		Prompt:    r.URL.Query().Get("query_prompt"),
		AudioKind: r.URL.Query().Get("query_audio_kind"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"transcription": text})
}

type notesRequest struct {
	TranscriptionText string `json:"transcription_text"`
}

// HandleNotesFromTranscription runs the notes stage alone on caller-supplied
// text; nothing is persisted.
func (s *Server) HandleNotesFromTranscription(w http.ResponseWriter, r *http.Request) {
	method, err := notes.ParseProviderType(
		queryOrDefault(r, "notes_method", s.cfg.Pipeline.NotesDefault))
	if err != nil {
		writeError(w, err)
		return
	}

	var req notesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewValidationError(
			"invalid request body",
			"REQUEST_BODY_INVALID",
			"Send JSON with a transcription_text field.",
		))
		return
	}
	if req.TranscriptionText == "" {
		writeError(w, errors.NewValidationError(
			"transcription_text is required",
			"TRANSCRIPTION_TEXT_MISSING",
			"Send JSON with a non-empty transcription_text field.",
		))
		return
	}

	text, err := s.runs.GenerateNotes(r.Context(), method, req.TranscriptionText, r.URL.Query().Get("query_prompt"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"notes": text})
}

// HandleNewSession creates an empty session and returns its integer id.
func (s *Server) HandleNewSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.st.CreateEmptySession(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, id)
}

// HandleListSessions returns all sessions, oldest first, without outputs.
func (s *Server) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.st.ListSessions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, toSummary(session))
	}
	writeJSON(w, http.StatusOK, summaries)
}

// HandleGetSession returns one session with its output nested.
func (s *Server) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, errors.NewValidationError(
			"session id must be an integer",
			"SESSION_ID_INVALID",
			"",
		))
		return
	}

	session, err := s.st.GetSession(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDetail(*session))
}

// HandleSearchOutputs returns sessions whose output matches the search text,
// most relevant first.
func (s *Server) HandleSearchOutputs(w http.ResponseWriter, r *http.Request) {
	searchText := strings.TrimSpace(r.URL.Query().Get("search_text"))
	if searchText == "" {
		writeError(w, errors.NewValidationError(
			"search_text is required",
			"SEARCH_TEXT_MISSING",
			"Pass the query as ?search_text=...",
		))
		return
	}

	sessions, err := s.st.SearchOutputs(r.Context(), searchText)
	if err != nil {
		writeError(w, err)
		return
	}

	details := make([]SessionDetail, 0, len(sessions))
	for _, session := range sessions {
		details = append(details, toDetail(session))
	}
	writeJSON(w, http.StatusOK, details)
}
