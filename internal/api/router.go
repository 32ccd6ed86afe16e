package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// Routes mounts every API endpoint on r. The caller decides whether r is
// wrapped in the auth middleware.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/transcribe-and-generate-notes", s.HandleTranscribeAndGenerateNotes)
	r.Post("/api/transcribe-audio", s.HandleTranscribeAudio)
	r.Post("/api/notes-from-transcription-text", s.HandleNotesFromTranscription)
	r.Get("/api/audio-sessions/new", s.HandleNewSession)
	r.Get("/api/audio-sessions/", s.HandleListSessions)
	r.Get("/api/audio-sessions/{id}/", s.HandleGetSession)
	r.Get("/api/outputs/search", s.HandleSearchOutputs)
}

// SPAHandler serves the built frontend from dist, falling back to index.html
// so client-side routes survive a page reload.
func SPAHandler(dist string) http.Handler {
	fileServer := http.FileServer(http.Dir(dist))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dist, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dist, "index.html"))
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}
