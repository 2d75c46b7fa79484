// Package api exposes the HTTP endpoints: auth, note creation, paginated
// list/search, downloads, and deletes.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dharsanguruparan/notevault/internal/auth"
	"github.com/dharsanguruparan/notevault/internal/config"
	"github.com/dharsanguruparan/notevault/internal/model"
	"github.com/dharsanguruparan/notevault/internal/notes"
	"github.com/dharsanguruparan/notevault/internal/pagination"
)

// Server wires configuration, the note service, and the credential service
// into an http.Server.
type Server struct {
	cfg    *config.Config
	notes  *notes.Service
	auth   *auth.Service
	logger *slog.Logger
	server *http.Server
	once   sync.Once
}

// New constructs a Server.
func New(cfg *config.Config, noteSvc *notes.Service, authSvc *auth.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:    cfg,
		notes:  noteSvc,
		auth:   authSvc,
		logger: logger,
	}
}

// Handler builds the route table. Exposed separately so tests can drive it
// through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/auth/register", s.handleRegister)
	mux.HandleFunc("/api/auth/login", s.handleLogin)
	mux.HandleFunc("/api/notes", s.handleNotes)
	mux.HandleFunc("/api/notes/", s.handleNoteRoute)
	return corsMiddleware(s.loggingMiddleware(mux))
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.once.Do(func() {
		s.server = &http.Server{
			Addr:    s.cfg.Address,
			Handler: s.Handler(),
		}
	})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()
	s.logger.Info("api listening", "address", s.cfg.Address)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if r.PostFormValue("password") != r.PostFormValue("confirm_password") {
		http.Error(w, "passwords do not match", http.StatusBadRequest)
		return
	}
	err := s.auth.Register(r.Context(),
		r.PostFormValue("username"), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "user registered"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	user, err := s.auth.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "login successful", "username": user.Username})
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreate(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleNoteRoute(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/notes/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	switch {
	case parts[0] == "user" && len(parts) == 2:
		s.handleListSearch(w, r, parts[1])
	case parts[0] == "file" && len(parts) == 2:
		s.handleDownload(w, r, parts[1])
	case len(parts) == 1:
		s.handleDelete(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

// handleCreate accepts multipart forms (file notes) as well as urlencoded
// forms (text notes).
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxFileSize+1024)
	in := notes.CreateInput{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "bad multipart form", http.StatusBadRequest)
			return
		}
		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			in.File = &notes.Upload{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Content:     file,
			}
		}
	} else if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	in.Username = r.PostFormValue("username")
	in.NoteType = r.PostFormValue("note_type")
	in.Title = r.PostFormValue("title")
	in.Content = r.PostFormValue("content")

	note, err := s.notes.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := map[string]string{"message": "note saved", "note_id": note.ID}
	if note.FileID != "" {
		resp["file_id"] = note.FileID
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSearch(w http.ResponseWriter, r *http.Request, username string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	params := pagination.FromQuery(q.Get("page"), q.Get("per_page"), q.Get("sort"))
	page, err := s.notes.Search(r.Context(), username, q.Get("q"), params)
	if err != nil {
		s.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request, fileID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	dl, err := s.notes.Download(r.Context(), fileID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", dl.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(dl.Data)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, noteID string) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	removed, err := s.notes.Delete(r.Context(), noteID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !removed {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "note deleted"})
}

// writeError maps the error taxonomy onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidID),
		errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrMissingFile):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrUnknownUser):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrUserExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrBadCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, model.ErrStorageWrite):
		s.logger.Error("storage write failed", "error", err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
	default:
		s.logger.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
