// Package server exposes the generation pipeline and history over a small
// JSON API plus an embedded single-page dashboard.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"edu_video_generator/history"
	"edu_video_generator/pipeline"
)

//go:embed web/index.html
var embeddedStatic embed.FS

// generateTimeout bounds one full pipeline run, rendering included.
const generateTimeout = 5 * time.Minute

type Server struct {
	pipe     *pipeline.Pipeline
	store    *history.Store
	logger   *log.Logger
	staticFS http.Handler

	// One generation runs at a time; concurrent submissions queue here.
	runMu sync.Mutex
}

func New(pipe *pipeline.Pipeline, store *history.Store, logger *log.Logger) (*Server, error) {
	if pipe == nil {
		return nil, errors.New("pipeline required")
	}
	if store == nil {
		return nil, errors.New("history store required")
	}
	if logger == nil {
		logger = log.Default()
	}

	sub, err := fs.Sub(embeddedStatic, "web")
	if err != nil {
		return nil, err
	}

	return &Server{
		pipe:     pipe,
		store:    store,
		logger:   logger,
		staticFS: http.FileServer(http.FS(sub)),
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/history", s.handleHistoryList)
	mux.HandleFunc("/api/history/", s.handleHistoryByID)
	mux.Handle("/", s.staticHandler())
	return s.logMiddleware(mux)
}

func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		if r.URL.Path == "/" {
			r.URL.Path = "/index.html"
		}
		s.staticFS.ServeHTTP(w, r)
	})
}

// --- Handlers ---

type generateReq struct {
	Topic      string `json:"topic"`
	SceneCount int    `json:"scene_count,omitempty"`
}

type errorResp struct {
	Error string `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONStatus(w, http.StatusBadRequest, errorResp{err.Error()})
		return
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	rec, err := s.pipe.RunScenes(ctx, req.Topic, req.SceneCount)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, pipeline.ErrEmptyTopic) {
			status = http.StatusBadRequest
		}
		writeJSONStatus(w, status, errorResp{err.Error()})
		return
	}
	writeJSON(w, rec)
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	records, err := s.store.List(r.Context())
	if err != nil {
		writeJSONStatus(w, http.StatusInternalServerError, errorResp{err.Error()})
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	writeJSON(w, records)
}

// handleHistoryByID serves /api/history/{id}, /api/history/{id}/export and
// /api/history/{id}/video.
func (s *Server) handleHistoryByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/history/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, history.ErrNotFound) {
		writeJSONStatus(w, http.StatusNotFound, errorResp{"record not found"})
		return
	}
	if err != nil {
		writeJSONStatus(w, http.StatusInternalServerError, errorResp{err.Error()})
		return
	}

	switch sub {
	case "":
		writeJSON(w, rec)
	case "export":
		if rec.ExportPath == "" {
			writeJSONStatus(w, http.StatusNotFound, errorResp{"no export bundle for this record"})
			return
		}
		w.Header().Set("Content-Disposition", "attachment; filename=\"project.zip\"")
		http.ServeFile(w, r, rec.ExportPath)
	case "video":
		if rec.VideoPath == "" {
			writeJSONStatus(w, http.StatusNotFound, errorResp{"no video for this record"})
			return
		}
		http.ServeFile(w, r, rec.VideoPath)
	default:
		http.NotFound(w, r)
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("[server] %s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}
