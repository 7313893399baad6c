// Package server exposes a quiz session over JSON HTTP for browser
// front ends.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/quizzical/internal/quiz"
)

const requestTimeout = 10 * time.Second

// Server serializes access to one controller. The question fetch runs
// outside the lock so reads stay responsive while loading.
type Server struct {
	mu     sync.Mutex
	ctrl   *quiz.Controller
	logger *slog.Logger
}

// New creates a Server around ctrl.
func New(ctrl *quiz.Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{ctrl: ctrl, logger: logger}
}

// Handler returns the HTTP routes. allowedOrigins feeds the CORS policy.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/session", func(r chi.Router) {
		// The fetch behind /start is bounded by the source's own timeout.
		r.Post("/start", s.startSession)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))
			r.Get("/", s.getSession)
			r.Post("/answers", s.selectAnswer)
			r.Post("/check", s.checkAnswers)
			r.Get("/questions/{index}", s.getQuestion)
		})
	})
	return r
}

func (s *Server) snapshot() quiz.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Snapshot()
}

func (s *Server) getSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newSessionDTO(s.snapshot()))
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ticket := s.ctrl.Begin()
	s.mu.Unlock()

	res := s.ctrl.Fetch(r.Context(), ticket)

	s.mu.Lock()
	applied := s.ctrl.Complete(res)
	snap := s.ctrl.Snapshot()
	s.mu.Unlock()

	switch {
	case !applied:
		writeError(w, http.StatusConflict, "session superseded by a newer start", &snap)
	case snap.State == quiz.StateIdle:
		msg := "question source unavailable"
		if res.Err != nil {
			msg = res.Err.Error()
		}
		writeError(w, http.StatusBadGateway, msg, &snap)
	default:
		writeJSON(w, http.StatusOK, newSessionDTO(snap))
	}
}

func (s *Server) selectAnswer(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	if req.Question == nil {
		writeError(w, http.StatusBadRequest, "question index is required", nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Frozen sessions, unknown indexes and answers that are not options
	// are ignored and the unchanged session is returned.
	snap := s.ctrl.Snapshot()
	switch snap.State {
	case quiz.StateIdle, quiz.StateLoading:
		writeError(w, http.StatusConflict, "session is "+snap.State.String(), &snap)
		return
	case quiz.StateResults:
		writeJSON(w, http.StatusOK, newSessionDTO(snap))
		return
	}
	i := *req.Question
	if i < 0 || i >= snap.Total() || !slices.Contains(snap.Questions[i].Answers, req.Answer) {
		writeJSON(w, http.StatusOK, newSessionDTO(snap))
		return
	}

	s.ctrl.Select(i, req.Answer)
	writeJSON(w, http.StatusOK, newSessionDTO(s.ctrl.Snapshot()))
}

func (s *Server) checkAnswers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.ctrl.State() {
	case quiz.StateActive:
		s.ctrl.Check()
	case quiz.StateResults:
	default:
		snap := s.ctrl.Snapshot()
		writeError(w, http.StatusConflict, "session is "+snap.State.String(), &snap)
		return
	}
	writeJSON(w, http.StatusOK, newSessionDTO(s.ctrl.Snapshot()))
}

func (s *Server) getQuestion(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "question index must be an integer", nil)
		return
	}

	snap := s.snapshot()
	if i < 0 || i >= snap.Total() {
		writeError(w, http.StatusNotFound, "no question "+strconv.Itoa(i), nil)
		return
	}
	writeJSON(w, http.StatusOK, newQuestionDetailDTO(snap, i))
}

// requestLogger logs one line per request through the server's logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, snap *quiz.Snapshot) {
	out := errorDTO{Error: msg}
	if snap != nil {
		dto := newSessionDTO(*snap)
		out.Session = &dto
	}
	writeJSON(w, status, out)
}

// ListenAndServe serves h on addr until ctx is done, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
