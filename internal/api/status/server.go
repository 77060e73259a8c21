// Package status serves a small read-only JSON view of the tuning daemon.
package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/accuracy"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

// Source is what the API reads from. *service.TuningService satisfies it.
type Source interface {
	Running() bool
	LastSummary() *accuracy.Summary
	SeasonLabels() []string
}

type Server struct {
	server *http.Server
}

func NewServer(addr string, src Source) *Server {
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(src, render.New(render.Options{IndentJSON: true})),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// ListenAndServe blocks until ctx is cancelled, then shuts the server down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Status API listening", "addr", s.server.Addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func NewRouter(src Source, rnd *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", healthHandler(rnd))
	r.Get("/status", statusHandler(src, rnd))
	r.Get("/best/{horizon}", bestHandler(src, rnd))

	return r
}

type statusResponse struct {
	Running bool              `json:"running"`
	Seasons []string          `json:"seasons"`
	Summary *accuracy.Summary `json:"summary,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func healthHandler(rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		rnd.Text(w, http.StatusOK, "ok")
	}
}

func statusHandler(src Source, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		rnd.JSON(w, http.StatusOK, statusResponse{
			Running: src.Running(),
			Seasons: src.SeasonLabels(),
			Summary: src.LastSummary(),
		})
	}
}

func bestHandler(src Source, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := params.ParseHorizon(chi.URLParam(r, "horizon"))
		if err != nil {
			rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		sum := src.LastSummary()
		if sum == nil {
			rnd.JSON(w, http.StatusNotFound, errorResponse{Error: "no sweep has finished yet"})
			return
		}
		best, ok := sum.Best[h]
		if !ok {
			rnd.JSON(w, http.StatusNotFound, errorResponse{Error: "no valid result for " + string(h)})
			return
		}
		rnd.JSON(w, http.StatusOK, best)
	}
}
