package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"skyland/internal/config"
	"skyland/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	cfg  config.APIConfig
	log  *slog.Logger
	game *game.Service
	mux  *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, gameSvc *game.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:  cfg,
		log:  logger,
		game: gameSvc,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleSessionState)
			r.Put("/allocations", s.handleApplyAllocation)
			r.Post("/advance", s.handleAdvanceDay)
			r.Post("/cards/{instance_id}/accept", s.handleAcceptCard)
			r.Post("/cards/{instance_id}/decline", s.handleDeclineCard)
			r.Get("/achievements", s.handleAchievements)
			r.Get("/level", s.handleLevel)
			r.Get("/history", s.handleHistory)
			r.Post("/debug/cards/{card_id}", s.handleTriggerCard)
		})
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.game.Engine().Catalog())
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Mode        string `json:"mode"`
		AutoAdvance bool   `json:"auto_advance"`
	}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	mode := game.ModeNormal
	switch strings.ToLower(strings.TrimSpace(in.Mode)) {
	case "", "normal":
	case "chaos":
		mode = game.ModeChaos
	default:
		writeError(w, http.StatusBadRequest, "mode must be normal or chaos")
		return
	}
	sess, err := s.game.CreateSession(r.Context(), mode, in.AutoAdvance)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	sess, err := s.game.Session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleApplyAllocation(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Allocations []game.AllocationInput `json:"allocations"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.game.ApplyAllocation(r.Context(), chi.URLParam(r, "id"), in.Allocations)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAdvanceDay(w http.ResponseWriter, r *http.Request) {
	out, err := s.game.AdvanceDay(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAcceptCard(w http.ResponseWriter, r *http.Request) {
	sess, err := s.game.AcceptCard(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "instance_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": game.StatusActive, "state": sess.State})
}

func (s *Server) handleDeclineCard(w http.ResponseWriter, r *http.Request) {
	sess, status, err := s.game.DeclineCard(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "instance_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": status, "state": sess.State})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	out, err := s.game.Achievements(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	out, err := s.game.LevelProgress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess, err := s.game.Session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": sess.State.History})
}

func (s *Server) handleTriggerCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.game.TriggerCard(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "card_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrAllocationUnbalanced), errors.Is(err, game.ErrUnknownAsset):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrCardNotFound), errors.Is(err, game.ErrUnknownCatalogID):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
