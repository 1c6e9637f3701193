// Package server is the HTTP/websocket transport over the game engine: it
// relays player intents into engine operations and engine state back out.
// No game rule lives here.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/sovereign-game/sovereign-server/internal/cards"
	"github.com/sovereign-game/sovereign-server/internal/game"
	"github.com/sovereign-game/sovereign-server/internal/room"
)

// ResultRecorder persists a finished game. Satisfied by
// repository.MatchRepository; nil disables recording.
type ResultRecorder interface {
	RecordResult(ctx context.Context, gameID, winner string, scores []game.Score) error
}

// Server serves the REST endpoints and websocket sessions.
type Server struct {
	rooms     *room.Manager
	catalog   *cards.Catalog
	results   ResultRecorder
	staticDir string
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]map[*session]struct{} // game id -> open sessions
	recorded map[string]bool                  // game id -> result persisted
}

// New creates the transport over an existing room registry. results may be
// nil.
func New(rooms *room.Manager, catalog *cards.Catalog, results ResultRecorder, staticDir string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		rooms:     rooms,
		catalog:   catalog,
		results:   results,
		staticDir: staticDir,
		logger:    logger,
		sessions:  make(map[string]map[*session]struct{}),
		recorded:  make(map[string]bool),
	}
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/cards", s.handleCards)
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("GET /ws/{id}", s.handleWebsocket)
	if s.staticDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
	}
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(s.staticDir, "index.html")
	if s.staticDir != "" {
		if _, err := os.Stat(index); err == nil {
			http.ServeFile(w, r, index)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": "sovereign-server"})
}

func (s *Server) handleCards(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(s.catalog.Raw())
}

type createGameRequest struct {
	Kingdom []string `json:"kingdom,omitempty"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if r.Body != nil {
		// An empty body means default kingdom selection.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	g := s.rooms.Create(req.Kingdom)
	writeJSON(w, http.StatusOK, map[string]string{"game_id": g.ID()})
}

func (s *Server) handleListGames(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.rooms.List())
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g := s.rooms.Get(r.PathValue("id"))
	if g == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
		return
	}
	writeJSON(w, http.StatusOK, g.View(r.URL.Query().Get("player_id")))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
