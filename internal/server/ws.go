package server

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sovereign-game/sovereign-server/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// session is one websocket connection bound to a room and, after a join
// message, to a player.
type session struct {
	conn     *websocket.Conn
	gameID   string
	playerID string
	writeMu  sync.Mutex
}

func (c *session) send(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

// wsRequest is the client → server message envelope. Fields beyond Action
// are intent-specific.
type wsRequest struct {
	Action    string                `json:"action"`
	Name      string                `json:"name,omitempty"`
	PlayerID  string                `json:"player_id,omitempty"`
	CardID    string                `json:"card_id,omitempty"`
	CardIDs   []string              `json:"card_ids,omitempty"`
	Play      bool                  `json:"play,omitempty"`
	Decisions []game.RevealDecision `json:"decisions,omitempty"`
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	g := s.rooms.Get(r.PathValue("id"))
	if g == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &session{conn: conn, gameID: g.ID()}
	defer s.closeSession(c, g)

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		s.dispatch(c, g, &req)
	}
}

func (s *Server) dispatch(c *session, g *game.Game, req *wsRequest) {
	switch req.Action {
	case "join":
		s.handleJoin(c, g, req)
		return
	case "start":
		if c.playerID == "" {
			s.sendError(c, "join the game first")
			return
		}
		if err := g.Start(); err != nil {
			s.sendError(c, err.Error())
			return
		}
		s.broadcast(g)
		return
	}

	if c.playerID == "" {
		s.sendError(c, "join the game first")
		return
	}

	var err error
	switch req.Action {
	case "play_action":
		_, err = g.PlayAction(c.playerID, req.CardID)
	case "play_treasure":
		_, err = g.PlayTreasure(c.playerID, req.CardID)
	case "play_all_treasures":
		_, err = g.PlayAllTreasures(c.playerID)
	case "buy":
		_, err = g.BuyCard(c.playerID, req.CardID)
	case "skip_action":
		err = g.SkipAction(c.playerID)
	case "end_turn":
		err = g.EndTurn(c.playerID)
	case "discard_selection":
		_, err = g.SubmitDiscardSelection(c.playerID, req.CardIDs)
	case "gain_selection":
		_, err = g.SubmitGainSelection(c.playerID, req.CardID)
	case "trash_selection":
		_, err = g.SubmitTrashSelection(c.playerID, req.CardIDs)
	case "topdeck_selection":
		err = g.SubmitTopdeckSelection(c.playerID, req.CardID)
	case "replay_decision":
		_, err = g.SubmitReplayDecision(c.playerID, req.Play)
	case "reveal_decision":
		err = g.SubmitRevealDecision(c.playerID, req.Decisions)
	default:
		s.sendError(c, "unknown action")
		return
	}

	if err != nil {
		s.sendError(c, err.Error())
		return
	}

	s.broadcast(g)
	s.maybeRecordResult(g)
}

func (s *Server) handleJoin(c *session, g *game.Game, req *wsRequest) {
	name := req.Name
	if name == "" {
		name = "Player"
	}

	playerID := req.PlayerID
	if playerID == "" || !g.HasPlayer(playerID) {
		playerID = strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}

	if _, err := g.AddPlayer(playerID, name); err != nil {
		s.sendError(c, err.Error())
		return
	}

	c.playerID = playerID
	s.register(c)

	_ = c.send(map[string]string{
		"type":      "joined",
		"player_id": playerID,
		"game_id":   g.ID(),
	})
	s.broadcast(g)
}

func (s *Server) register(c *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[c.gameID] == nil {
		s.sessions[c.gameID] = make(map[*session]struct{})
	}
	s.sessions[c.gameID][c] = struct{}{}
}

func (s *Server) closeSession(c *session, g *game.Game) {
	c.conn.Close()

	s.mu.Lock()
	if set := s.sessions[c.gameID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(s.sessions, c.gameID)
		}
	}
	s.mu.Unlock()

	if c.playerID != "" {
		g.SetConnected(c.playerID, false)
		s.broadcast(g)
	}
}

func (s *Server) sendError(c *session, message string) {
	_ = c.send(map[string]string{"type": "error", "message": message})
}

// broadcast pushes each connected player their own view of the game.
func (s *Server) broadcast(g *game.Game) {
	s.mu.Lock()
	open := make([]*session, 0, len(s.sessions[g.ID()]))
	for c := range s.sessions[g.ID()] {
		open = append(open, c)
	}
	s.mu.Unlock()

	for _, c := range open {
		state := g.View(c.playerID)
		if err := c.send(map[string]any{"type": "state", "state": state}); err != nil {
			s.logger.Debug("broadcast failed", zap.String("game_id", g.ID()), zap.Error(err))
		}
	}
}

// maybeRecordResult persists the final scores the first time a room is seen
// in game_over. Best effort: failures are logged and do not affect play.
func (s *Server) maybeRecordResult(g *game.Game) {
	if s.results == nil || !g.Finished() {
		return
	}

	s.mu.Lock()
	if s.recorded[g.ID()] {
		s.mu.Unlock()
		return
	}
	s.recorded[g.ID()] = true
	s.mu.Unlock()

	scores := g.Scores()
	ranked := append([]game.Score(nil), scores...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Points > ranked[j].Points })
	winner := ""
	if len(ranked) > 0 {
		winner = ranked[0].PlayerID
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.results.RecordResult(ctx, g.ID(), winner, scores); err != nil {
			s.logger.Error("failed to record match result",
				zap.String("game_id", g.ID()), zap.Error(err))
		}
	}()
}
