package game

// PlayerView is one player's entry in the state projection. Hands and decks
// of other players are exposed only as counts; Hand (and, during the
// viewer's own topdeck-from-discard decision, DiscardPile) is populated
// only for the viewing player.
type PlayerView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	HandCount    int      `json:"hand_count"`
	DeckCount    int      `json:"deck_count"`
	DiscardCount int      `json:"discard_count"`
	PlayArea     []string `json:"play_area"`
	Actions      int      `json:"actions"`
	Buys         int      `json:"buys"`
	Coins        int      `json:"coins"`
	Connected    bool     `json:"connected"`
	Hand         []string `json:"hand,omitempty"`
	DiscardPile  []string `json:"discard_pile,omitempty"`
}

// View is the full public game state as seen by one player.
type View struct {
	GameID            string         `json:"game_id"`
	Started           bool           `json:"started"`
	Phase             Phase          `json:"phase"`
	CurrentPlayer     string         `json:"current_player,omitempty"`
	CurrentPlayerName string         `json:"current_player_name,omitempty"`
	Supply            map[string]int `json:"supply"`
	Trash             []string       `json:"trash"`
	Log               []string       `json:"log"`
	Players           []PlayerView   `json:"players"`
	Pending           *PendingView   `json:"pending_action,omitempty"`
	Scores            []Score        `json:"scores,omitempty"`
}

// View builds the state projection for forPlayerID (empty for a spectator).
func (g *Game) View(forPlayerID string) *View {
	g.mu.Lock()
	defer g.mu.Unlock()

	v := &View{
		GameID:  g.id,
		Started: g.started,
		Phase:   g.phase,
		Supply:  make(map[string]int, len(g.supply)),
		Trash:   append([]string(nil), g.trash...),
	}
	for id, count := range g.supply {
		v.Supply[id] = count
	}

	if current := g.currentPlayer(); current != nil {
		v.CurrentPlayer = current.ID
		v.CurrentPlayerName = current.Name
	}

	tail := g.log
	if len(tail) > logTail {
		tail = tail[len(tail)-logTail:]
	}
	v.Log = append([]string(nil), tail...)

	if g.pending != nil {
		v.Pending = g.pending.clientView()
	}

	for _, p := range g.players {
		pv := PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			HandCount:    len(p.Hand),
			DeckCount:    len(p.Deck),
			DiscardCount: len(p.Discard),
			PlayArea:     append([]string(nil), p.PlayArea...),
			Actions:      p.Actions,
			Buys:         p.Buys,
			Coins:        p.Coins,
			Connected:    p.Connected,
		}
		if p.ID == forPlayerID {
			pv.Hand = append([]string(nil), p.Hand...)
			if pa, ok := g.pending.(*pendingTopdeckFromDiscard); ok && pa.PlayerID == p.ID {
				pv.DiscardPile = append([]string(nil), p.Discard...)
			}
		}
		v.Players = append(v.Players, pv)
	}

	if g.phase == PhaseGameOver {
		v.Scores = g.scores()
	}

	return v
}

// Summary is the lobby-listing projection of a room.
type Summary struct {
	GameID  string          `json:"game_id"`
	Players []PlayerSummary `json:"players"`
	Started bool            `json:"started"`
	Phase   Phase           `json:"phase"`
}

// PlayerSummary identifies a seated player in a lobby listing.
type PlayerSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Summary returns the lobby listing entry for this room.
func (g *Game) Summary() Summary {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Summary{GameID: g.id, Started: g.started, Phase: g.phase}
	for _, p := range g.players {
		s.Players = append(s.Players, PlayerSummary{ID: p.ID, Name: p.Name})
	}
	return s
}

// Finished reports whether the game has reached game_over.
func (g *Game) Finished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase == PhaseGameOver
}

// HasPlayer reports whether playerID is seated in this game.
func (g *Game) HasPlayer(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playerByID(playerID) != nil
}
