package game

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sovereign-game/sovereign-server/internal/cards"
)

const (
	maxPlayers       = 4
	handSize         = 5
	twoPlayerVictory = 8
	logTail          = 30
)

// Game is one game room's complete rules state: players, supply, trash,
// phase, and the single optional pending action. All mutating operations
// run under one mutex, so the whole validate-then-mutate sequence of each
// move is a critical section. Validation failures never mutate anything.
type Game struct {
	mu sync.Mutex

	id      string
	catalog *cards.Catalog
	kingdom []string

	players []*Player
	supply  map[string]int
	trash   []string

	current int
	phase   Phase
	started bool
	pending PendingAction
	log     []string

	rng    *rand.Rand
	logger *zap.Logger
}

// New creates a game room. kingdom optionally names action piles to include
// in the supply; rng may be nil, in which case a time-seeded source is
// used. Each game owns its randomness source so replays and tests can seed
// it deterministically.
func New(id string, catalog *cards.Catalog, kingdom []string, rng *rand.Rand, logger *zap.Logger) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		id:      id,
		catalog: catalog,
		kingdom: kingdom,
		supply:  make(map[string]int),
		phase:   PhaseWaiting,
		rng:     rng,
		logger:  logger.With(zap.String("game_id", id)),
	}
}

// ID returns the room id.
func (g *Game) ID() string {
	return g.id
}

// AddPlayer joins a player to a not-yet-started game. Joining with an id
// that is already seated returns the existing player and marks them
// connected, which is how reconnection works.
func (g *Game) AddPlayer(playerID, name string) (*Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing := g.playerByID(playerID); existing != nil {
		existing.Connected = true
		if name != "" {
			existing.Name = name
		}
		return existing, nil
	}
	if g.started {
		return nil, ErrGameStarted
	}
	if len(g.players) >= maxPlayers {
		return nil, ErrGameFull
	}

	p := newPlayer(playerID, name)
	g.players = append(g.players, p)
	g.logf("%s joined the game", name)
	g.logger.Info("player joined", zap.String("player_id", playerID), zap.String("name", name))
	return p, nil
}

// SetConnected flips a player's connected flag. Disconnecting never removes
// state; a pending action addressed to a disconnected player stays pending.
func (g *Game) SetConnected(playerID string, connected bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if p := g.playerByID(playerID); p != nil {
		p.Connected = connected
	}
}

// Start deals starting decks, builds the supply, and enters the first
// action phase. Requires at least two seated players.
func (g *Game) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started {
		return ErrGameStarted
	}
	if len(g.players) < 2 {
		return ErrNeedPlayers
	}

	g.setupSupply()

	for _, p := range g.players {
		for id, count := range g.catalog.StartingDeck() {
			for i := 0; i < count; i++ {
				p.Deck = append(p.Deck, id)
			}
		}
		g.rng.Shuffle(len(p.Deck), func(i, j int) {
			p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
		})
		p.draw(handSize, g.rng)
	}

	g.started = true
	g.current = 0
	g.phase = PhaseAction
	g.logf("The game begins!")
	g.logf("%s's turn", g.currentPlayer().Name)
	g.logger.Info("game started", zap.Int("players", len(g.players)))
	return nil
}

// setupSupply builds the supply from the catalog's policy: the always
// piles, a two-player adjustment on victory piles, and kingdom piles
// (requested ones first, the rest sampled randomly).
func (g *Game) setupSupply() {
	setup := g.catalog.SupplySetup()

	for _, id := range setup.Always {
		g.supply[id] = g.catalog.PileSize(id)
	}

	if len(g.players) == 2 {
		for _, vid := range g.catalog.VictoryIDs() {
			if _, ok := g.supply[vid]; ok {
				g.supply[vid] = twoPlayerVictory
			}
		}
	}

	available := g.catalog.ActionIDs()
	var chosen []string
	for _, id := range g.kingdom {
		if contains(available, id) && !contains(chosen, id) {
			chosen = append(chosen, id)
		}
	}

	var remaining []string
	for _, id := range available {
		if !contains(chosen, id) {
			remaining = append(remaining, id)
		}
	}
	g.rng.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})
	for _, id := range remaining {
		if len(chosen) >= setup.KingdomCount {
			break
		}
		chosen = append(chosen, id)
	}

	for _, id := range chosen {
		g.supply[id] = g.catalog.PileSize(id)
	}
}

// endTurn performs cleanup for the current player, checks the end-game
// condition, and either finishes the game or passes the turn.
func (g *Game) endTurn() {
	p := g.currentPlayer()

	p.Discard = append(p.Discard, p.Hand...)
	p.Discard = append(p.Discard, p.PlayArea...)
	p.Hand = nil
	p.PlayArea = nil
	p.draw(handSize, g.rng)
	p.Actions = 1
	p.Buys = 1
	p.Coins = 0

	g.pending = nil

	if g.gameEnded() {
		g.phase = PhaseGameOver
		g.logf("Game over!")
		g.logScores()
		g.logger.Info("game over")
		return
	}

	g.current = (g.current + 1) % len(g.players)
	g.phase = PhaseAction
	g.logf("%s's turn", g.currentPlayer().Name)
}

// gameEnded checks the end condition: capstone pile empty (when configured)
// or enough empty piles. Called only at end of turn, never mid-turn.
func (g *Game) gameEnded() bool {
	conditions := g.catalog.EndConditions()

	if conditions.CapstoneEmpty {
		if capstone := g.catalog.CapstoneID(); capstone != "" {
			if count, ok := g.supply[capstone]; ok && count <= 0 {
				return true
			}
		}
	}

	empty := 0
	for _, count := range g.supply {
		if count <= 0 {
			empty++
		}
	}
	return empty >= conditions.EmptyPiles
}

// Score is one player's final victory-point total.
type Score struct {
	PlayerID string `json:"id"`
	Name     string `json:"name"`
	Points   int    `json:"vp"`
}

// Scores returns every player's victory-point total, summed over all four
// zones, in seat order.
func (g *Game) Scores() []Score {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scores()
}

func (g *Game) scores() []Score {
	out := make([]Score, 0, len(g.players))
	for _, p := range g.players {
		out = append(out, Score{PlayerID: p.ID, Name: p.Name, Points: p.victoryPoints(g.catalog)})
	}
	return out
}

func (g *Game) logScores() {
	scores := g.scores()
	for _, s := range scores {
		g.logf("  %s: %d points", s.Name, s.Points)
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Points > scores[j].Points })
	if len(scores) > 0 {
		g.logf("%s wins!", scores[0].Name)
	}
}

func (g *Game) currentPlayer() *Player {
	if len(g.players) == 0 {
		return nil
	}
	return g.players[g.current]
}

func (g *Game) playerByID(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// requireTurn validates that playerID exists and holds the turn.
func (g *Game) requireTurn(playerID string) (*Player, error) {
	p := g.playerByID(playerID)
	if p == nil || p != g.currentPlayer() {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// hasBlockReaction reports whether the player holds an attack-blocking
// reaction card. Recomputed fresh on every attack check; hand contents
// change turn to turn.
func (g *Game) hasBlockReaction(p *Player) bool {
	for _, id := range p.Hand {
		if card := g.catalog.Get(id); card != nil && card.BlocksAttacks() {
			return true
		}
	}
	return false
}

func (g *Game) logf(format string, args ...any) {
	g.log = append(g.log, fmt.Sprintf(format, args...))
}
