// Package room holds the registry of active game rooms. The registry is an
// explicit owned value handed to the transport layer at startup; the engine
// never reaches into it.
package room

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sovereign-game/sovereign-server/internal/cards"
	"github.com/sovereign-game/sovereign-server/internal/game"
)

// Manager maps room ids to game engine instances. Rooms are fully
// independent; each game carries its own lock and randomness source.
type Manager struct {
	mu      sync.RWMutex
	games   map[string]*game.Game
	catalog *cards.Catalog
	logger  *zap.Logger
	seed    func() int64
}

// NewManager creates a room registry over a shared read-only catalog.
func NewManager(catalog *cards.Catalog, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		games:   make(map[string]*game.Game),
		catalog: catalog,
		logger:  logger,
		seed:    func() int64 { return time.Now().UnixNano() },
	}
}

// SetSeedFunc overrides per-room RNG seeding, for deterministic tests.
func (m *Manager) SetSeedFunc(seed func() int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seed = seed
}

// newRoomID returns a short room id in the style of the web client URLs.
func newRoomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Create makes a new room with an optional kingdom pile selection and
// registers it.
func (m *Manager) Create(kingdom []string) *game.Game {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := newRoomID()
	for m.games[id] != nil {
		id = newRoomID()
	}
	rng := rand.New(rand.NewSource(m.seed()))
	g := game.New(id, m.catalog, kingdom, rng, m.logger)
	m.games[id] = g

	m.logger.Info("room created", zap.String("game_id", id), zap.Strings("kingdom", kingdom))
	return g
}

// Get looks up a room by id, or nil.
func (m *Manager) Get(id string) *game.Game {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.games[id]
}

// Remove drops a room from the registry.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.games[id]; ok {
		delete(m.games, id)
		m.logger.Info("room removed", zap.String("game_id", id))
	}
}

// List returns a lobby summary of every room.
func (m *Manager) List() []game.Summary {
	m.mu.RLock()
	games := make([]*game.Game, 0, len(m.games))
	for _, g := range m.games {
		games = append(games, g)
	}
	m.mu.RUnlock()

	out := make([]game.Summary, 0, len(games))
	for _, g := range games {
		out = append(out, g.Summary())
	}
	return out
}
