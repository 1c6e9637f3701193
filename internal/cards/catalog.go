package cards

import (
	"encoding/json"
	"fmt"
	"os"
)

// Type classifies a card. Every card has exactly one type.
type Type string

const (
	TypeAction   Type = "action"
	TypeTreasure Type = "treasure"
	TypeVictory  Type = "victory"
)

// Reaction tags a card with an out-of-turn ability. block_attack is the only
// reaction currently defined: holding the card in hand nullifies incoming
// attacks.
type Reaction string

const (
	ReactionNone        Reaction = ""
	ReactionBlockAttack Reaction = "block_attack"
)

// Card is an immutable card definition loaded from the data file.
type Card struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Type          Type       `json:"type"`
	Cost          int        `json:"cost"`
	CoinValue     int        `json:"coin_value,omitempty"`
	VictoryPoints int        `json:"victory_points,omitempty"`
	Effects       EffectList `json:"effects,omitempty"`
	Reaction      Reaction   `json:"reaction,omitempty"`
}

// BlocksAttacks reports whether holding this card in hand blocks attacks.
func (c *Card) BlocksAttacks() bool {
	return c.Reaction == ReactionBlockAttack
}

// SupplySetup describes how the supply is built at game start.
type SupplySetup struct {
	// Always lists pile ids present in every game (basic treasures and
	// victory cards).
	Always []string `json:"always"`
	// PileSizes maps a card id to its pile size; the "default_action" key
	// is the fallback for piles without an explicit entry.
	PileSizes map[string]int `json:"pile_sizes"`
	// KingdomCount is the number of action piles in the supply.
	KingdomCount int `json:"kingdom_count"`
}

// EndConditions configures when the game ends.
type EndConditions struct {
	// CapstoneEmpty ends the game when the highest-cost victory pile runs
	// out.
	CapstoneEmpty bool `json:"capstone_empty"`
	// EmptyPiles ends the game when this many supply piles are empty.
	EmptyPiles int `json:"empty_piles"`
}

const (
	defaultPileSize     = 10
	defaultKingdomCount = 10
	defaultEmptyPiles   = 3
)

// Catalog is the immutable card database for a game: definitions plus the
// starting-deck and supply-setup policies. Loaded once, read-only afterward.
type Catalog struct {
	byID          map[string]*Card
	order         []string
	startingDeck  map[string]int
	supplySetup   SupplySetup
	endConditions EndConditions
	raw           json.RawMessage
}

type catalogFile struct {
	Cards             []*Card        `json:"cards"`
	StartingDeck      map[string]int `json:"starting_deck"`
	SupplySetup       SupplySetup    `json:"supply_setup"`
	GameEndConditions EndConditions  `json:"game_end_conditions"`
}

// Parse builds a catalog from raw JSON card data.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse card data: %w", err)
	}
	if len(file.Cards) == 0 {
		return nil, fmt.Errorf("card data contains no cards")
	}

	c := &Catalog{
		byID:          make(map[string]*Card, len(file.Cards)),
		startingDeck:  file.StartingDeck,
		supplySetup:   file.SupplySetup,
		endConditions: file.GameEndConditions,
		raw:           json.RawMessage(data),
	}
	for _, card := range file.Cards {
		if card.ID == "" {
			return nil, fmt.Errorf("card %q has no id", card.Name)
		}
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		switch card.Type {
		case TypeAction, TypeTreasure, TypeVictory:
		default:
			return nil, fmt.Errorf("card %q has unknown type %q", card.ID, card.Type)
		}
		switch card.Reaction {
		case ReactionNone, ReactionBlockAttack:
		default:
			return nil, fmt.Errorf("card %q has unknown reaction %q", card.ID, card.Reaction)
		}
		c.byID[card.ID] = card
		c.order = append(c.order, card.ID)
	}

	for id := range c.startingDeck {
		if _, ok := c.byID[id]; !ok {
			return nil, fmt.Errorf("starting deck references unknown card %q", id)
		}
	}
	for _, id := range c.supplySetup.Always {
		if _, ok := c.byID[id]; !ok {
			return nil, fmt.Errorf("supply setup references unknown card %q", id)
		}
	}

	if c.supplySetup.KingdomCount == 0 {
		c.supplySetup.KingdomCount = defaultKingdomCount
	}
	if c.endConditions.EmptyPiles == 0 {
		c.endConditions.EmptyPiles = defaultEmptyPiles
	}
	return c, nil
}

// Load reads and parses a card data file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card data: %w", err)
	}
	return Parse(data)
}

// Get returns the card definition for id, or nil if unknown.
func (c *Catalog) Get(id string) *Card {
	return c.byID[id]
}

// Name returns the display name for id, falling back to the id itself.
func (c *Catalog) Name(id string) string {
	if card := c.byID[id]; card != nil {
		return card.Name
	}
	return id
}

// IDs returns all card ids in file order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// StartingDeck returns the card id → count composition dealt to each player.
func (c *Catalog) StartingDeck() map[string]int {
	return c.startingDeck
}

// SupplySetup returns the supply construction policy.
func (c *Catalog) SupplySetup() SupplySetup {
	return c.supplySetup
}

// EndConditions returns the configured game-end conditions.
func (c *Catalog) EndConditions() EndConditions {
	return c.endConditions
}

// Raw returns the original JSON document, for serving to clients.
func (c *Catalog) Raw() json.RawMessage {
	return c.raw
}

// PileSize returns the configured pile size for id.
func (c *Catalog) PileSize(id string) int {
	if n, ok := c.supplySetup.PileSizes[id]; ok {
		return n
	}
	if n, ok := c.supplySetup.PileSizes["default_action"]; ok {
		return n
	}
	return defaultPileSize
}

// VictoryIDs returns the ids of all victory cards, in file order.
func (c *Catalog) VictoryIDs() []string {
	var out []string
	for _, id := range c.order {
		if c.byID[id].Type == TypeVictory {
			out = append(out, id)
		}
	}
	return out
}

// ActionIDs returns the ids of all action cards, in file order. These are
// the candidate kingdom piles.
func (c *Catalog) ActionIDs() []string {
	var out []string
	for _, id := range c.order {
		if c.byID[id].Type == TypeAction {
			out = append(out, id)
		}
	}
	return out
}

// CapstoneID returns the highest-cost victory card id, the pile whose
// exhaustion is a primary end-game trigger. Empty when the set has no
// victory cards.
func (c *Catalog) CapstoneID() string {
	best := ""
	bestCost := -1
	for _, id := range c.VictoryIDs() {
		if cost := c.byID[id].Cost; cost > bestCost {
			best, bestCost = id, cost
		}
	}
	return best
}

// CheapestTreasureID returns the lowest-cost treasure card id, or empty when
// the set has no treasures.
func (c *Catalog) CheapestTreasureID() string {
	best := ""
	bestCost := 0
	for _, id := range c.order {
		card := c.byID[id]
		if card.Type != TypeTreasure {
			continue
		}
		if best == "" || card.Cost < bestCost {
			best, bestCost = id, card.Cost
		}
	}
	return best
}

// TreasureByCost returns a treasure card id with exactly the given cost, or
// empty when none exists.
func (c *Catalog) TreasureByCost(cost int) string {
	for _, id := range c.order {
		card := c.byID[id]
		if card.Type == TypeTreasure && card.Cost == cost {
			return id
		}
	}
	return ""
}
