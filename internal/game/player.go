package game

import (
	"math/rand"

	"github.com/sovereign-game/sovereign-server/internal/cards"
)

// Player holds one player's zones and per-turn resources. The top of the
// deck is the end of the slice. Zones hold card ids; definitions live in
// the shared catalog.
type Player struct {
	ID        string
	Name      string
	Deck      []string
	Hand      []string
	Discard   []string
	PlayArea  []string
	Actions   int
	Buys      int
	Coins     int
	Connected bool
}

func newPlayer(id, name string) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Actions:   1,
		Buys:      1,
		Coins:     0,
		Connected: true,
	}
}

// AllCards returns every card id the player holds, across all four zones.
func (p *Player) AllCards() []string {
	out := make([]string, 0, len(p.Deck)+len(p.Hand)+len(p.Discard)+len(p.PlayArea))
	out = append(out, p.Deck...)
	out = append(out, p.Hand...)
	out = append(out, p.Discard...)
	out = append(out, p.PlayArea...)
	return out
}

func (p *Player) shuffleDiscardIntoDeck(rng *rand.Rand) {
	p.Deck = append(p.Deck, p.Discard...)
	p.Discard = nil
	rng.Shuffle(len(p.Deck), func(i, j int) {
		p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
	})
}

// draw moves up to n cards from deck to hand, reshuffling the discard pile
// into the deck when the deck runs dry. Drawing fewer than requested is not
// an error.
func (p *Player) draw(n int, rng *rand.Rand) []string {
	var drawn []string
	for i := 0; i < n; i++ {
		if len(p.Deck) == 0 {
			if len(p.Discard) == 0 {
				break
			}
			p.shuffleDiscardIntoDeck(rng)
		}
		top := p.Deck[len(p.Deck)-1]
		p.Deck = p.Deck[:len(p.Deck)-1]
		p.Hand = append(p.Hand, top)
		drawn = append(drawn, top)
	}
	return drawn
}

// popDeckTop removes and returns the top deck card, reshuffling first if
// needed. ok is false when both deck and discard are empty.
func (p *Player) popDeckTop(rng *rand.Rand) (string, bool) {
	if len(p.Deck) == 0 {
		if len(p.Discard) == 0 {
			return "", false
		}
		p.shuffleDiscardIntoDeck(rng)
	}
	top := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	return top, true
}

// victoryPoints sums victory points over all four zones.
func (p *Player) victoryPoints(catalog *cards.Catalog) int {
	total := 0
	for _, id := range p.AllCards() {
		if card := catalog.Get(id); card != nil {
			total += card.VictoryPoints
		}
	}
	return total
}

// removeCard removes the first occurrence of id from zone, reporting
// whether it was present.
func removeCard(zone []string, id string) ([]string, bool) {
	for i, c := range zone {
		if c == id {
			return append(zone[:i], zone[i+1:]...), true
		}
	}
	return zone, false
}

func contains(zone []string, id string) bool {
	for _, c := range zone {
		if c == id {
			return true
		}
	}
	return false
}

// holdsAll reports whether zone contains ids as a multiset: duplicates in
// ids need matching duplicates in zone.
func holdsAll(zone []string, ids []string) bool {
	counts := make(map[string]int, len(zone))
	for _, c := range zone {
		counts[c]++
	}
	for _, id := range ids {
		counts[id]--
		if counts[id] < 0 {
			return false
		}
	}
	return true
}
