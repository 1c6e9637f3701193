package game

import (
	"github.com/sovereign-game/sovereign-server/internal/cards"
)

// AttackOutcome reports what an attack did to one opponent.
type AttackOutcome struct {
	Blocked       bool   `json:"blocked,omitempty"`
	AlreadyUnder  bool   `json:"already_under,omitempty"`
	MustDiscardTo int    `json:"must_discard_to,omitempty"`
	Topdecked     string `json:"topdecked,omitempty"`
	NoVictory     bool   `json:"no_victory,omitempty"`
}

// PlayResult is the success payload of playing an action card (or replaying
// a revealed one). Awaiting names the suspension the resolver entered, if
// any.
type PlayResult struct {
	Card     string                   `json:"card"`
	Drawn    []string                 `json:"drawn,omitempty"`
	Attack   map[string]AttackOutcome `json:"attack,omitempty"`
	Awaiting string                   `json:"awaiting,omitempty"`
}

// TreasureResult is the success payload of playing treasures.
type TreasureResult struct {
	Coins  int      `json:"coins"`
	Played []string `json:"played,omitempty"`
}

// PlayAction plays an action card from the current player's hand during the
// action phase, consuming one action and resolving the card's effects in
// declared order until the first suspension, if any.
func (g *Game) PlayAction(playerID, cardID string) (*PlayResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.requireTurn(playerID)
	if err != nil {
		return nil, err
	}
	if g.phase != PhaseAction {
		return nil, ErrWrongPhase
	}
	if !contains(p.Hand, cardID) {
		return nil, ErrCardNotInHand
	}
	card := g.catalog.Get(cardID)
	if card == nil {
		return nil, ErrUnknownCard
	}
	if card.Type != cards.TypeAction {
		return nil, ErrNotActionCard
	}
	if p.Actions <= 0 {
		return nil, ErrNoActionsLeft
	}

	p.Hand, _ = removeCard(p.Hand, cardID)
	p.PlayArea = append(p.PlayArea, cardID)
	p.Actions--

	g.logf("%s plays %s", p.Name, card.Name)
	result := g.resolveEffects(p, card)
	result.Card = cardID
	return result, nil
}

// PlayTreasure plays a single treasure from hand, adding its coin value.
// Playing a treasure during the action phase implicitly moves to the buy
// phase.
func (g *Game) PlayTreasure(playerID, cardID string) (*TreasureResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.requireTurn(playerID)
	if err != nil {
		return nil, err
	}
	if g.phase != PhaseAction && g.phase != PhaseBuy {
		return nil, ErrWrongPhase
	}
	if !contains(p.Hand, cardID) {
		return nil, ErrCardNotInHand
	}
	card := g.catalog.Get(cardID)
	if card == nil {
		return nil, ErrUnknownCard
	}
	if card.Type != cards.TypeTreasure {
		return nil, ErrNotTreasureCard
	}

	if g.phase == PhaseAction {
		g.phase = PhaseBuy
	}

	p.Hand, _ = removeCard(p.Hand, cardID)
	p.PlayArea = append(p.PlayArea, cardID)
	p.Coins += card.CoinValue

	return &TreasureResult{Coins: p.Coins, Played: []string{cardID}}, nil
}

// PlayAllTreasures plays every treasure in the current player's hand.
func (g *Game) PlayAllTreasures(playerID string) (*TreasureResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.requireTurn(playerID)
	if err != nil {
		return nil, err
	}
	if g.phase != PhaseAction && g.phase != PhaseBuy {
		return nil, ErrWrongPhase
	}

	if g.phase == PhaseAction {
		g.phase = PhaseBuy
	}

	var played []string
	for _, id := range p.Hand {
		if card := g.catalog.Get(id); card != nil && card.Type == cards.TypeTreasure {
			played = append(played, id)
		}
	}
	for _, id := range played {
		p.Hand, _ = removeCard(p.Hand, id)
		p.PlayArea = append(p.PlayArea, id)
		p.Coins += g.catalog.Get(id).CoinValue
	}

	return &TreasureResult{Coins: p.Coins, Played: played}, nil
}

// SkipAction ends the action phase explicitly.
func (g *Game) SkipAction(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.requireTurn(playerID); err != nil {
		return err
	}
	if g.phase != PhaseAction {
		return ErrWrongPhase
	}
	g.phase = PhaseBuy
	return nil
}

// BuyCard buys a card from the supply during the buy phase. Spending the
// last buy ends the turn immediately.
func (g *Game) BuyCard(playerID, cardID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.requireTurn(playerID)
	if err != nil {
		return "", err
	}
	if g.phase != PhaseBuy {
		return "", ErrWrongPhase
	}
	if p.Buys <= 0 {
		return "", ErrNoBuysLeft
	}
	card := g.catalog.Get(cardID)
	if card == nil {
		return "", ErrUnknownCard
	}
	if card.Cost > p.Coins {
		return "", ErrNotEnoughCoins
	}
	if g.supply[cardID] <= 0 {
		return "", ErrSupplyEmpty
	}

	p.Coins -= card.Cost
	p.Buys--
	g.supply[cardID]--
	p.Discard = append(p.Discard, cardID)

	g.logf("%s buys %s", p.Name, card.Name)

	if p.Buys <= 0 {
		g.endTurn()
	}
	return cardID, nil
}

// EndTurn ends the current player's turn from the action or buy phase.
func (g *Game) EndTurn(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.requireTurn(playerID); err != nil {
		return err
	}
	if g.phase != PhaseAction && g.phase != PhaseBuy {
		return ErrWrongPhase
	}
	g.endTurn()
	return nil
}
