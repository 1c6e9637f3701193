package game

import (
	"github.com/sovereign-game/sovereign-server/internal/cards"
)

// DiscardResult reports how a discard selection resolved. NextTarget is set
// when an attack moves on to prompt another player.
type DiscardResult struct {
	Discarded  int      `json:"discarded"`
	Drawn      []string `json:"drawn,omitempty"`
	NextTarget string   `json:"next_target,omitempty"`
	Resolved   bool     `json:"resolved"`
}

// GainResult reports a resolved gain selection.
type GainResult struct {
	Gained          string `json:"gained"`
	AwaitingTopdeck bool   `json:"awaiting_topdeck,omitempty"`
}

// TrashResult reports a resolved trash selection.
type TrashResult struct {
	Trashed      []string `json:"trashed"`
	AwaitingGain bool     `json:"awaiting_gain,omitempty"`
}

// SubmitDiscardSelection resolves a pending discard: either an attack
// target discarding down to the threshold, or the acting player's
// discard-then-draw selection.
func (g *Game) SubmitDiscardSelection(playerID string, cardIDs []string) (*DiscardResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch pa := g.pending.(type) {
	case *pendingAttackDiscard:
		return g.resolveAttackDiscard(pa, playerID, cardIDs)
	case *pendingDiscardDraw:
		return g.resolveDiscardDraw(pa, playerID, cardIDs)
	}
	return nil, ErrNoPendingAction
}

func (g *Game) resolveAttackDiscard(pa *pendingAttackDiscard, playerID string, cardIDs []string) (*DiscardResult, error) {
	if playerID != pa.TargetID {
		return nil, ErrNotYourDecision
	}
	p := g.playerByID(playerID)
	if p == nil {
		return nil, ErrPlayerNotInGame
	}

	needed := len(p.Hand) - pa.DiscardTo
	if len(cardIDs) != needed {
		return nil, ErrSelectionCount
	}
	if !holdsAll(p.Hand, cardIDs) {
		return nil, ErrCardNotInHand
	}

	for _, id := range cardIDs {
		p.Hand, _ = removeCard(p.Hand, id)
		p.Discard = append(p.Discard, id)
	}
	g.logf("  %s discards %d", p.Name, needed)

	// Move on to the next queued target, re-checking both eligibility
	// conditions fresh for each one.
	remaining := pa.remaining
	for len(remaining) > 0 {
		nextID := remaining[0]
		remaining = remaining[1:]
		next := g.playerByID(nextID)
		if next == nil || len(next.Hand) <= pa.DiscardTo || g.hasBlockReaction(next) {
			continue
		}
		g.pending = &pendingAttackDiscard{
			TargetID:   nextID,
			AttackerID: pa.AttackerID,
			DiscardTo:  pa.DiscardTo,
			remaining:  remaining,
		}
		return &DiscardResult{Discarded: needed, NextTarget: nextID}, nil
	}

	g.resume()
	return &DiscardResult{Discarded: needed, Resolved: true}, nil
}

func (g *Game) resolveDiscardDraw(pa *pendingDiscardDraw, playerID string, cardIDs []string) (*DiscardResult, error) {
	if playerID != pa.PlayerID {
		return nil, ErrNotYourDecision
	}
	p := g.playerByID(playerID)
	if p == nil {
		return nil, ErrPlayerNotInGame
	}
	if !holdsAll(p.Hand, cardIDs) {
		return nil, ErrCardNotInHand
	}

	for _, id := range cardIDs {
		p.Hand, _ = removeCard(p.Hand, id)
		p.Discard = append(p.Discard, id)
	}
	drawn := p.draw(len(cardIDs), g.rng)
	g.logf("%s discards %d and draws %d", p.Name, len(cardIDs), len(drawn))

	g.resume()
	return &DiscardResult{Discarded: len(cardIDs), Drawn: drawn, Resolved: true}, nil
}

// SubmitGainSelection resolves a pending gain: the chosen card must be in
// supply and within the cost bound (and a treasure, for the restricted
// variant). Gaining to hand may chain into a topdeck selection.
func (g *Game) SubmitGainSelection(playerID, cardID string) (*GainResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pa, ok := g.pending.(*pendingGain)
	if !ok {
		return nil, ErrNoPendingAction
	}
	if playerID != pa.PlayerID {
		return nil, ErrNotYourDecision
	}
	p := g.playerByID(playerID)
	if p == nil {
		return nil, ErrPlayerNotInGame
	}

	card := g.catalog.Get(cardID)
	if card == nil {
		return nil, ErrUnknownCard
	}
	if card.Cost > pa.MaxCost {
		return nil, ErrCostTooHigh
	}
	if pa.TreasureOnly && card.Type != cards.TypeTreasure {
		return nil, ErrNotTreasureCard
	}
	if g.supply[cardID] <= 0 {
		return nil, ErrSupplyEmpty
	}

	g.supply[cardID]--
	if pa.ToHand || pa.TreasureOnly {
		p.Hand = append(p.Hand, cardID)
		g.logf("%s gains %s to hand", p.Name, card.Name)
	} else {
		p.Discard = append(p.Discard, cardID)
		g.logf("%s gains %s", p.Name, card.Name)
	}

	if pa.ThenTopdeck {
		g.suspend(&pendingTopdeckFromHand{PlayerID: playerID})
		return &GainResult{Gained: cardID, AwaitingTopdeck: true}, nil
	}

	g.resume()
	return &GainResult{Gained: cardID}, nil
}

// SubmitTrashSelection resolves a pending trash: either trashing up to N
// cards outright, or stage one of a trash-then-gain effect, which
// re-suspends into a gain bounded by the trashed cost plus the bonus.
func (g *Game) SubmitTrashSelection(playerID string, cardIDs []string) (*TrashResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch pa := g.pending.(type) {
	case *pendingTrash:
		return g.resolveTrash(pa, playerID, cardIDs)
	case *pendingTrashThenGain:
		return g.resolveTrashThenGain(pa, playerID, cardIDs)
	}
	return nil, ErrNoPendingAction
}

func (g *Game) resolveTrash(pa *pendingTrash, playerID string, cardIDs []string) (*TrashResult, error) {
	if playerID != pa.PlayerID {
		return nil, ErrNotYourDecision
	}
	p := g.playerByID(playerID)
	if p == nil {
		return nil, ErrPlayerNotInGame
	}
	if len(cardIDs) > pa.MaxCards {
		return nil, ErrSelectionCount
	}
	if !holdsAll(p.Hand, cardIDs) {
		return nil, ErrCardNotInHand
	}

	for _, id := range cardIDs {
		p.Hand, _ = removeCard(p.Hand, id)
		g.trash = append(g.trash, id)
	}
	if len(cardIDs) > 0 {
		g.logf("%s trashes %d cards", p.Name, len(cardIDs))
	}

	g.resume()
	return &TrashResult{Trashed: cardIDs}, nil
}

func (g *Game) resolveTrashThenGain(pa *pendingTrashThenGain, playerID string, cardIDs []string) (*TrashResult, error) {
	if playerID != pa.PlayerID {
		return nil, ErrNotYourDecision
	}
	p := g.playerByID(playerID)
	if p == nil {
		return nil, ErrPlayerNotInGame
	}
	if len(cardIDs) != 1 {
		return nil, ErrSelectionCount
	}
	id := cardIDs[0]
	if !contains(p.Hand, id) {
		return nil, ErrCardNotInHand
	}
	card := g.catalog.Get(id)
	if card == nil {
		return nil, ErrUnknownCard
	}
	if pa.TreasureOnly && card.Type != cards.TypeTreasure {
		return nil, ErrNotTreasureCard
	}

	p.Hand, _ = removeCard(p.Hand, id)
	g.trash = append(g.trash, id)
	g.logf("%s trashes %s", p.Name, card.Name)

	// Stage two: a gain selection bounded by the trashed cost plus bonus.
	g.suspend(&pendingGain{
		PlayerID:     playerID,
		MaxCost:      card.Cost + pa.CostBonus,
		ToHand:       pa.TreasureOnly,
		TreasureOnly: pa.TreasureOnly,
	})
	return &TrashResult{Trashed: cardIDs, AwaitingGain: true}, nil
}

// SubmitTopdeckSelection resolves a pending topdeck. For the from-discard
// variant an empty cardID declines, which is legal and mutates nothing.
func (g *Game) SubmitTopdeckSelection(playerID, cardID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch pa := g.pending.(type) {
	case *pendingTopdeckFromHand:
		if playerID != pa.PlayerID {
			return ErrNotYourDecision
		}
		p := g.playerByID(playerID)
		if p == nil {
			return ErrPlayerNotInGame
		}
		if cardID == "" || !contains(p.Hand, cardID) {
			return ErrCardNotInHand
		}
		p.Hand, _ = removeCard(p.Hand, cardID)
		p.Deck = append(p.Deck, cardID)
		g.logf("%s puts %s on top of the deck", p.Name, g.catalog.Name(cardID))
		g.resume()
		return nil

	case *pendingTopdeckFromDiscard:
		if playerID != pa.PlayerID {
			return ErrNotYourDecision
		}
		p := g.playerByID(playerID)
		if p == nil {
			return ErrPlayerNotInGame
		}
		if cardID == "" {
			g.logf("%s declines", p.Name)
			g.resume()
			return nil
		}
		if !contains(p.Discard, cardID) {
			return ErrCardNotInDiscard
		}
		p.Discard, _ = removeCard(p.Discard, cardID)
		p.Deck = append(p.Deck, cardID)
		g.logf("%s puts %s on top of the deck", p.Name, g.catalog.Name(cardID))
		g.resume()
		return nil
	}
	return ErrNoPendingAction
}

// Disposal is what to do with one revealed card.
type Disposal string

const (
	DisposalTrash   Disposal = "trash"
	DisposalDiscard Disposal = "discard"
	DisposalTopdeck Disposal = "topdeck"
)

// RevealDecision assigns a disposal to one revealed card, by value.
type RevealDecision struct {
	CardID string   `json:"card_id"`
	Action Disposal `json:"action"`
}

// SubmitRevealDecision resolves a pending reveal-processing action: the
// decisions must cover the revealed cards exactly, as a multiset.
// Disposals apply in submitted order, topdecked cards last.
func (g *Game) SubmitRevealDecision(playerID string, decisions []RevealDecision) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	pa, ok := g.pending.(*pendingRevealSort)
	if !ok {
		return ErrNoPendingAction
	}
	if playerID != pa.PlayerID {
		return ErrNotYourDecision
	}
	p := g.playerByID(playerID)
	if p == nil {
		return ErrPlayerNotInGame
	}

	ids := make([]string, len(decisions))
	for i, d := range decisions {
		ids[i] = d.CardID
	}
	if len(ids) != len(pa.Revealed) || !holdsAll(pa.Revealed, ids) {
		return ErrDecisionMismatch
	}
	for _, d := range decisions {
		switch d.Action {
		case DisposalTrash, DisposalDiscard, DisposalTopdeck:
		default:
			return ErrUnknownDisposal
		}
	}

	var topdeck []string
	for _, d := range decisions {
		switch d.Action {
		case DisposalTrash:
			g.trash = append(g.trash, d.CardID)
			g.logf("  trashes %s", g.catalog.Name(d.CardID))
		case DisposalDiscard:
			p.Discard = append(p.Discard, d.CardID)
			g.logf("  discards %s", g.catalog.Name(d.CardID))
		case DisposalTopdeck:
			topdeck = append(topdeck, d.CardID)
		}
	}
	for _, id := range topdeck {
		p.Deck = append(p.Deck, id)
		g.logf("  returns %s to the top of the deck", g.catalog.Name(id))
	}

	g.resume()
	return nil
}

// SubmitReplayDecision resolves a pending revealed-action replay. Playing
// it moves the card from the discard pile to the play area and resolves its
// effects without consuming an action; declining leaves it discarded.
func (g *Game) SubmitReplayDecision(playerID string, play bool) (*PlayResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pa, ok := g.pending.(*pendingPlayRevealed)
	if !ok {
		return nil, ErrNoPendingAction
	}
	if playerID != pa.PlayerID {
		return nil, ErrNotYourDecision
	}
	p := g.playerByID(playerID)
	if p == nil {
		return nil, ErrPlayerNotInGame
	}

	if !play {
		g.logf("%s leaves %s discarded", p.Name, g.catalog.Name(pa.CardID))
		g.resume()
		return &PlayResult{Card: pa.CardID}, nil
	}

	card := g.catalog.Get(pa.CardID)
	p.Discard, _ = removeCard(p.Discard, pa.CardID)
	p.PlayArea = append(p.PlayArea, pa.CardID)
	g.logf("%s plays %s", p.Name, card.Name)

	// Clear the suspension before resolving: the replayed card may itself
	// suspend into a new pending action.
	g.resume()
	result := g.resolveEffects(p, card)
	result.Card = pa.CardID
	return result, nil
}
