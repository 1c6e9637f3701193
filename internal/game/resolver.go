package game

import (
	"strings"

	"github.com/sovereign-game/sovereign-server/internal/cards"
)

// resolveEffects interprets a card's effect list in declared order,
// applying immediate effects and suspending into a pending action for
// effects that need further player input. Resolution stops at the first
// suspension; any effects after it are left unresolved.
func (g *Game) resolveEffects(p *Player, card *cards.Card) *PlayResult {
	result := &PlayResult{}

	for _, effect := range card.Effects {
		switch e := effect.(type) {
		case cards.Draw:
			drawn := p.draw(e.Count, g.rng)
			g.logf("  draws %d", len(drawn))
			result.Drawn = append(result.Drawn, drawn...)

		case cards.AddActions:
			p.Actions += e.Count
			g.logf("  +%d actions", e.Count)

		case cards.AddBuys:
			p.Buys += e.Count
			g.logf("  +%d buys", e.Count)

		case cards.AddCoins:
			p.Coins += e.Count
			g.logf("  +%d coins", e.Count)

		case cards.AttackDiscardTo:
			result.Attack = g.declareDiscardAttack(p, e.HandSize)
			if g.pending != nil {
				result.Awaiting = "discard"
			}

		case cards.DiscardDraw:
			g.suspend(&pendingDiscardDraw{PlayerID: p.ID})
			result.Awaiting = "discard"

		case cards.GainUpTo:
			g.suspend(&pendingGain{PlayerID: p.ID, MaxCost: e.MaxCost})
			result.Awaiting = "gain"

		case cards.GainToHand:
			g.suspend(&pendingGain{PlayerID: p.ID, MaxCost: e.MaxCost, ToHand: true, ThenTopdeck: true})
			result.Awaiting = "gain"

		case cards.TrashUpTo:
			g.suspend(&pendingTrash{PlayerID: p.ID, MaxCards: e.Max})
			result.Awaiting = "trash"

		case cards.TrashThenGain:
			g.suspend(&pendingTrashThenGain{PlayerID: p.ID, CostBonus: e.Bonus})
			result.Awaiting = "trash"

		case cards.TrashTreasureGainTreasure:
			g.suspend(&pendingTrashThenGain{PlayerID: p.ID, CostBonus: e.Bonus, TreasureOnly: true})
			result.Awaiting = "trash"

		case cards.TrashCheapestTreasure:
			g.trashCheapestTreasure(p, e.Coins)

		case cards.OpponentsDraw:
			for _, other := range g.players {
				if other.ID == p.ID {
					continue
				}
				drawn := other.draw(e.Count, g.rng)
				g.logf("  %s draws %d", other.Name, len(drawn))
			}

		case cards.TopdeckFromDiscard:
			if len(p.Discard) > 0 {
				g.suspend(&pendingTopdeckFromDiscard{PlayerID: p.ID})
				result.Awaiting = "topdeck"
			}

		case cards.RevealTopMayPlay:
			g.revealTopMayPlay(p, result)

		case cards.GainTreasureTopdeckAttack:
			g.gainTreasureToDeck(p, e.Cost)
			result.Attack = g.resolveTopdeckAttack(p)

		case cards.RevealThenSort:
			g.revealForSorting(p, e.Count, result)
		}

		if g.pending != nil {
			break
		}
	}

	return result
}

func (g *Game) suspend(pa PendingAction) {
	g.pending = pa
	g.phase = pa.phase()
}

// resume clears the pending action. Control always returns to the action
// phase regardless of which phase the suspension began in.
func (g *Game) resume() {
	g.pending = nil
	g.phase = PhaseAction
}

// declareDiscardAttack hits every other player whose hand exceeds the
// threshold and who holds no blocking reaction. Targets are prompted one at
// a time, in turn order; the queue of later targets travels in the pending
// action so each is prompted after the previous one responds.
func (g *Game) declareDiscardAttack(attacker *Player, discardTo int) map[string]AttackOutcome {
	outcomes := make(map[string]AttackOutcome)

	for i, p := range g.opponentsOf(attacker) {
		if g.hasBlockReaction(p) {
			g.logf("  %s blocks the attack with a reaction card", p.Name)
			outcomes[p.ID] = AttackOutcome{Blocked: true}
			continue
		}
		if len(p.Hand) <= discardTo {
			outcomes[p.ID] = AttackOutcome{AlreadyUnder: true}
			continue
		}

		var remaining []string
		for _, later := range g.opponentsOf(attacker)[i+1:] {
			if len(later.Hand) > discardTo && !g.hasBlockReaction(later) {
				remaining = append(remaining, later.ID)
			}
		}
		g.suspend(&pendingAttackDiscard{
			TargetID:   p.ID,
			AttackerID: attacker.ID,
			DiscardTo:  discardTo,
			remaining:  remaining,
		})
		outcomes[p.ID] = AttackOutcome{MustDiscardTo: discardTo}
		break
	}

	return outcomes
}

// opponentsOf returns every other player in turn order starting from the
// seat after the attacker.
func (g *Game) opponentsOf(attacker *Player) []*Player {
	var out []*Player
	n := len(g.players)
	start := 0
	for i, p := range g.players {
		if p.ID == attacker.ID {
			start = i
			break
		}
	}
	for i := 1; i < n; i++ {
		out = append(out, g.players[(start+i)%n])
	}
	return out
}

func (g *Game) trashCheapestTreasure(p *Player, coins int) {
	cheapest := g.catalog.CheapestTreasureID()
	if cheapest == "" || !contains(p.Hand, cheapest) {
		g.logf("  nothing to trash")
		return
	}
	p.Hand, _ = removeCard(p.Hand, cheapest)
	g.trash = append(g.trash, cheapest)
	p.Coins += coins
	g.logf("  trashes %s for +%d coins", g.catalog.Name(cheapest), coins)
}

func (g *Game) revealTopMayPlay(p *Player, result *PlayResult) {
	top, ok := p.popDeckTop(g.rng)
	if !ok {
		return
	}
	p.Discard = append(p.Discard, top)
	g.logf("  reveals %s", g.catalog.Name(top))

	if card := g.catalog.Get(top); card != nil && card.Type == cards.TypeAction {
		g.suspend(&pendingPlayRevealed{PlayerID: p.ID, CardID: top})
		result.Awaiting = "replay_decision"
	} else {
		g.logf("  not an action card, it stays discarded")
	}
}

func (g *Game) gainTreasureToDeck(p *Player, cost int) {
	id := g.catalog.TreasureByCost(cost)
	if id == "" || g.supply[id] <= 0 {
		return
	}
	g.supply[id]--
	p.Deck = append(p.Deck, id)
	g.logf("  gains %s onto the deck", g.catalog.Name(id))
}

// resolveTopdeckAttack makes each unblocked opponent topdeck their cheapest
// victory card from hand. Fully deterministic: opponents are never
// prompted.
func (g *Game) resolveTopdeckAttack(attacker *Player) map[string]AttackOutcome {
	outcomes := make(map[string]AttackOutcome)

	for _, p := range g.opponentsOf(attacker) {
		if g.hasBlockReaction(p) {
			outcomes[p.ID] = AttackOutcome{Blocked: true}
			g.logf("  %s blocks the attack with a reaction card", p.Name)
			continue
		}
		chosen := ""
		chosenCost := 0
		for _, id := range p.Hand {
			card := g.catalog.Get(id)
			if card == nil || card.Type != cards.TypeVictory {
				continue
			}
			if chosen == "" || card.Cost < chosenCost {
				chosen, chosenCost = id, card.Cost
			}
		}
		if chosen == "" {
			outcomes[p.ID] = AttackOutcome{NoVictory: true}
			g.logf("  %s has no victory card to topdeck", p.Name)
			continue
		}
		p.Hand, _ = removeCard(p.Hand, chosen)
		p.Deck = append(p.Deck, chosen)
		outcomes[p.ID] = AttackOutcome{Topdecked: chosen}
		g.logf("  %s topdecks %s", p.Name, g.catalog.Name(chosen))
	}

	return outcomes
}

func (g *Game) revealForSorting(p *Player, count int, result *PlayResult) {
	var revealed []string
	for i := 0; i < count; i++ {
		top, ok := p.popDeckTop(g.rng)
		if !ok {
			break
		}
		revealed = append(revealed, top)
	}
	if len(revealed) == 0 {
		return
	}

	names := make([]string, len(revealed))
	for i, id := range revealed {
		names[i] = g.catalog.Name(id)
	}
	g.logf("  reveals %s", strings.Join(names, ", "))
	g.suspend(&pendingRevealSort{PlayerID: p.ID, Revealed: revealed})
	result.Awaiting = "reveal_decision"
}
