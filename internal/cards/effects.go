package cards

import (
	"encoding/json"
	"fmt"
)

// Effect is one entry in a card's ordered effect list. The set of
// implementations is closed: the resolver type-switches over every kind and
// the loader rejects anything it does not know.
type Effect interface {
	effect()
}

// Draw draws N cards for the acting player.
type Draw struct{ Count int }

// AddActions grants N additional actions this turn.
type AddActions struct{ Count int }

// AddBuys grants N additional buys this turn.
type AddBuys struct{ Count int }

// AddCoins grants N coins this turn.
type AddCoins struct{ Count int }

// AttackDiscardTo forces every other player down to N hand cards.
type AttackDiscardTo struct{ HandSize int }

// DiscardDraw lets the acting player discard any number of hand cards and
// draw that many back.
type DiscardDraw struct{}

// GainUpTo lets the acting player gain a supply card costing at most
// MaxCost into their discard pile.
type GainUpTo struct{ MaxCost int }

// GainToHand lets the acting player gain a supply card costing at most
// MaxCost into their hand, then topdeck one hand card.
type GainToHand struct{ MaxCost int }

// TrashUpTo lets the acting player trash at most Max hand cards.
type TrashUpTo struct{ Max int }

// TrashThenGain trashes one hand card, then gains a card costing up to the
// trashed card's cost plus Bonus.
type TrashThenGain struct{ Bonus int }

// TrashTreasureGainTreasure trashes one treasure, then gains a treasure
// costing up to the trashed cost plus Bonus into hand.
type TrashTreasureGainTreasure struct{ Bonus int }

// TrashCheapestTreasure trashes the cheapest treasure in hand, if any, for
// Coins extra coins. Fully deterministic, never suspends.
type TrashCheapestTreasure struct{ Coins int }

// OpponentsDraw makes every other player draw N cards.
type OpponentsDraw struct{ Count int }

// TopdeckFromDiscard lets the acting player optionally move one discard-pile
// card to the top of their deck.
type TopdeckFromDiscard struct{}

// RevealTopMayPlay reveals the top deck card to the discard pile; if it is
// an action card the player may choose to play it.
type RevealTopMayPlay struct{}

// GainTreasureTopdeckAttack gains a treasure of exactly Cost onto the acting
// player's deck; each unblocked opponent topdecks their cheapest victory
// card from hand.
type GainTreasureTopdeckAttack struct{ Cost int }

// RevealThenSort reveals the top Count deck cards; the player then assigns
// each one to trash, discard, or deck top.
type RevealThenSort struct{ Count int }

func (Draw) effect()                      {}
func (AddActions) effect()                {}
func (AddBuys) effect()                   {}
func (AddCoins) effect()                  {}
func (AttackDiscardTo) effect()           {}
func (DiscardDraw) effect()               {}
func (GainUpTo) effect()                  {}
func (GainToHand) effect()                {}
func (TrashUpTo) effect()                 {}
func (TrashThenGain) effect()             {}
func (TrashTreasureGainTreasure) effect() {}
func (TrashCheapestTreasure) effect()     {}
func (OpponentsDraw) effect()             {}
func (TopdeckFromDiscard) effect()        {}
func (RevealTopMayPlay) effect()          {}
func (GainTreasureTopdeckAttack) effect() {}
func (RevealThenSort) effect()            {}

// rawEffect is the wire form of an effect entry in the card data file.
type rawEffect struct {
	Type   string `json:"type"`
	Amount int    `json:"amount"`
}

func parseEffect(raw rawEffect) (Effect, error) {
	switch raw.Type {
	case "draw":
		return Draw{Count: raw.Amount}, nil
	case "action":
		return AddActions{Count: raw.Amount}, nil
	case "buy":
		return AddBuys{Count: raw.Amount}, nil
	case "coin":
		return AddCoins{Count: raw.Amount}, nil
	case "attack_discard_to":
		return AttackDiscardTo{HandSize: raw.Amount}, nil
	case "discard_draw":
		return DiscardDraw{}, nil
	case "gain_card_up_to":
		return GainUpTo{MaxCost: raw.Amount}, nil
	case "gain_card_to_hand":
		return GainToHand{MaxCost: raw.Amount}, nil
	case "trash":
		return TrashUpTo{Max: raw.Amount}, nil
	case "trash_and_gain":
		return TrashThenGain{Bonus: raw.Amount}, nil
	case "trash_treasure_gain_treasure":
		return TrashTreasureGainTreasure{Bonus: raw.Amount}, nil
	case "trash_copper_for_coin":
		return TrashCheapestTreasure{Coins: raw.Amount}, nil
	case "opponents_draw":
		return OpponentsDraw{Count: raw.Amount}, nil
	case "topdeck_from_discard":
		return TopdeckFromDiscard{}, nil
	case "discard_top_play_action":
		return RevealTopMayPlay{}, nil
	case "gain_treasure_topdeck_attack_victory":
		return GainTreasureTopdeckAttack{Cost: raw.Amount}, nil
	case "reveal_trash_discard_topdeck":
		return RevealThenSort{Count: raw.Amount}, nil
	}
	return nil, fmt.Errorf("unknown effect type %q", raw.Type)
}

// MarshalJSON writes effects back out in the wire form so the catalog can be
// served to clients unchanged.
func marshalEffect(e Effect) rawEffect {
	switch v := e.(type) {
	case Draw:
		return rawEffect{Type: "draw", Amount: v.Count}
	case AddActions:
		return rawEffect{Type: "action", Amount: v.Count}
	case AddBuys:
		return rawEffect{Type: "buy", Amount: v.Count}
	case AddCoins:
		return rawEffect{Type: "coin", Amount: v.Count}
	case AttackDiscardTo:
		return rawEffect{Type: "attack_discard_to", Amount: v.HandSize}
	case DiscardDraw:
		return rawEffect{Type: "discard_draw"}
	case GainUpTo:
		return rawEffect{Type: "gain_card_up_to", Amount: v.MaxCost}
	case GainToHand:
		return rawEffect{Type: "gain_card_to_hand", Amount: v.MaxCost}
	case TrashUpTo:
		return rawEffect{Type: "trash", Amount: v.Max}
	case TrashThenGain:
		return rawEffect{Type: "trash_and_gain", Amount: v.Bonus}
	case TrashTreasureGainTreasure:
		return rawEffect{Type: "trash_treasure_gain_treasure", Amount: v.Bonus}
	case TrashCheapestTreasure:
		return rawEffect{Type: "trash_copper_for_coin", Amount: v.Coins}
	case OpponentsDraw:
		return rawEffect{Type: "opponents_draw", Amount: v.Count}
	case TopdeckFromDiscard:
		return rawEffect{Type: "topdeck_from_discard"}
	case RevealTopMayPlay:
		return rawEffect{Type: "discard_top_play_action"}
	case GainTreasureTopdeckAttack:
		return rawEffect{Type: "gain_treasure_topdeck_attack_victory", Amount: v.Cost}
	case RevealThenSort:
		return rawEffect{Type: "reveal_trash_discard_topdeck", Amount: v.Count}
	}
	panic(fmt.Sprintf("unhandled effect type %T", e))
}

// EffectList carries a card's ordered effects and round-trips the wire form.
type EffectList []Effect

func (l *EffectList) UnmarshalJSON(data []byte) error {
	var raws []rawEffect
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(EffectList, 0, len(raws))
	for _, raw := range raws {
		e, err := parseEffect(raw)
		if err != nil {
			return err
		}
		out = append(out, e)
	}
	*l = out
	return nil
}

func (l EffectList) MarshalJSON() ([]byte, error) {
	raws := make([]rawEffect, 0, len(l))
	for _, e := range l {
		raws = append(raws, marshalEffect(e))
	}
	return json.Marshal(raws)
}
