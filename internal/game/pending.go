package game

// PendingAction records an in-flight multi-step effect awaiting player
// input. At most one exists at a time. Each variant knows which suspension
// phase it belongs to, which player it waits on, and how to project itself
// for clients without leaking internal bookkeeping.
type PendingAction interface {
	phase() Phase
	waitingOn() string
	clientView() *PendingView
}

// PendingView is the client-facing projection of a pending action. Only the
// fields relevant to the variant are populated; internal bookkeeping such
// as the remaining-attack-target queue is never included.
type PendingView struct {
	Type           string   `json:"type"`
	PlayerID       string   `json:"player_id,omitempty"`
	TargetPlayerID string   `json:"target_player_id,omitempty"`
	AttackerID     string   `json:"attacker_id,omitempty"`
	DiscardTo      int      `json:"discard_to,omitempty"`
	MaxCost        int      `json:"max_cost,omitempty"`
	MaxCards       int      `json:"max_cards,omitempty"`
	CostBonus      int      `json:"cost_bonus,omitempty"`
	RevealedCard   string   `json:"revealed_card,omitempty"`
	RevealedCards  []string `json:"revealed_cards,omitempty"`
}

// pendingAttackDiscard waits for one attack target to discard down to
// DiscardTo cards. remaining queues the targets still to be prompted, in
// turn order; both eligibility conditions are re-checked when each queued
// target comes up.
type pendingAttackDiscard struct {
	TargetID   string
	AttackerID string
	DiscardTo  int
	remaining  []string
}

func (p *pendingAttackDiscard) phase() Phase      { return PhaseDiscard }
func (p *pendingAttackDiscard) waitingOn() string { return p.TargetID }
func (p *pendingAttackDiscard) clientView() *PendingView {
	return &PendingView{
		Type:           "attack_discard",
		TargetPlayerID: p.TargetID,
		AttackerID:     p.AttackerID,
		DiscardTo:      p.DiscardTo,
	}
}

// pendingDiscardDraw waits for the acting player to nominate any subset of
// hand to discard; that many cards are drawn back on resolution.
type pendingDiscardDraw struct {
	PlayerID string
}

func (p *pendingDiscardDraw) phase() Phase      { return PhaseDiscard }
func (p *pendingDiscardDraw) waitingOn() string { return p.PlayerID }
func (p *pendingDiscardDraw) clientView() *PendingView {
	return &PendingView{Type: "discard_draw", PlayerID: p.PlayerID}
}

// pendingGain waits for the acting player to pick an in-supply card costing
// at most MaxCost. The flags select the variant: gain to hand vs discard,
// treasures only, and whether a topdeck selection chains afterwards.
type pendingGain struct {
	PlayerID     string
	MaxCost      int
	ToHand       bool
	TreasureOnly bool
	ThenTopdeck  bool
}

func (p *pendingGain) phase() Phase      { return PhaseGain }
func (p *pendingGain) waitingOn() string { return p.PlayerID }
func (p *pendingGain) typeTag() string {
	switch {
	case p.TreasureOnly:
		return "gain_treasure_to_hand"
	case p.ToHand:
		return "gain_to_hand"
	}
	return "gain"
}
func (p *pendingGain) clientView() *PendingView {
	return &PendingView{Type: p.typeTag(), PlayerID: p.PlayerID, MaxCost: p.MaxCost}
}

// pendingTrash waits for the acting player to pick up to MaxCards hand
// cards to trash.
type pendingTrash struct {
	PlayerID string
	MaxCards int
}

func (p *pendingTrash) phase() Phase      { return PhaseTrash }
func (p *pendingTrash) waitingOn() string { return p.PlayerID }
func (p *pendingTrash) clientView() *PendingView {
	return &PendingView{Type: "trash", PlayerID: p.PlayerID, MaxCards: p.MaxCards}
}

// pendingTrashThenGain is stage one of the trash-then-gain sub-machine:
// exactly one hand card is trashed, then the resolver installs a
// pendingGain bounded by the trashed cost plus CostBonus.
type pendingTrashThenGain struct {
	PlayerID  string
	CostBonus int
	// TreasureOnly restricts both the trashed and the gained card to
	// treasures, and sends the gain to hand.
	TreasureOnly bool
}

func (p *pendingTrashThenGain) phase() Phase      { return PhaseTrash }
func (p *pendingTrashThenGain) waitingOn() string { return p.PlayerID }
func (p *pendingTrashThenGain) clientView() *PendingView {
	tag := "trash_and_gain"
	if p.TreasureOnly {
		tag = "trash_treasure_gain_treasure"
	}
	return &PendingView{Type: tag, PlayerID: p.PlayerID, CostBonus: p.CostBonus}
}

// pendingTopdeckFromHand waits for the acting player to move one hand card
// to the top of their deck. Declining is not allowed.
type pendingTopdeckFromHand struct {
	PlayerID string
}

func (p *pendingTopdeckFromHand) phase() Phase      { return PhaseTopdeck }
func (p *pendingTopdeckFromHand) waitingOn() string { return p.PlayerID }
func (p *pendingTopdeckFromHand) clientView() *PendingView {
	return &PendingView{Type: "topdeck_from_hand", PlayerID: p.PlayerID}
}

// pendingTopdeckFromDiscard waits for the acting player to optionally move
// one discard-pile card to the top of their deck. Declining is legal.
type pendingTopdeckFromDiscard struct {
	PlayerID string
}

func (p *pendingTopdeckFromDiscard) phase() Phase      { return PhaseTopdeck }
func (p *pendingTopdeckFromDiscard) waitingOn() string { return p.PlayerID }
func (p *pendingTopdeckFromDiscard) clientView() *PendingView {
	return &PendingView{Type: "topdeck_from_discard", PlayerID: p.PlayerID}
}

// pendingPlayRevealed waits for a yes/no decision on replaying a revealed
// action card that currently sits in the player's discard pile.
type pendingPlayRevealed struct {
	PlayerID string
	CardID   string
}

func (p *pendingPlayRevealed) phase() Phase      { return PhaseReveal }
func (p *pendingPlayRevealed) waitingOn() string { return p.PlayerID }
func (p *pendingPlayRevealed) clientView() *PendingView {
	return &PendingView{Type: "play_revealed_action", PlayerID: p.PlayerID, RevealedCard: p.CardID}
}

// pendingRevealSort waits for a trash/discard/topdeck decision for every
// revealed card. Decisions are validated as a multiset against Revealed,
// so duplicate card ids are legal.
type pendingRevealSort struct {
	PlayerID string
	Revealed []string
}

func (p *pendingRevealSort) phase() Phase      { return PhaseReveal }
func (p *pendingRevealSort) waitingOn() string { return p.PlayerID }
func (p *pendingRevealSort) clientView() *PendingView {
	return &PendingView{Type: "reveal_trash_discard_topdeck", PlayerID: p.PlayerID, RevealedCards: p.Revealed}
}
