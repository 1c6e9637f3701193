package game

import "errors"

// Engine errors are user-facing and recoverable: every one of them is an
// invalid-input rejection that leaves the game state untouched. The
// transport relays the message to the offending client verbatim.
var (
	ErrGameStarted    = errors.New("game already started")
	ErrGameNotStarted = errors.New("game has not started")
	ErrGameFull       = errors.New("game is full")
	ErrNeedPlayers    = errors.New("at least 2 players required")

	ErrNotYourTurn = errors.New("it is not your turn")
	ErrWrongPhase  = errors.New("that move is not allowed in the current phase")

	ErrUnknownCard      = errors.New("unknown card")
	ErrCardNotInHand    = errors.New("that card is not in your hand")
	ErrCardNotInDiscard = errors.New("that card is not in your discard pile")
	ErrNotActionCard    = errors.New("not an action card")
	ErrNotTreasureCard  = errors.New("not a treasure card")

	ErrNoActionsLeft  = errors.New("no actions remaining")
	ErrNoBuysLeft     = errors.New("no buys remaining")
	ErrNotEnoughCoins = errors.New("not enough coins")
	ErrSupplyEmpty    = errors.New("that supply pile is empty")
	ErrCostTooHigh    = errors.New("that card costs too much")

	ErrNoPendingAction  = errors.New("no matching decision is pending")
	ErrNotYourDecision  = errors.New("that decision is not yours to make")
	ErrSelectionCount   = errors.New("wrong number of cards selected")
	ErrDecisionMismatch = errors.New("decisions do not match the revealed cards")
	ErrUnknownDisposal  = errors.New("unknown disposal choice")
	ErrPlayerNotInGame  = errors.New("player is not in this game")
)
