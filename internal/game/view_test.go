package game

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewHidesOtherHands(t *testing.T) {
	g := newStartedGame(t)

	v := g.View("p1")
	require.Len(t, v.Players, 2)

	var mine, theirs PlayerView
	for _, pv := range v.Players {
		if pv.ID == "p1" {
			mine = pv
		} else {
			theirs = pv
		}
	}

	assert.Len(t, mine.Hand, 5)
	assert.Empty(t, theirs.Hand, "other players' hands are exposed only as counts")
	assert.Equal(t, 5, theirs.HandCount)
	assert.Equal(t, 5, theirs.DeckCount)
	assert.Empty(t, theirs.DiscardPile)

	spectator := g.View("")
	for _, pv := range spectator.Players {
		assert.Empty(t, pv.Hand)
	}
}

func TestViewExposesDiscardDuringTopdeckDecision(t *testing.T) {
	g := newStartedGame(t)
	p := g.players[0]
	setHand(p, "harbinger")
	p.Discard = []string{"silver", "estate"}

	_, err := g.PlayAction("p1", "harbinger")
	require.NoError(t, err)

	v := g.View("p1")
	require.Equal(t, []string{"silver", "estate"}, v.Players[0].DiscardPile)

	// Only the deciding player sees the pile contents.
	v2 := g.View("p2")
	assert.Empty(t, v2.Players[0].DiscardPile)
}

func TestViewOmitsAttackQueue(t *testing.T) {
	g := newStartedGame3(t)
	setHand(g.players[0], "militia")

	_, err := g.PlayAction("p1", "militia")
	require.NoError(t, err)
	require.IsType(t, &pendingAttackDiscard{}, g.pending)

	v := g.View("p2")
	require.NotNil(t, v.Pending)
	assert.Equal(t, "attack_discard", v.Pending.Type)
	assert.Equal(t, "p2", v.Pending.TargetPlayerID)
	assert.Equal(t, 3, v.Pending.DiscardTo)

	// The remaining-target queue is internal bookkeeping and must never
	// reach a client payload.
	raw, err := json.Marshal(v.Pending)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "remaining")
}

func TestViewTruncatesLog(t *testing.T) {
	g := newStartedGame(t)
	for i := 0; i < 100; i++ {
		g.logf("line %d", i)
	}

	v := g.View("p1")
	require.Len(t, v.Log, logTail)
	assert.Equal(t, fmt.Sprintf("line %d", 99), v.Log[len(v.Log)-1])
}

func TestViewIncludesScoresAtGameOver(t *testing.T) {
	g := newStartedGame(t)

	v := g.View("p1")
	assert.Empty(t, v.Scores)

	g.supply["province"] = 0
	g.phase = PhaseBuy
	require.NoError(t, g.EndTurn("p1"))
	require.Equal(t, PhaseGameOver, g.phase)

	v = g.View("p1")
	require.Len(t, v.Scores, 2)
	// Each starting deck holds three estates.
	assert.Equal(t, 3, v.Scores[0].Points)
	assert.Equal(t, 3, v.Scores[1].Points)
}

func TestSummary(t *testing.T) {
	g := newStartedGame(t)
	s := g.Summary()
	assert.Equal(t, "test", s.GameID)
	assert.True(t, s.Started)
	assert.Equal(t, PhaseAction, s.Phase)
	require.Len(t, s.Players, 2)
	assert.Equal(t, "Alice", s.Players[0].Name)
}
