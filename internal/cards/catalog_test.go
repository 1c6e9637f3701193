package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalSet = `{
  "cards": [
    { "id": "coin1", "name": "Penny", "type": "treasure", "cost": 0, "coin_value": 1 },
    { "id": "coin2", "name": "Crown", "type": "treasure", "cost": 3, "coin_value": 2 },
    { "id": "land1", "name": "Field", "type": "victory", "cost": 2, "victory_points": 1 },
    { "id": "land2", "name": "Realm", "type": "victory", "cost": 8, "victory_points": 6 },
    { "id": "act1", "name": "Scout", "type": "action", "cost": 3,
      "effects": [ { "type": "draw", "amount": 2 }, { "type": "action", "amount": 1 } ] },
    { "id": "act2", "name": "Shield", "type": "action", "cost": 2, "reaction": "block_attack",
      "effects": [ { "type": "draw", "amount": 2 } ] }
  ],
  "starting_deck": { "coin1": 7, "land1": 3 },
  "supply_setup": {
    "always": ["coin1", "coin2", "land1", "land2"],
    "pile_sizes": { "coin1": 40, "default_action": 10 }
  },
  "game_end_conditions": { "capstone_empty": true }
}`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(minimalSet))
	require.NoError(t, err)

	scout := c.Get("act1")
	require.NotNil(t, scout)
	assert.Equal(t, "Scout", scout.Name)
	assert.Equal(t, TypeAction, scout.Type)
	require.Len(t, scout.Effects, 2)
	assert.Equal(t, Draw{Count: 2}, scout.Effects[0])
	assert.Equal(t, AddActions{Count: 1}, scout.Effects[1])

	assert.True(t, c.Get("act2").BlocksAttacks())
	assert.False(t, scout.BlocksAttacks())

	assert.Nil(t, c.Get("missing"))
	assert.Equal(t, "missing", c.Name("missing"))
	assert.Equal(t, "Penny", c.Name("coin1"))
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte(minimalSet))
	require.NoError(t, err)

	assert.Equal(t, defaultKingdomCount, c.SupplySetup().KingdomCount)
	assert.Equal(t, defaultEmptyPiles, c.EndConditions().EmptyPiles)
	assert.True(t, c.EndConditions().CapstoneEmpty)

	assert.Equal(t, 40, c.PileSize("coin1"))
	assert.Equal(t, 10, c.PileSize("act1"), "falls back to default_action")
}

func TestCatalogLookups(t *testing.T) {
	c, err := Parse([]byte(minimalSet))
	require.NoError(t, err)

	assert.Equal(t, "land2", c.CapstoneID(), "highest-cost victory card")
	assert.Equal(t, "coin1", c.CheapestTreasureID())
	assert.Equal(t, "coin2", c.TreasureByCost(3))
	assert.Equal(t, "", c.TreasureByCost(5))
	assert.ElementsMatch(t, []string{"land1", "land2"}, c.VictoryIDs())
	assert.ElementsMatch(t, []string{"act1", "act2"}, c.ActionIDs())
}

func TestParseRejectsBadData(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty", `{}`},
		{"unknown effect", `{"cards":[{"id":"x","name":"X","type":"action","effects":[{"type":"explode","amount":1}]}]}`},
		{"unknown type", `{"cards":[{"id":"x","name":"X","type":"artifact"}]}`},
		{"unknown reaction", `{"cards":[{"id":"x","name":"X","type":"action","reaction":"dodge"}]}`},
		{"duplicate id", `{"cards":[{"id":"x","name":"X","type":"action"},{"id":"x","name":"X2","type":"action"}]}`},
		{"missing id", `{"cards":[{"name":"X","type":"action"}]}`},
		{"unknown starting card", `{"cards":[{"id":"x","name":"X","type":"action"}],"starting_deck":{"y":3}}`},
		{"unknown supply card", `{"cards":[{"id":"x","name":"X","type":"action"}],"supply_setup":{"always":["y"]}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadDefaultSet(t *testing.T) {
	c, err := Load("../../data/cards.json")
	require.NoError(t, err)

	assert.Equal(t, "province", c.CapstoneID())
	assert.Equal(t, "copper", c.CheapestTreasureID())
	assert.Equal(t, "silver", c.TreasureByCost(3))
	assert.Len(t, c.ActionIDs(), 20)
	assert.Equal(t, 7, c.StartingDeck()["copper"])
	assert.Equal(t, 3, c.StartingDeck()["estate"])
}

func TestEffectListRoundTrip(t *testing.T) {
	c, err := Parse([]byte(minimalSet))
	require.NoError(t, err)

	data, err := c.Get("act1").Effects.MarshalJSON()
	require.NoError(t, err)

	var back EffectList
	require.NoError(t, back.UnmarshalJSON(data))
	assert.Equal(t, c.Get("act1").Effects, back)
}
