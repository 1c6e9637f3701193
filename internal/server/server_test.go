package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovereign-game/sovereign-server/internal/cards"
	"github.com/sovereign-game/sovereign-server/internal/room"
)

func testServer(t *testing.T) (*Server, *room.Manager) {
	t.Helper()
	catalog, err := cards.Load("../../data/cards.json")
	require.NoError(t, err)
	rooms := room.NewManager(catalog, nil)
	return New(rooms, catalog, nil, "", nil), rooms
}

func TestCreateListAndGetGame(t *testing.T) {
	s, _ := testServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/games", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	gameID := created["game_id"]
	require.Len(t, gameID, 8)

	resp, err = http.Get(srv.URL + "/api/games")
	require.NoError(t, err)
	defer resp.Body.Close()
	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, gameID, list[0]["game_id"])

	resp, err = http.Get(srv.URL + "/api/games/" + gameID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var state map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, "waiting", state["phase"])

	resp, err = http.Get(srv.URL + "/api/games/missing1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCardsEndpoint(t *testing.T) {
	s, _ := testServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/cards")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Contains(t, doc, "cards")
	assert.Contains(t, doc, "supply_setup")
}

// readUntilType drains messages until one of the wanted type arrives.
func readUntilType(t *testing.T, conn *websocket.Conn, wanted string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))
	for {
		var msg map[string]any
		require.NoError(t, conn.ReadJSON(&msg))
		if msg["type"] == wanted {
			return msg
		}
	}
}

// readStateUntilPhase drains state broadcasts until the game reaches the
// given phase, skipping stale ones queued by earlier joins.
func readStateUntilPhase(t *testing.T, conn *websocket.Conn, phase string) map[string]any {
	t.Helper()
	for {
		msg := readUntilType(t, conn, "state")
		payload := msg["state"].(map[string]any)
		if payload["phase"] == phase {
			return payload
		}
	}
}

func dialRoom(t *testing.T, srv *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + gameID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn
}

func TestWebsocketJoinAndStart(t *testing.T) {
	s, rooms := testServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	g := rooms.Create(nil)

	alice := dialRoom(t, srv, g.ID())
	defer alice.Close()
	require.NoError(t, alice.WriteJSON(map[string]any{"action": "join", "name": "Alice"}))
	joined := readUntilType(t, alice, "joined")
	assert.Equal(t, g.ID(), joined["game_id"])
	require.NotEmpty(t, joined["player_id"])

	// Starting alone is rejected with an engine error.
	require.NoError(t, alice.WriteJSON(map[string]any{"action": "start"}))
	errMsg := readUntilType(t, alice, "error")
	assert.NotEmpty(t, errMsg["message"])

	bob := dialRoom(t, srv, g.ID())
	defer bob.Close()
	require.NoError(t, bob.WriteJSON(map[string]any{"action": "join", "name": "Bob"}))
	readUntilType(t, bob, "joined")

	require.NoError(t, bob.WriteJSON(map[string]any{"action": "start"}))
	payload := readStateUntilPhase(t, bob, "action")
	assert.Equal(t, true, payload["started"])

	// Alice receives the same broadcast.
	payload = readStateUntilPhase(t, alice, "action")
	players := payload["players"].([]any)
	require.Len(t, players, 2)
}

func TestWebsocketRequiresJoin(t *testing.T) {
	s, rooms := testServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	g := rooms.Create(nil)
	conn := dialRoom(t, srv, g.ID())
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]any{"action": "end_turn"}))
	msg := readUntilType(t, conn, "error")
	assert.Equal(t, "join the game first", msg["message"])
}

func TestWebsocketUnknownRoom(t *testing.T) {
	s, _ := testServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/missing1"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
