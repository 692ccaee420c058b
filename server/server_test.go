package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lazharichir/handreplay/config"
	"github.com/lazharichir/handreplay/server/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// headsUpJSON: blinds 5/10, limp, check, P1 bets the flop and P2 folds.
const headsUpJSON = `{
  "id": "HU-1",
  "gametype": {"category": "holdem", "base": "hold", "limitType": "nl", "sb": "5", "bb": "10", "currency": "USD"},
  "maxSeats": 2,
  "hero": "P1",
  "allStreets": ["BLINDSANTES", "PREFLOP", "FLOP", "TURN", "RIVER"],
  "actions": {
    "BLINDSANTES": [
      {"player": "P1", "kind": "small blind", "amount": "5"},
      {"player": "P2", "kind": "big blind", "amount": "10"}
    ],
    "PREFLOP": [
      {"player": "P1", "kind": "calls", "amount": "5"},
      {"player": "P2", "kind": "checks", "amount": "0"}
    ],
    "FLOP": [
      {"player": "P1", "kind": "bets", "amount": "20"},
      {"player": "P2", "kind": "folds", "amount": "0"}
    ]
  },
  "players": [
    {"seat": 1, "name": "P1", "stack": "1000", "cards": {"PREFLOP": ["As", "Kd"]}},
    {"seat": 2, "name": "P2", "stack": "1000", "cards": {"PREFLOP": ["xx", "xx"]}}
  ],
  "board": {"FLOP": ["2c", "7h", "Td"]},
  "collectees": {"P1": "20"},
  "returned": {"P1": "20"}
}`

const headsUpSnapshots = 11

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.AllowedOrigin = "*"
	s := NewServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return s, ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

type replayBody struct {
	HandID      string                 `json:"handId"`
	Streets     []string               `json:"streets"`
	Snapshots   []json.RawMessage      `json:"snapshots"`
	Diagnostics []events.EventEnvelope `json:"diagnostics"`
	Seats       []Seat                 `json:"seats"`
}

func TestPostReplay(t *testing.T) {
	_, ts := newTestServer(t)

	resp := post(t, ts.URL+"/api/replay", headsUpJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var body replayBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "HU-1", body.HandID)
	assert.Len(t, body.Snapshots, headsUpSnapshots)
	assert.Equal(t, []string{"BLINDSANTES", "PREFLOP", "FLOP"}, body.Streets)
	assert.Empty(t, body.Diagnostics)

	require.Len(t, body.Seats, 2)
	assert.Equal(t, "P1", body.Seats[0].Name)
	assert.InDelta(t, 0.5, body.Seats[0].At.X, 1e-9)
	assert.InDelta(t, 1.0, body.Seats[0].At.Y, 1e-9, "the hero sits at the bottom")
	assert.InDelta(t, 0.0, body.Seats[1].At.Y, 1e-9)
}

func TestPostReplayReportsUnhandledKinds(t *testing.T) {
	_, ts := newTestServer(t)

	withUnknown := strings.Replace(headsUpJSON,
		`{"player": "P2", "kind": "checks", "amount": "0"}`,
		`{"player": "P2", "kind": "checks", "amount": "0"}, {"player": "P2", "kind": "shows", "amount": "0"}`, 1)

	resp := post(t, ts.URL+"/api/replay", withUnknown)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body replayBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Diagnostics, 1)
	assert.Equal(t, "unhandled-action-kind", body.Diagnostics[0].Name)
	assert.Contains(t, string(body.Diagnostics[0].Payload), `"shows"`)
}

func TestPostReplayErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{
			name:   "not json",
			body:   `{"id":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed hand",
			body:   strings.Replace(headsUpJSON, `"maxSeats": 2`, `"maxSeats": 0`, 1),
			status: http.StatusBadRequest,
		},
		{
			name:   "action by a player not at the table",
			body:   strings.Replace(headsUpJSON, `{"player": "P2", "kind": "folds"`, `{"player": "P9", "kind": "folds"`, 1),
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "chips not conserved",
			body:   strings.Replace(headsUpJSON, `"collectees": {"P1": "20"}`, `"collectees": {"P1": "25"}`, 1),
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newTestServer(t)

			resp := post(t, ts.URL+"/api/replay", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			var payload events.ErrorPayload
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
			assert.NotEmpty(t, payload.Message)
		})
	}
}

func TestPostICM(t *testing.T) {
	_, ts := newTestServer(t)

	resp := post(t, ts.URL+"/api/icm", `{"stacks": ["300", "200", "100"], "payouts": ["0.5", "0.3", "0.2"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Equities []string `json:"equities"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"0.385", "0.34", "0.275"}, body.Equities)

	resp = post(t, ts.URL+"/api/icm", `{"stacks": [], "payouts": ["1"]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetReplayEvents(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/replays/HU-1/events")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	post(t, ts.URL+"/api/replay", headsUpJSON)

	resp, err = http.Get(ts.URL + "/api/replays/HU-1/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelopes []events.EventEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelopes))
	require.NotEmpty(t, envelopes)
	assert.Equal(t, "phase-started", envelopes[0].Name)
	assert.Equal(t, "hand-settled", envelopes[len(envelopes)-1].Name)
}

func TestPreflight(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/replay", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func dial(t *testing.T, s *Server, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return s.connMgr.Count() == 1 }, time.Second, 5*time.Millisecond)
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) events.EventEnvelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env events.EventEnvelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func TestWebSocketReplay(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dial(t, s, ts)

	var cmd bytes.Buffer
	cmd.WriteString(`{"name": "replay", "hand": `)
	cmd.WriteString(headsUpJSON)
	cmd.WriteString(`}`)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, cmd.Bytes()))

	for i := 0; i < headsUpSnapshots; i++ {
		env := readEnvelope(t, conn)
		require.Equal(t, events.NameSnapshot, env.Name)

		var payload struct {
			HandID string `json:"handId"`
			Index  int    `json:"index"`
		}
		require.NoError(t, json.Unmarshal(env.Payload, &payload))
		assert.Equal(t, "HU-1", payload.HandID)
		assert.Equal(t, i, payload.Index)
	}

	env := readEnvelope(t, conn)
	require.Equal(t, events.NameReplayCompleted, env.Name)
	var completed events.CompletedPayload
	require.NoError(t, json.Unmarshal(env.Payload, &completed))
	assert.Equal(t, headsUpSnapshots, completed.Snapshots)
}

func TestWebSocketErrors(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dial(t, s, ts)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"name": "deal"}`)))
	env := readEnvelope(t, conn)
	require.Equal(t, events.NameError, env.Name)
	assert.Contains(t, string(env.Payload), "unknown command")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"name": "icm", "stacks": ["10", "10"], "payouts": ["1"]}`)))
	env = readEnvelope(t, conn)
	require.Equal(t, events.NameEquities, env.Name)
	assert.JSONEq(t, `{"equities": ["0.5", "0.5"]}`, string(env.Payload))
}

func TestCheckOrigin(t *testing.T) {
	cfg := config.Default()
	cfg.AllowedOrigin = "http://viewer.local"
	s := NewServer(cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, s.checkOrigin(req), "requests without an origin are allowed")

	req.Header.Set("Origin", "http://viewer.local")
	assert.True(t, s.checkOrigin(req))

	req.Header.Set("Origin", "http://elsewhere.local")
	assert.False(t, s.checkOrigin(req))
}
