package game

import (
	"strings"
	"testing"

	"github.com/lazharichir/handreplay/hand"
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

// allInJSON: three-way pot with antes. A is all-in preflop, B and C build a
// side pot, C's turn bet goes uncalled and the board runs out.
const allInJSON = `{
  "id": "AI-1",
  "gametype": {"category": "holdem", "base": "hold", "limitType": "nl", "sb": "10", "bb": "20", "currency": "T$"},
  "maxSeats": 6,
  "allStreets": ["BLINDSANTES", "PREFLOP", "FLOP", "TURN", "RIVER"],
  "actions": {
    "BLINDSANTES": [
      {"player": "A", "kind": "ante", "amount": "5"},
      {"player": "B", "kind": "ante", "amount": "5"},
      {"player": "C", "kind": "ante", "amount": "5"},
      {"player": "A", "kind": "small blind", "amount": "10"},
      {"player": "B", "kind": "big blind", "amount": "20"}
    ],
    "PREFLOP": [
      {"player": "C", "kind": "raises", "amount": "40", "raiseTo": "60"},
      {"player": "A", "kind": "raises", "amount": "35", "raiseTo": "95", "allIn": true},
      {"player": "B", "kind": "calls", "amount": "75"},
      {"player": "C", "kind": "calls", "amount": "35"}
    ],
    "FLOP": [
      {"player": "B", "kind": "bets", "amount": "50"},
      {"player": "C", "kind": "calls", "amount": "50"}
    ],
    "TURN": [
      {"player": "B", "kind": "checks", "amount": "0"},
      {"player": "C", "kind": "bets", "amount": "100"},
      {"player": "B", "kind": "folds", "amount": "0"}
    ]
  },
  "players": [
    {"seat": 1, "name": "A", "stack": "100", "cards": {"PREFLOP": ["As", "Ad"]}},
    {"seat": 3, "name": "B", "stack": "300", "cards": {"PREFLOP": ["xx", "xx"]}},
    {"seat": 5, "name": "C", "stack": "500", "cards": {"PREFLOP": ["Kc", "Kd"]}}
  ],
  "board": {"FLOP": ["2c", "7h", "9d"], "TURN": ["Js"], "RIVER": ["3h"]},
  "collectees": {"A": "300", "C": "100"},
  "returned": {"C": "100"}
}`

func decodeHand(t *testing.T, raw string) *hand.Hand {
	t.Helper()
	h, err := hand.Decode(strings.NewReader(raw))
	require.NoError(t, err)
	return h
}
