// Package hand holds the already-parsed hand a replay is built from.
package hand

import (
	"encoding/json"
	"errors"

	"github.com/lazharichir/handreplay/cards"
	"github.com/shopspring/decimal"
)

// Base is the family a game category belongs to.
type Base string

const (
	BaseHold Base = "hold"
	BaseStud Base = "stud"
	BaseDraw Base = "draw"
)

// GameType describes the game and its stakes. Category is the parser's game
// name (holdem, omahahi, razz, 27_3draw...).
type GameType struct {
	Category   string          `json:"category"`
	Base       Base            `json:"base"`
	LimitType  string          `json:"limitType"`
	SmallBlind decimal.Decimal `json:"sb"`
	BigBlind   decimal.Decimal `json:"bb"`
	Currency   string          `json:"currency"`
}

// Player is a seated player with the stack they started the hand with.
// StreetCards holds the cards dealt to them on each street.
type Player struct {
	Seat        int                    `json:"seat"`
	Name        string                 `json:"name"`
	Stack       decimal.Decimal        `json:"stack"`
	StreetCards map[Street]cards.Stack `json:"cards,omitempty"`

	missingStack bool
}

type playerJSON struct {
	Seat        int                    `json:"seat"`
	Name        string                 `json:"name"`
	Stack       *decimal.Decimal       `json:"stack"`
	StreetCards map[Street]cards.Stack `json:"cards,omitempty"`
}

func (p *Player) UnmarshalJSON(data []byte) error {
	var raw playerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Player{Seat: raw.Seat, Name: raw.Name, StreetCards: raw.StreetCards}
	if raw.Stack == nil {
		p.missingStack = true
	} else {
		p.Stack = *raw.Stack
	}
	return nil
}

// Hand is one fully parsed hand. The replay engine borrows it and never
// writes to it.
type Hand struct {
	ID         string                     `json:"id"`
	GameType   GameType                   `json:"gametype"`
	MaxSeats   int                        `json:"maxSeats"`
	Hero       string                     `json:"hero,omitempty"`
	AllStreets []Street                   `json:"allStreets"`
	Actions    map[Street][]Action        `json:"actions"`
	Players    []Player                   `json:"players"`
	Board      map[Street]cards.Stack     `json:"board,omitempty"`
	Collectees map[string]decimal.Decimal `json:"collectees,omitempty"`
	Returned   map[string]decimal.Decimal `json:"returned,omitempty"`
	Rake       decimal.Decimal            `json:"rake,omitzero"`
}

var ErrNoSuchStreet = errors.New("street not in hand")

// StartingChips is the exact sum of every starting stack.
func (h *Hand) StartingChips() decimal.Decimal {
	total := decimal.Zero
	for _, p := range h.Players {
		total = total.Add(p.Stack)
	}
	return total
}

// Player looks a seated player up by name.
func (h *Hand) Player(name string) (Player, bool) {
	for _, p := range h.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

func (h *Hand) streetIndex(street Street) int {
	for i, s := range h.AllStreets {
		if s == street {
			return i
		}
	}
	return -1
}

// PreviousStreet returns the street before street, or false on the first one.
func (h *Hand) PreviousStreet(street Street) (Street, bool) {
	i := h.streetIndex(street)
	if i < 1 {
		return "", false
	}
	return h.AllStreets[i-1], true
}

// HoleCardsAt returns the cards visible for name once street has been dealt.
//
// Hold games show the dealt hole cards throughout. Stud accumulates every
// street's cards up to street. Draw games show the most recent hand recorded
// at or before street.
func (h *Hand) HoleCardsAt(name string, street Street) (cards.Stack, error) {
	p, ok := h.Player(name)
	if !ok {
		return nil, errors.New("no such player: " + name)
	}
	upTo := h.streetIndex(street)
	if upTo < 0 {
		return nil, ErrNoSuchStreet
	}

	switch h.GameType.Base {
	case BaseStud:
		var hole cards.Stack
		for _, s := range h.AllStreets[:upTo+1] {
			hole = append(hole, p.StreetCards[s]...)
		}
		return hole, nil
	case BaseDraw:
		for i := upTo; i >= 0; i-- {
			if c := p.StreetCards[h.AllStreets[i]]; len(c) > 0 {
				return c.Clone(), nil
			}
		}
		return nil, nil
	default:
		for _, s := range h.AllStreets {
			if c := p.StreetCards[s]; len(c) > 0 {
				return c.Clone(), nil
			}
		}
		return nil, nil
	}
}
