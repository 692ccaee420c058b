// Package table rebuilds the state of a table one transition at a time.
//
// TableState is a value. Every transition works on a private copy and returns
// it, so snapshots already handed out never change.
package table

import (
	"fmt"
	"sort"

	"github.com/lazharichir/handreplay/cards"
	"github.com/lazharichir/handreplay/hand"
	"github.com/shopspring/decimal"
)

// BoardRun is the board dealt on one street.
type BoardRun struct {
	Street hand.Street `json:"street"`
	Cards  cards.Stack `json:"cards"`
}

// TableState is one snapshot of the table during a replay. Transitions take
// a value receiver and return a new state, so earlier snapshots never change.
// Bet is the amount to match on the current street; Called is what every
// remaining player has matched so far. AllIn is sticky for the whole hand.
type TableState struct {
	Street          hand.Street     `json:"street"`
	Pot             decimal.Decimal `json:"pot"`
	NewPot          decimal.Decimal `json:"newPot"`
	Bet             decimal.Decimal `json:"bet"`
	Called          decimal.Decimal `json:"called"`
	Board           []BoardRun      `json:"board"`
	AllInThisStreet bool            `json:"allInThisStreet"`
	AllIn           bool            `json:"allIn"`
	Capped          bool            `json:"capped,omitempty"`
	Settled         bool            `json:"settled"`
	Players         []PlayerState   `json:"players"`

	hand     *hand.Hand
	refunded map[string]decimal.Decimal
}

// New seats every player of h in seat order with their starting stack and the
// hole cards visible on the first street.
func New(h *hand.Hand) (TableState, error) {
	s := TableState{
		Pot:      decimal.Zero,
		NewPot:   decimal.Zero,
		Bet:      decimal.Zero,
		Called:   decimal.Zero,
		Board:    []BoardRun{},
		hand:     h,
		refunded: map[string]decimal.Decimal{},
	}
	if len(h.AllStreets) > 0 {
		s.Street = h.AllStreets[0]
	}

	players := append([]hand.Player(nil), h.Players...)
	sort.SliceStable(players, func(i, j int) bool { return players[i].Seat < players[j].Seat })

	s.Players = make([]PlayerState, 0, len(players))
	for _, p := range players {
		var hole cards.Stack
		if s.Street != "" {
			var err error
			hole, err = h.HoleCardsAt(p.Name, s.Street)
			if err != nil {
				return TableState{}, fmt.Errorf("failed to seat %s: %w", p.Name, err)
			}
		}
		s.Players = append(s.Players, NewPlayerState(p.Name, p.Stack, p.Seat, hole))
	}
	return s, nil
}

// Hand returns the hand this state was built from.
func (s TableState) Hand() *hand.Hand {
	return s.hand
}

func (s TableState) clone() TableState {
	c := s
	c.Players = make([]PlayerState, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.clone()
	}
	c.Board = make([]BoardRun, len(s.Board))
	for i, run := range s.Board {
		c.Board[i] = BoardRun{Street: run.Street, Cards: run.Cards.Clone()}
	}
	c.refunded = make(map[string]decimal.Decimal, len(s.refunded))
	for name, amount := range s.refunded {
		c.refunded[name] = amount
	}
	c.Capped = false
	return c
}

// Player looks a player up by name.
func (s TableState) Player(name string) (PlayerState, bool) {
	if i := s.indexOf(name); i >= 0 {
		return s.Players[i], true
	}
	return PlayerState{}, false
}

// PlayerAt returns the player at visual position i, counted in seat order.
func (s TableState) PlayerAt(i int) (PlayerState, bool) {
	if i < 0 || i >= len(s.Players) {
		return PlayerState{}, false
	}
	return s.Players[i], true
}

// BySeat returns the player sitting in seat.
func (s TableState) BySeat(seat int) (PlayerState, bool) {
	for _, p := range s.Players {
		if p.Seat == seat {
			return p, true
		}
	}
	return PlayerState{}, false
}

func (s TableState) indexOf(name string) int {
	for i, p := range s.Players {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Refunded is the uncalled excess already given back to name when a street
// was closed.
func (s TableState) Refunded(name string) decimal.Decimal {
	if amount, ok := s.refunded[name]; ok {
		return amount
	}
	return decimal.Zero
}

// AnyAllIn reports whether a player still in the hand has put every chip
// they sat down with into it. A seat that started with nothing is ignored.
func (s TableState) AnyAllIn() bool {
	for _, p := range s.Players {
		if p.InHand() && p.IsAllIn() && s.startedWithChips(p.Name) {
			return true
		}
	}
	return false
}

func (s TableState) startedWithChips(name string) bool {
	if s.hand == nil {
		return true
	}
	seated, ok := s.hand.Player(name)
	return ok && seated.Stack.IsPositive()
}

// MarkAllIn flags the hand as all-in for the rest of the replay.
func (s TableState) MarkAllIn() TableState {
	c := s.clone()
	c.AllIn = true
	return c
}

// StartPhase moves the table to street. Pseudo streets only relabel the
// table and report false. Real streets close the previous betting round:
// uncalled chips go back to their owner, the rest goes into the pot.
func (s TableState) StartPhase(street hand.Street) (TableState, bool, error) {
	if s.Settled {
		return s, false, ErrHandSettled
	}

	c := s.clone()
	c.Street = street
	for i := range c.Players {
		c.Players[i].JustActed = false
	}
	if c.hand != nil {
		if board := c.hand.Board[street]; len(board) > 0 {
			c.Board = append(c.Board, BoardRun{Street: street, Cards: board.Clone()})
		}
	}

	if err := c.dealStreet(street); err != nil {
		return s, false, err
	}

	if street.IsPseudo() {
		return c, false, nil
	}

	c.AllInThisStreet = false
	for i := range c.Players {
		p := &c.Players[i]
		if p.Chips.GreaterThan(c.Called) {
			excess := p.Chips.Sub(c.Called)
			p.Stack = p.Stack.Add(excess)
			p.Chips = c.Called
			c.refunded[p.Name] = c.Refunded(p.Name).Add(excess)
		}
		c.Pot = c.Pot.Add(p.Chips)
		p.Chips = decimal.Zero
	}
	c.Bet = decimal.Zero
	c.Called = decimal.Zero

	return c, true, nil
}

// dealStreet advances the visible hole cards of stud and draw games. A draw
// street opens with the hand held before the draw; the drawn cards show once
// the player discards or the hand is settled.
func (c *TableState) dealStreet(street hand.Street) error {
	if c.hand == nil {
		return nil
	}
	at := street
	switch c.hand.GameType.Base {
	case hand.BaseStud:
	case hand.BaseDraw:
		if !street.IsPseudo() {
			if prev, ok := c.hand.PreviousStreet(street); ok {
				at = prev
			}
		}
	default:
		return nil
	}
	for i := range c.Players {
		hole, err := c.hand.HoleCardsAt(c.Players[i].Name, at)
		if err != nil {
			return fmt.Errorf("failed to deal %s on %s: %w", c.Players[i].Name, street, err)
		}
		c.Players[i].HoleCards = hole
	}
	return nil
}

// ChipsInPlay is pot plus every stack and every wager, plus the rake once the
// hand is settled. It never changes during a replay.
func (s TableState) ChipsInPlay() decimal.Decimal {
	total := s.Pot
	for _, p := range s.Players {
		total = total.Add(p.Stack).Add(p.Chips)
	}
	if s.Settled && s.hand != nil {
		total = total.Add(s.hand.Rake)
	}
	return total
}

// Balanced reports whether ChipsInPlay equals the starting chips exactly.
func (s TableState) Balanced() bool {
	if s.hand == nil {
		return true
	}
	return s.ChipsInPlay().Equal(s.hand.StartingChips())
}
