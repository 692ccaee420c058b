package table

import (
	"sort"

	"github.com/lazharichir/handreplay/cards"
	"github.com/lazharichir/handreplay/hand"
	"github.com/lazharichir/handreplay/showdown"
	"github.com/shopspring/decimal"
)

// SettleHand is the last transition of a replay. Every wager goes to the pot
// and the pot is emptied; winners get their collected amount in front of them
// and uncalled chips not already refunded go back to their stacks.
func (s TableState) SettleHand(collectees, returned map[string]decimal.Decimal) (TableState, error) {
	if s.Settled {
		return s, ErrHandSettled
	}

	c := s.clone()
	for i := range c.Players {
		p := &c.Players[i]
		c.Pot = c.Pot.Add(p.Chips)
		p.Chips = decimal.Zero
		p.JustActed = false
	}
	c.Pot = decimal.Zero
	c.Bet = decimal.Zero
	c.Called = decimal.Zero

	if h := c.hand; h != nil && h.GameType.Base == hand.BaseDraw && len(h.AllStreets) > 0 {
		last := h.AllStreets[len(h.AllStreets)-1]
		for i := range c.Players {
			if hole, err := h.HoleCardsAt(c.Players[i].Name, last); err == nil && len(hole) > 0 {
				c.Players[i].HoleCards = hole
			}
		}
	}

	for _, name := range sortedNames(collectees) {
		i := c.indexOf(name)
		if i < 0 {
			return s, &MissingPlayerError{Player: name}
		}
		p := &c.Players[i]
		p.Chips = p.Chips.Add(collectees[name])
		p.Action = "collected"
		p.JustActed = true
	}

	for _, name := range sortedNames(returned) {
		i := c.indexOf(name)
		if i < 0 {
			return s, &MissingPlayerError{Player: name}
		}
		owed := returned[name].Sub(c.Refunded(name))
		if owed.IsPositive() {
			p := &c.Players[i]
			p.Stack = p.Stack.Add(owed)
			c.refunded[name] = c.Refunded(name).Add(owed)
		}
	}

	c.describeHands()
	c.Settled = true
	return c, nil
}

// describeHands names the made hand of every player still in with known cards.
func (c *TableState) describeHands() {
	if c.hand == nil {
		return
	}
	board := c.FullBoard()
	for i := range c.Players {
		p := &c.Players[i]
		if !p.InHand() || !p.HoleCards.Known() {
			continue
		}
		name, err := showdown.Describe(c.hand.GameType.Category, c.hand.GameType.Base, p.HoleCards, board)
		if err == nil {
			p.HandName = name
		}
	}
}

// FullBoard returns the first run of community cards, street by street.
// A second run of a run-it-twice hand is left out.
func (s TableState) FullBoard() cards.Stack {
	var board cards.Stack
	for _, run := range s.Board {
		switch run.Street {
		case hand.StreetFlop2, hand.StreetTurn2, hand.StreetRiver2:
			continue
		}
		board = append(board, run.Cards...)
	}
	return board
}

func sortedNames(m map[string]decimal.Decimal) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
