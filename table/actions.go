package table

import (
	"github.com/lazharichir/handreplay/hand"
	"github.com/shopspring/decimal"
)

// ApplyAction returns the table after a. An unknown player is fatal and
// returns *MissingPlayerError. An unknown kind returns the relabelled table
// together with *UnhandledActionError; its chips are untouched.
func (s TableState) ApplyAction(a hand.Action) (TableState, error) {
	if s.Settled {
		return s, ErrHandSettled
	}
	i := s.indexOf(a.Player)
	if i < 0 {
		return s, &MissingPlayerError{Player: a.Player}
	}

	c := s.clone()
	for j := range c.Players {
		c.Players[j].JustActed = false
	}
	p := &c.Players[i]
	p.Action = a.Label()
	p.JustActed = true

	var err error
	switch a.Kind {
	case hand.ActionFold:
		p.Folded = true
	case hand.ActionCheck, hand.ActionStandPat:
	case hand.ActionBet, hand.ActionRaise:
		c.applyWager(p, a.Amount)
	case hand.ActionBigBlind:
		moved := c.commit(p, a.Amount)
		c.Bet = moved
		c.Called = moved
	case hand.ActionSmallBlind, hand.ActionSecondSmallBlind:
		c.commit(p, a.Amount)
		c.Called = decimal.Max(c.Called, p.Chips)
		c.Bet = decimal.Max(c.Bet, p.Chips)
	case hand.ActionCall, hand.ActionBothBlinds, hand.ActionBringIn:
		// Both blinds include the dead part; it stays in front of the
		// poster and is swept, never refunded.
		c.commit(p, a.Amount)
		c.Called = decimal.Max(c.Called, p.Chips)
	case hand.ActionAnte:
		moved := c.take(p, a.Amount)
		c.Pot = c.Pot.Add(moved)
	case hand.ActionDiscard:
		if len(a.Discarded) > 0 && c.hand != nil {
			if hole, herr := c.hand.HoleCardsAt(p.Name, c.Street); herr == nil && len(hole) > 0 {
				p.HoleCards = hole
			}
		}
	default:
		err = &UnhandledActionError{Player: a.Player, Kind: a.Tag()}
	}

	if p.Stack.IsZero() {
		c.AllInThisStreet = true
	}
	return c, err
}

// applyWager handles bets and raises. amount is the increment over the
// current bet; the player first matches the bet, then adds amount.
func (c *TableState) applyWager(p *PlayerState, amount decimal.Decimal) {
	if c.AllInThisStreet {
		c.Called = c.Bet
	} else {
		c.Called = decimal.Zero
	}
	diff := c.Bet.Sub(p.Chips)
	want := decimal.Max(amount.Add(diff), decimal.Zero)
	moved := c.take(p, want)
	p.Chips = p.Chips.Add(moved)
	if c.Capped {
		c.Bet = decimal.Max(c.Bet, p.Chips)
	} else {
		c.Bet = c.Bet.Add(amount)
	}
}

// commit moves amount from the player's stack in front of them.
func (c *TableState) commit(p *PlayerState, amount decimal.Decimal) decimal.Decimal {
	moved := c.take(p, amount)
	p.Chips = p.Chips.Add(moved)
	return moved
}

// take removes up to amount from the player's stack. Anything the stack
// cannot cover is dropped and flagged with Capped.
func (c *TableState) take(p *PlayerState, amount decimal.Decimal) decimal.Decimal {
	moved := amount
	if moved.GreaterThan(p.Stack) {
		moved = p.Stack
		c.Capped = true
	}
	p.Stack = p.Stack.Sub(moved)
	c.NewPot = c.NewPot.Add(moved)
	return moved
}
