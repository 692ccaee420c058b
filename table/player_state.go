package table

import (
	"github.com/lazharichir/handreplay/cards"
	"github.com/shopspring/decimal"
)

// PlayerState is one seat of a snapshot. Stack is what the player has left
// behind; Chips is what they have put out on the current street.
type PlayerState struct {
	Name      string          `json:"name"`
	Seat      int             `json:"seat"`
	Stack     decimal.Decimal `json:"stack"`
	Chips     decimal.Decimal `json:"chips"`
	HoleCards cards.Stack     `json:"holeCards"`
	Action    string          `json:"action,omitempty"`
	JustActed bool            `json:"justActed"`
	Folded    bool            `json:"folded,omitempty"`
	HandName  string          `json:"handName,omitempty"`
}

// NewPlayerState seats a player with their starting stack.
func NewPlayerState(name string, stack decimal.Decimal, seat int, hole cards.Stack) PlayerState {
	return PlayerState{
		Name:      name,
		Seat:      seat,
		Stack:     stack,
		Chips:     decimal.Zero,
		HoleCards: hole.Clone(),
	}
}

// IsAllIn reports a player with nothing left behind.
func (p PlayerState) IsAllIn() bool {
	return p.Stack.IsZero()
}

// InHand reports a player that has not folded.
func (p PlayerState) InHand() bool {
	return !p.Folded
}

func (p PlayerState) clone() PlayerState {
	p.HoleCards = p.HoleCards.Clone()
	return p
}
