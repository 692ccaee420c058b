package events

import (
	"github.com/lazharichir/handreplay/hand"
	"github.com/shopspring/decimal"
)

// PhaseStarted is recorded when a street begins. Swept is false for the
// pseudo streets, which never close a betting round.
type PhaseStarted struct {
	HandID   string      `json:"handId"`
	Snapshot int         `json:"snapshot"`
	Street   hand.Street `json:"street"`
	Swept    bool        `json:"swept"`
}

func (e PhaseStarted) EventName() string { return "phase-started" }

// ActionApplied is recorded for every action that moved the replay forward.
type ActionApplied struct {
	HandID      string          `json:"handId"`
	Snapshot    int             `json:"snapshot"`
	Street      hand.Street     `json:"street"`
	ActionIndex int             `json:"actionIndex"`
	Player      string          `json:"player"`
	Kind        string          `json:"kind"`
	Label       string          `json:"label"`
	Amount      decimal.Decimal `json:"amount"`
	ChipsCapped bool            `json:"chipsCapped,omitempty"`
	AllIn       bool            `json:"allIn,omitempty"`
}

func (e ActionApplied) EventName() string { return "action-applied" }

// UnhandledActionKind is a diagnostic: the action was skipped and its snapshot
// carries no chip movement.
type UnhandledActionKind struct {
	HandID      string          `json:"handId"`
	Snapshot    int             `json:"snapshot"`
	Street      hand.Street     `json:"street"`
	ActionIndex int             `json:"actionIndex"`
	Player      string          `json:"player"`
	RawKind     string          `json:"rawKind"`
	Amount      decimal.Decimal `json:"amount"`
}

func (e UnhandledActionKind) EventName() string { return "unhandled-action-kind" }

// HandSettled is recorded once showdown amounts have been distributed.
// Refunded is the part of Returned that was already given back when an
// uncalled excess was swept.
type HandSettled struct {
	HandID     string                     `json:"handId"`
	Snapshot   int                        `json:"snapshot"`
	Collectees map[string]decimal.Decimal `json:"collectees"`
	Returned   map[string]decimal.Decimal `json:"returned"`
	Refunded   map[string]decimal.Decimal `json:"refunded"`
	Rake       decimal.Decimal            `json:"rake"`
}

func (e HandSettled) EventName() string { return "hand-settled" }
