package hand

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lazharichir/handreplay/cards"
	"github.com/shopspring/decimal"
)

// ActionKind is the tag of a recorded action.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionFold
	ActionCheck
	ActionCall
	ActionBet
	ActionRaise
	ActionSmallBlind
	ActionBigBlind
	ActionSecondSmallBlind
	ActionBothBlinds
	ActionAnte
	ActionBringIn
	ActionDiscard
	ActionStandPat
)

var actionKindNames = map[ActionKind]string{
	ActionFold:             "folds",
	ActionCheck:            "checks",
	ActionCall:             "calls",
	ActionBet:              "bets",
	ActionRaise:            "raises",
	ActionSmallBlind:       "small blind",
	ActionBigBlind:         "big blind",
	ActionSecondSmallBlind: "secondsb",
	ActionBothBlinds:       "both",
	ActionAnte:             "ante",
	ActionBringIn:          "bringin",
	ActionDiscard:          "discards",
	ActionStandPat:         "stands pat",
}

var actionKindAliases = map[string]ActionKind{
	"fold":        ActionFold,
	"check":       ActionCheck,
	"call":        ActionCall,
	"bet":         ActionBet,
	"raise":       ActionRaise,
	"sb":          ActionSmallBlind,
	"small_blind": ActionSmallBlind,
	"bb":          ActionBigBlind,
	"big_blind":   ActionBigBlind,
	"second sb":   ActionSecondSmallBlind,
	"both blinds": ActionBothBlinds,
	"antes":       ActionAnte,
	"bring-in":    ActionBringIn,
	"bring in":    ActionBringIn,
	"discard":     ActionDiscard,
	"standpat":    ActionStandPat,
	"stand pat":   ActionStandPat,
}

func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseActionKind maps the hand parser's vocabulary onto a kind. Unrecognised
// tags yield ActionUnknown.
func ParseActionKind(s string) ActionKind {
	tag := strings.ToLower(strings.TrimSpace(s))
	for kind, name := range actionKindNames {
		if name == tag {
			return kind
		}
	}
	if kind, ok := actionKindAliases[tag]; ok {
		return kind
	}
	return ActionUnknown
}

// Action is one recorded action of a street.
//
// For bets and raises Amount is the increment over the current bet, RaiseTo
// the resulting total. For discards Amount is the number of cards thrown and
// Discarded holds the thrown cards when they are known (the hero's own).
type Action struct {
	Player    string          `json:"player"`
	Kind      ActionKind      `json:"-"`
	RawKind   string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	RaiseTo   decimal.Decimal `json:"raiseTo,omitzero"`
	AllIn     bool            `json:"allIn,omitempty"`
	Discarded cards.Stack     `json:"discarded,omitempty"`
}

// NewAction builds an action of a known kind.
func NewAction(player string, kind ActionKind, amount decimal.Decimal) Action {
	return Action{Player: player, Kind: kind, RawKind: kind.String(), Amount: amount}
}

// Tag returns the kind as recorded, falling back to the canonical name.
func (a Action) Tag() string {
	if a.RawKind != "" {
		return a.RawKind
	}
	return a.Kind.String()
}

// Label is the text a replay shows next to the acting player.
func (a Action) Label() string {
	switch a.Kind {
	case ActionFold, ActionCheck, ActionStandPat:
		return a.Kind.String()
	case ActionRaise:
		if a.RaiseTo.IsPositive() {
			return fmt.Sprintf("%s %s to %s", a.Kind, a.Amount, a.RaiseTo)
		}
		return fmt.Sprintf("%s %s", a.Kind, a.Amount)
	case ActionUnknown:
		return fmt.Sprintf("%s %s", a.Tag(), a.Amount)
	default:
		return fmt.Sprintf("%s %s", a.Kind, a.Amount)
	}
}

type actionJSON Action

func (a *Action) UnmarshalJSON(data []byte) error {
	var raw actionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Action(raw)
	a.Kind = ParseActionKind(a.RawKind)
	return nil
}

func (a Action) MarshalJSON() ([]byte, error) {
	raw := actionJSON(a)
	raw.RawKind = a.Tag()
	return json.Marshal(raw)
}
