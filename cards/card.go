package cards

import (
	"fmt"
	"strings"
)

// CardFromString creates a card from a hand-history token
// e.g., "10♠" or "10s" or "Ts" or "TS" -> Card{Suit: Spades, Value: Ten}
// e.g., "xx", "??" or "0x" -> the unknown (face-down) card
func CardFromString(s string) (Card, error) {
	switch s {
	case "xx", "XX", "??", "0x":
		return Unknown(), nil
	}

	runes := []rune(s)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %q", s)
	}

	var suit Suit
	switch string(runes[len(runes)-1]) {
	case "♠", "s", "S":
		suit = Spades
	case "♥", "h", "H":
		suit = Hearts
	case "♦", "d", "D":
		suit = Diamonds
	case "♣", "c", "C":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card suit: %q", s)
	}

	var value Value
	switch strings.ToUpper(string(runes[:len(runes)-1])) {
	case "A":
		value = Ace
	case "K":
		value = King
	case "Q":
		value = Queen
	case "J":
		value = Jack
	case "10", "T":
		value = Ten
	case "9":
		value = Nine
	case "8":
		value = Eight
	case "7":
		value = Seven
	case "6":
		value = Six
	case "5":
		value = Five
	case "4":
		value = Four
	case "3":
		value = Three
	case "2":
		value = Two
	default:
		return Card{}, fmt.Errorf("invalid card value: %q", s)
	}

	return Card{Suit: suit, Value: value}, nil
}

// Suit represents a card suit
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

func (s Suit) letter() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	}
	return "x"
}

// Value represents a card value
type Value string

const (
	Ace   Value = "A"
	King  Value = "K"
	Queen Value = "Q"
	Jack  Value = "J"
	Ten   Value = "10"
	Nine  Value = "9"
	Eight Value = "8"
	Seven Value = "7"
	Six   Value = "6"
	Five  Value = "5"
	Four  Value = "4"
	Three Value = "3"
	Two   Value = "2"
)

// Rank returns the numeric rank with the ace high (2..14), or 0 for the
// unknown card.
func (v Value) Rank() int {
	switch v {
	case Ace:
		return 14
	case King:
		return 13
	case Queen:
		return 12
	case Jack:
		return 11
	case Ten:
		return 10
	case Nine:
		return 9
	case Eight:
		return 8
	case Seven:
		return 7
	case Six:
		return 6
	case Five:
		return 5
	case Four:
		return 4
	case Three:
		return 3
	case Two:
		return 2
	}
	return 0
}

// Card represents a playing card. The zero value is a card whose face is not
// known to the hand history (an opponent's down card).
type Card struct {
	Suit  Suit
	Value Value
}

// String returns the display representation of a card
func (c Card) String() string {
	if c.IsUnknown() {
		return "xx"
	}
	return fmt.Sprintf("%s%s", c.Value, c.Suit)
}

// Short returns the two-character hand-history token, e.g. "Td".
func (c Card) Short() string {
	if c.IsUnknown() {
		return "xx"
	}
	v := string(c.Value)
	if c.Value == Ten {
		v = "T"
	}
	return v + c.Suit.letter()
}

// IsUnknown checks if the card face is hidden
func (c Card) IsUnknown() bool {
	return c.Suit == "" && c.Value == ""
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Value == other.Value
}

func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.Short()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := CardFromString(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Unknown creates a face-down card
func Unknown() Card {
	return Card{}
}
