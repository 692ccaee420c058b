package hand

// Street names a phase of a hand as the hand parser records it.
type Street string

const (
	StreetBlindsAntes Street = "BLINDSANTES"
	StreetPreflop     Street = "PREFLOP"
	StreetDeal        Street = "DEAL"

	StreetFlop  Street = "FLOP"
	StreetTurn  Street = "TURN"
	StreetRiver Street = "RIVER"

	StreetThird   Street = "THIRD"
	StreetFourth  Street = "FOURTH"
	StreetFifth   Street = "FIFTH"
	StreetSixth   Street = "SIXTH"
	StreetSeventh Street = "SEVENTH"

	StreetDrawOne   Street = "DRAWONE"
	StreetDrawTwo   Street = "DRAWTWO"
	StreetDrawThree Street = "DRAWTHREE"

	// run it twice
	StreetFlop1  Street = "FLOP1"
	StreetTurn1  Street = "TURN1"
	StreetRiver1 Street = "RIVER1"
	StreetFlop2  Street = "FLOP2"
	StreetTurn2  Street = "TURN2"
	StreetRiver2 Street = "RIVER2"
)

// IsPseudo reports whether the street only marks a position in the hand and
// never closes a betting round.
func (s Street) IsPseudo() bool {
	switch s {
	case StreetBlindsAntes, StreetPreflop, StreetDeal:
		return true
	}
	return false
}

func (s Street) String() string {
	return string(s)
}
