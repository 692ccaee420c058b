package game

import (
	"fmt"

	"github.com/lazharichir/handreplay/hand"
	"github.com/shopspring/decimal"
)

// ChipConservationViolation means a snapshot no longer accounts for every
// starting chip. It is a bug in the engine or in the hand's showdown amounts
// and is never corrected. Dump holds the full hand for debugging.
type ChipConservationViolation struct {
	HandID   string
	Snapshot int
	Street   hand.Street
	Expected decimal.Decimal
	Actual   decimal.Decimal
	Dump     string
}

func (e *ChipConservationViolation) Error() string {
	return fmt.Sprintf("hand %s: chips not conserved at snapshot %d (%s): expected %s, got %s",
		e.HandID, e.Snapshot, e.Street, e.Expected, e.Actual)
}
