package table

import (
	"errors"
	"fmt"
)

// ErrHandSettled is returned by any transition attempted after SettleHand.
var ErrHandSettled = errors.New("hand already settled")

// MissingPlayerError reports an action by a player who is not seated.
type MissingPlayerError struct {
	Player string
}

func (e *MissingPlayerError) Error() string {
	return fmt.Sprintf("player %q is not at the table", e.Player)
}

// UnhandledActionError reports an action whose kind the table cannot apply.
// The returned snapshot is still valid; only the chips did not move.
type UnhandledActionError struct {
	Player string
	Kind   string
}

func (e *UnhandledActionError) Error() string {
	return fmt.Sprintf("unhandled action %q by %s", e.Kind, e.Player)
}
