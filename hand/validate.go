package hand

import (
	"fmt"
)

// MalformedHandError reports a hand that cannot be replayed at all.
type MalformedHandError struct {
	HandID string
	Reason string
}

func (e *MalformedHandError) Error() string {
	return fmt.Sprintf("malformed hand %q: %s", e.HandID, e.Reason)
}

func (h *Hand) malformed(format string, args ...any) error {
	return &MalformedHandError{HandID: h.ID, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the structure a replay relies on.
func (h *Hand) Validate() error {
	if h.MaxSeats < 1 {
		return h.malformed("maxSeats must be positive, got %d", h.MaxSeats)
	}
	if len(h.Players) == 0 {
		return h.malformed("no players")
	}

	names := make(map[string]bool, len(h.Players))
	seats := make(map[int]bool, len(h.Players))
	for _, p := range h.Players {
		if p.Name == "" {
			return h.malformed("player in seat %d has no name", p.Seat)
		}
		if names[p.Name] {
			return h.malformed("duplicate player %q", p.Name)
		}
		names[p.Name] = true
		if p.Seat < 1 || p.Seat > h.MaxSeats {
			return h.malformed("player %q seat %d outside 1..%d", p.Name, p.Seat, h.MaxSeats)
		}
		if seats[p.Seat] {
			return h.malformed("seat %d taken twice", p.Seat)
		}
		seats[p.Seat] = true
		if p.missingStack {
			return h.malformed("player %q has no starting stack", p.Name)
		}
		if p.Stack.IsNegative() {
			return h.malformed("player %q has negative stack %s", p.Name, p.Stack)
		}
	}

	if len(h.AllStreets) == 0 {
		return h.malformed("empty street list")
	}
	streets := make(map[Street]bool, len(h.AllStreets))
	for _, s := range h.AllStreets {
		if streets[s] {
			return h.malformed("street %s listed twice", s)
		}
		streets[s] = true
	}

	for street, actions := range h.Actions {
		if !streets[street] {
			return h.malformed("actions recorded for street %s not in street list", street)
		}
		for i, a := range actions {
			if a.Amount.IsNegative() {
				return h.malformed("%s action %d has negative amount %s", street, i, a.Amount)
			}
		}
	}

	for name, amount := range h.Collectees {
		if !names[name] {
			return h.malformed("collectee %q is not seated", name)
		}
		if amount.IsNegative() {
			return h.malformed("collectee %q has negative amount %s", name, amount)
		}
	}
	for name, amount := range h.Returned {
		if !names[name] {
			return h.malformed("returned player %q is not seated", name)
		}
		if amount.IsNegative() {
			return h.malformed("returned amount for %q is negative: %s", name, amount)
		}
	}
	if h.Rake.IsNegative() {
		return h.malformed("negative rake %s", h.Rake)
	}
	if h.Hero != "" && !names[h.Hero] {
		return h.malformed("hero %q is not seated", h.Hero)
	}
	return nil
}
