package game

import (
	"github.com/lazharichir/handreplay/events"
	"github.com/lazharichir/handreplay/hand"
	"github.com/lazharichir/handreplay/table"
)

// Replay is the finished history of one hand. Snapshot 0 is the table before
// any action; the last snapshot is the settled table.
type Replay struct {
	HandID      string             `json:"handId"`
	Snapshots   []table.TableState `json:"snapshots"`
	Events      []events.Event     `json:"events"`
	Diagnostics []events.Event     `json:"diagnostics"`
}

func (r *Replay) Len() int {
	return len(r.Snapshots)
}

// At returns snapshot i.
func (r *Replay) At(i int) (table.TableState, bool) {
	if i < 0 || i >= len(r.Snapshots) {
		return table.TableState{}, false
	}
	return r.Snapshots[i], true
}

// Final returns the settled table.
func (r *Replay) Final() table.TableState {
	return r.Snapshots[len(r.Snapshots)-1]
}

// StreetIndex returns the first snapshot taken on street.
func (r *Replay) StreetIndex(street hand.Street) (int, bool) {
	for i, s := range r.Snapshots {
		if s.Street == street {
			return i, true
		}
	}
	return 0, false
}

// Streets lists the streets the replay reached, in order.
func (r *Replay) Streets() []hand.Street {
	var streets []hand.Street
	for _, s := range r.Snapshots {
		if len(streets) == 0 || streets[len(streets)-1] != s.Street {
			streets = append(streets, s.Street)
		}
	}
	return streets
}
