package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lazharichir/handreplay/events"
	"github.com/lazharichir/handreplay/hand"
	"github.com/lazharichir/handreplay/table"
	"github.com/sanity-io/litter"
	"github.com/shopspring/decimal"
)

// Engine turns a parsed hand into its ordered snapshots. It keeps only
// configuration, so one Engine can replay many hands concurrently.
type Engine struct {
	eventStore events.EventStore
	logger     *slog.Logger
}

// NewEngine creates a replay engine. Without options events are kept on the
// Replay only and logs go to slog.Default().
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// run is the state of one Replay call.
type run struct {
	engine   *Engine
	hand     *hand.Hand
	expected decimal.Decimal
	replay   *Replay
	logger   *slog.Logger
}

// Replay rebuilds every snapshot of h. A malformed hand fails before any
// snapshot is built. Unknown action kinds are skipped and reported in
// Diagnostics; anything else that goes wrong aborts the replay.
func (e *Engine) Replay(h *hand.Hand) (*Replay, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if resetter, ok := e.eventStore.(interface{ Reset(handID string) }); ok {
		resetter.Reset(h.ID)
	}

	r := &run{
		engine:   e,
		hand:     h,
		expected: h.StartingChips(),
		replay: &Replay{
			HandID:      h.ID,
			Snapshots:   []table.TableState{},
			Events:      []events.Event{},
			Diagnostics: []events.Event{},
		},
		logger: e.logger.With("hand", h.ID),
	}

	state, err := table.New(h)
	if err != nil {
		return nil, fmt.Errorf("failed to seat hand %s: %w", h.ID, err)
	}
	if err := r.record(state); err != nil {
		return nil, err
	}

	for _, street := range h.AllStreets {
		if !state.AllIn && state.Called.IsPositive() && state.AnyAllIn() {
			state = state.MarkAllIn()
		}

		actions := h.Actions[street]
		if len(actions) == 0 && !street.IsPseudo() && !state.AllIn {
			break
		}

		state, err = r.startPhase(state, street)
		if err != nil {
			return nil, err
		}

		for i, action := range actions {
			state, err = r.applyAction(state, street, i, action)
			if err != nil {
				return nil, err
			}
		}
	}

	if _, err := r.settle(state); err != nil {
		return nil, err
	}

	r.logger.Debug("hand replayed", "snapshots", len(r.replay.Snapshots), "diagnostics", len(r.replay.Diagnostics))
	return r.replay, nil
}

func (r *run) startPhase(state table.TableState, street hand.Street) (table.TableState, error) {
	next, swept, err := state.StartPhase(street)
	if err != nil {
		return state, fmt.Errorf("hand %s: failed to start %s: %w", r.hand.ID, street, err)
	}
	if err := r.record(next); err != nil {
		return state, err
	}
	return next, r.emit(events.PhaseStarted{
		HandID:   r.hand.ID,
		Snapshot: r.last(),
		Street:   street,
		Swept:    swept,
	})
}

func (r *run) applyAction(state table.TableState, street hand.Street, index int, action hand.Action) (table.TableState, error) {
	next, err := state.ApplyAction(action)

	var unhandled *table.UnhandledActionError
	switch {
	case errors.As(err, &unhandled):
	case err != nil:
		return state, fmt.Errorf("hand %s: %s action %d (%s): %w", r.hand.ID, street, index, action.Label(), err)
	}

	if err := r.record(next); err != nil {
		return state, err
	}

	if unhandled != nil {
		diagnostic := events.UnhandledActionKind{
			HandID:      r.hand.ID,
			Snapshot:    r.last(),
			Street:      street,
			ActionIndex: index,
			Player:      action.Player,
			RawKind:     unhandled.Kind,
			Amount:      action.Amount,
		}
		r.replay.Diagnostics = append(r.replay.Diagnostics, diagnostic)
		r.logger.Warn("unhandled action kind", "street", street, "action", index, "player", action.Player, "kind", unhandled.Kind)
		return next, r.emit(diagnostic)
	}

	return next, r.emit(events.ActionApplied{
		HandID:      r.hand.ID,
		Snapshot:    r.last(),
		Street:      street,
		ActionIndex: index,
		Player:      action.Player,
		Kind:        action.Kind.String(),
		Label:       action.Label(),
		Amount:      action.Amount,
		ChipsCapped: next.Capped,
		AllIn:       next.AllInThisStreet,
	})
}

func (r *run) settle(state table.TableState) (table.TableState, error) {
	settled, err := state.SettleHand(r.hand.Collectees, r.hand.Returned)
	if err != nil {
		return state, fmt.Errorf("hand %s: failed to settle: %w", r.hand.ID, err)
	}
	if err := r.record(settled); err != nil {
		return state, err
	}

	refunded := map[string]decimal.Decimal{}
	for _, p := range settled.Players {
		if amount := settled.Refunded(p.Name); amount.IsPositive() {
			refunded[p.Name] = amount
		}
	}
	return settled, r.emit(events.HandSettled{
		HandID:     r.hand.ID,
		Snapshot:   r.last(),
		Collectees: r.hand.Collectees,
		Returned:   r.hand.Returned,
		Refunded:   refunded,
		Rake:       r.hand.Rake,
	})
}

// record appends a snapshot once it is known to account for every chip.
func (r *run) record(state table.TableState) error {
	if actual := state.ChipsInPlay(); !actual.Equal(r.expected) {
		return &ChipConservationViolation{
			HandID:   r.hand.ID,
			Snapshot: len(r.replay.Snapshots),
			Street:   state.Street,
			Expected: r.expected,
			Actual:   actual,
			Dump:     litter.Sdump(r.hand),
		}
	}
	r.replay.Snapshots = append(r.replay.Snapshots, state)
	return nil
}

func (r *run) last() int {
	return len(r.replay.Snapshots) - 1
}

func (r *run) emit(event events.Event) error {
	r.replay.Events = append(r.replay.Events, event)
	r.logger.Debug("replay event", "event", event.EventName())

	if r.engine.eventStore == nil {
		return nil
	}
	if err := r.engine.eventStore.Append(event); err != nil {
		return fmt.Errorf("failed to append event %s: %w", event.EventName(), err)
	}
	return nil
}
