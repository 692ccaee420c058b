package events

import (
	"encoding/json"
	"fmt"
	"log/slog"

	replayevents "github.com/lazharichir/handreplay/events"
	"github.com/lazharichir/handreplay/game"
	"github.com/lazharichir/handreplay/server/connection"
	"github.com/lazharichir/handreplay/table"
)

const (
	NameSnapshot        = "snapshot"
	NameReplayCompleted = "replay-completed"
	NameEquities        = "equities"
	NameError           = "error"
)

// EventEnvelope wraps a message with its name for client consumption
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// NewEnvelope marshals payload under name.
func NewEnvelope(name string, payload any) (EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("failed to marshal %s payload: %w", name, err)
	}
	return EventEnvelope{Name: name, Payload: data}, nil
}

// Envelopes wraps replay events the way they are sent to clients.
func Envelopes(evts []replayevents.Event) ([]EventEnvelope, error) {
	out := make([]EventEnvelope, 0, len(evts))
	for _, e := range evts {
		env, err := NewEnvelope(e.EventName(), e)
		if err != nil {
			return nil, err
		}
		out = append(out, env)
	}
	return out, nil
}

// SnapshotPayload is one frame of a streamed replay.
type SnapshotPayload struct {
	HandID   string           `json:"handId"`
	Index    int              `json:"index"`
	Snapshot table.TableState `json:"snapshot"`
}

// CompletedPayload closes a streamed replay.
type CompletedPayload struct {
	HandID      string          `json:"handId"`
	Snapshots   int             `json:"snapshots"`
	Diagnostics []EventEnvelope `json:"diagnostics"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Dispatcher handles routing replay messages to clients
type Dispatcher struct {
	connMgr *connection.Manager
	logger  *slog.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(connMgr *connection.Manager, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		connMgr: connMgr,
		logger:  logger,
	}
}

// Send queues one named payload for a client.
func (d *Dispatcher) Send(clientID, name string, payload any) error {
	envelope, err := NewEnvelope(name, payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal %s envelope: %w", name, err)
	}
	if !d.connMgr.SendToClient(clientID, data) {
		return fmt.Errorf("client %s is not connected", clientID)
	}
	d.logger.Debug("dispatched", "client", clientID, "name", name)
	return nil
}

// SendReplay streams every snapshot of replay in order, then a completion
// message carrying the diagnostics.
func (d *Dispatcher) SendReplay(clientID string, replay *game.Replay) error {
	for i, snapshot := range replay.Snapshots {
		payload := SnapshotPayload{HandID: replay.HandID, Index: i, Snapshot: snapshot}
		if err := d.Send(clientID, NameSnapshot, payload); err != nil {
			return err
		}
	}

	diagnostics, err := Envelopes(replay.Diagnostics)
	if err != nil {
		return err
	}
	d.connMgr.AddHandToClient(clientID, replay.HandID)
	return d.Send(clientID, NameReplayCompleted, CompletedPayload{
		HandID:      replay.HandID,
		Snapshots:   replay.Len(),
		Diagnostics: diagnostics,
	})
}

// SendError reports a failed command to the client that sent it.
func (d *Dispatcher) SendError(clientID string, cause error) error {
	return d.Send(clientID, NameError, ErrorPayload{Message: cause.Error()})
}
