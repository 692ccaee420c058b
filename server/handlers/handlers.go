package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lazharichir/handreplay/game"
	"github.com/lazharichir/handreplay/hand"
	"github.com/lazharichir/handreplay/icm"
	"github.com/lazharichir/handreplay/server/connection"
	"github.com/lazharichir/handreplay/server/events"
	"github.com/shopspring/decimal"
)

var ErrUnknownCommand = errors.New("unknown command type")

// CommandRouter routes incoming commands to the appropriate handler
type CommandRouter struct {
	engine       *game.Engine
	dispatcher   *events.Dispatcher
	icmPrecision int32
	logger       *slog.Logger
}

// NewCommandRouter creates a new command router
func NewCommandRouter(engine *game.Engine, dispatcher *events.Dispatcher, icmPrecision int32, logger *slog.Logger) *CommandRouter {
	return &CommandRouter{
		engine:       engine,
		dispatcher:   dispatcher,
		icmPrecision: icmPrecision,
		logger:       logger,
	}
}

// HandleCommand processes an incoming command message. Failures are also
// reported to the client as an error message.
func (r *CommandRouter) HandleCommand(client *connection.Client, message []byte) error {
	err := r.route(client, message)
	if err != nil {
		if sendErr := r.dispatcher.SendError(client.ID, err); sendErr != nil {
			r.logger.Warn("failed to report command error", "client", client.ID, "error", sendErr)
		}
	}
	return err
}

func (r *CommandRouter) route(client *connection.Client, message []byte) error {
	// First determine command type
	var baseCmd struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &baseCmd); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}

	// Route to appropriate handler based on command type
	switch baseCmd.Name {
	case ReplayHand{}.Name():
		var cmd ReplayHand
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleReplayHand(client, cmd)

	case ComputeEquities{}.Name():
		var cmd ComputeEquities
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleComputeEquities(client, cmd)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, baseCmd.Name)
	}
}

func (r *CommandRouter) handleReplayHand(client *connection.Client, cmd ReplayHand) error {
	if len(cmd.Hand) == 0 {
		return errors.New("replay command has no hand")
	}
	h, err := hand.Decode(bytes.NewReader(cmd.Hand))
	if err != nil {
		return err
	}

	replay, err := r.engine.Replay(h)
	if err != nil {
		return err
	}

	r.logger.Info("streaming replay", "client", client.ID, "hand", h.ID, "snapshots", replay.Len())
	return r.dispatcher.SendReplay(client.ID, replay)
}

// EquitiesResult is the payload of an equities message.
type EquitiesResult struct {
	Equities []decimal.Decimal `json:"equities"`
}

func (r *CommandRouter) handleComputeEquities(client *connection.Client, cmd ComputeEquities) error {
	equities, err := icm.EquitiesWithPrecision(cmd.Stacks, cmd.Payouts, r.icmPrecision)
	if err != nil {
		return err
	}
	return r.dispatcher.Send(client.ID, events.NameEquities, EquitiesResult{Equities: equities})
}
