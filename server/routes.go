package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lazharichir/handreplay/game"
	"github.com/lazharichir/handreplay/hand"
	"github.com/lazharichir/handreplay/icm"
	"github.com/lazharichir/handreplay/layout"
	"github.com/lazharichir/handreplay/server/events"
	"github.com/lazharichir/handreplay/server/handlers"
	"github.com/lazharichir/handreplay/table"
)

// Seat is where one player sits in the drawn table.
type Seat struct {
	Name string       `json:"name"`
	Seat int          `json:"seat"`
	At   layout.Point `json:"at"`
}

// ReplayResponse is the body of POST /api/replay.
type ReplayResponse struct {
	HandID      string                 `json:"handId"`
	Streets     []hand.Street          `json:"streets"`
	Snapshots   []table.TableState     `json:"snapshots"`
	Diagnostics []events.EventEnvelope `json:"diagnostics"`
	Seats       []Seat                 `json:"seats"`
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	h, err := hand.Decode(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	replay, err := s.engine.Replay(h)
	if err != nil {
		var violation *game.ChipConservationViolation
		if errors.As(err, &violation) {
			s.logger.Error("chip conservation violated", "hand", violation.HandID, "snapshot", violation.Snapshot, "dump", violation.Dump)
		}
		writeError(w, statusFor(err), err)
		return
	}

	seats, err := seatsOf(h, replay.Final())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	diagnostics, err := events.Envelopes(replay.Diagnostics)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, ReplayResponse{
		HandID:      replay.HandID,
		Streets:     replay.Streets(),
		Snapshots:   replay.Snapshots,
		Diagnostics: diagnostics,
		Seats:       seats,
	})
}

// seatsOf lays the table out around the hero when the hand has one.
func seatsOf(h *hand.Hand, state table.TableState) ([]Seat, error) {
	heroSeat := 0
	if p, ok := h.Player(h.Hero); ok {
		heroSeat = p.Seat
	}
	points, err := layout.Positions(state, h.MaxSeats, heroSeat)
	if err != nil {
		return nil, err
	}
	seats := make([]Seat, len(points))
	for i, p := range state.Players {
		seats[i] = Seat{Name: p.Name, Seat: p.Seat, At: points[i]}
	}
	return seats, nil
}

func (s *Server) handleICM(w http.ResponseWriter, r *http.Request) {
	var req handlers.ComputeEquities
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	equities, err := icm.EquitiesWithPrecision(req.Stacks, req.Payouts, s.cfg.ICMPrecision)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, handlers.EquitiesResult{Equities: equities})
}

func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	handID := chi.URLParam(r, "handID")

	recorded, err := s.store.LoadEvents(handID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if len(recorded) == 0 {
		writeError(w, http.StatusNotFound, errors.New("no replay recorded for hand "+handID))
		return
	}

	envelopes, err := events.Envelopes(recorded)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, envelopes)
}
