package handlers

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ReplayHand asks for a hand to be replayed and streamed back.
type ReplayHand struct {
	Hand json.RawMessage `json:"hand"`
}

func (c ReplayHand) Name() string { return "replay" }

// ComputeEquities asks for the ICM equities of a set of stacks.
type ComputeEquities struct {
	Stacks  []decimal.Decimal `json:"stacks"`
	Payouts []decimal.Decimal `json:"payouts"`
}

func (c ComputeEquities) Name() string { return "icm" }
