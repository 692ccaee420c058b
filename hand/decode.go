package hand

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads one JSON encoded hand and validates it.
func Decode(r io.Reader) (*Hand, error) {
	var h Hand
	dec := json.NewDecoder(r)
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("failed to decode hand: %w", err)
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &h, nil
}
