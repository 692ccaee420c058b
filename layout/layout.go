// Package layout places seats around a table drawn in the unit square.
// (0, 0) is the top-left corner and y grows downwards.
package layout

import (
	"fmt"
	"math"

	"github.com/lazharichir/handreplay/table"
)

// Point is a position in the unit square.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SeatPosition puts seat 1 at the bottom centre and the other seats
// clockwise around an ellipse touching every edge of the square.
func SeatPosition(seat, maxSeats int) (Point, error) {
	if maxSeats < 1 {
		return Point{}, fmt.Errorf("invalid table size %d", maxSeats)
	}
	if seat < 1 || seat > maxSeats {
		return Point{}, fmt.Errorf("seat %d outside 1..%d", seat, maxSeats)
	}
	angle := math.Pi/2 + 2*math.Pi*float64(seat-1)/float64(maxSeats)
	return Point{
		X: round(0.5 + 0.5*math.Cos(angle)),
		Y: round(0.5 + 0.5*math.Sin(angle)),
	}, nil
}

// HeroPosition rotates the table so heroSeat sits at the bottom centre.
// A heroSeat of 0 leaves the table unrotated.
func HeroPosition(seat, heroSeat, maxSeats int) (Point, error) {
	if heroSeat == 0 {
		return SeatPosition(seat, maxSeats)
	}
	if heroSeat < 0 || heroSeat > maxSeats {
		return Point{}, fmt.Errorf("hero seat %d outside 1..%d", heroSeat, maxSeats)
	}
	if seat < 1 || seat > maxSeats {
		return Point{}, fmt.Errorf("seat %d outside 1..%d", seat, maxSeats)
	}
	rotated := ((seat-heroSeat)%maxSeats+maxSeats)%maxSeats + 1
	return SeatPosition(rotated, maxSeats)
}

// Positions returns one point per player of state, in seat order.
func Positions(state table.TableState, maxSeats, heroSeat int) ([]Point, error) {
	points := make([]Point, 0, len(state.Players))
	for _, p := range state.Players {
		pt, err := HeroPosition(p.Seat, heroSeat, maxSeats)
		if err != nil {
			return nil, fmt.Errorf("failed to place %s: %w", p.Name, err)
		}
		points = append(points, pt)
	}
	return points, nil
}

// round drops float noise so equal seats always compare and encode equal.
func round(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return 0
	}
	return r
}
