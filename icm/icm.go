// Package icm converts tournament chip stacks into prize equity with the
// Independent Chip Model.
package icm

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places Equities rounds to.
const Precision int32 = 4

// divisionPlaces bounds every intermediate quotient.
const divisionPlaces int32 = 28

var (
	ErrNoStacks  = errors.New("icm: no stacks")
	ErrNoPayouts = errors.New("icm: no payouts")
	ErrZeroChips = errors.New("icm: stacks sum to zero")
	ErrNegative  = errors.New("icm: negative value")
)

// Equities returns each stack's share of the prize pool described by payouts,
// rounded to Precision places.
func Equities(stacks, payouts []decimal.Decimal) ([]decimal.Decimal, error) {
	return EquitiesWithPrecision(stacks, payouts, Precision)
}

// EquitiesWithPrecision is Equities rounded to places. Only the results are
// rounded; the recursion works at full precision.
//
// The cost grows factorially with the number of paid places, which is fine
// for a final table.
func EquitiesWithPrecision(stacks, payouts []decimal.Decimal, places int32) ([]decimal.Decimal, error) {
	if len(stacks) == 0 {
		return nil, ErrNoStacks
	}
	if len(payouts) == 0 {
		return nil, ErrNoPayouts
	}

	total := decimal.Zero
	for i, s := range stacks {
		if s.IsNegative() {
			return nil, fmt.Errorf("stack %d is %s: %w", i, s, ErrNegative)
		}
		total = total.Add(s)
	}
	for i, p := range payouts {
		if p.IsNegative() {
			return nil, fmt.Errorf("payout %d is %s: %w", i, p, ErrNegative)
		}
	}
	if total.IsZero() {
		return nil, ErrZeroChips
	}

	c := calculator{
		stacks:  append([]decimal.Decimal(nil), stacks...),
		payouts: payouts,
	}
	equities := make([]decimal.Decimal, len(stacks))
	for i := range stacks {
		equities[i] = c.equity(i, total, 0).Round(places)
	}
	return equities, nil
}

type calculator struct {
	stacks  []decimal.Decimal
	payouts []decimal.Decimal
}

// equity is player's chance of finishing in place depth, times that payout,
// plus what they win when each other player finishes there instead.
func (c *calculator) equity(player int, total decimal.Decimal, depth int) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	eq := c.stacks[player].DivRound(total, divisionPlaces).Mul(c.payouts[depth])

	if depth+1 >= len(c.payouts) {
		return eq
	}
	for i, stack := range c.stacks {
		if i == player || !stack.IsPositive() {
			continue
		}
		c.stacks[i] = decimal.Zero
		weight := stack.DivRound(total, divisionPlaces)
		eq = eq.Add(c.equity(player, total.Sub(stack), depth+1).Mul(weight))
		c.stacks[i] = stack
	}
	return eq
}
