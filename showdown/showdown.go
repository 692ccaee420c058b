// Package showdown names the made hand a player shows at the end of a hand.
package showdown

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lazharichir/handreplay/cards"
	"github.com/lazharichir/handreplay/hand"
	"github.com/paulhankin/poker"
)

var (
	ErrUnknownCards    = errors.New("cannot describe face-down cards")
	ErrNotEnoughCards  = errors.New("not enough cards for a five-card hand")
	ErrUnsupportedGame = errors.New("game is not ranked high")
)

// lowball categories rank hands the other way round; naming their high hand
// would be misleading.
var lowball = []string{"razz", "27", "a5", "badugi", "2-7"}

// Describe names the best high hand a player makes from hole and board.
func Describe(category string, base hand.Base, hole, board cards.Stack) (string, error) {
	for _, lo := range lowball {
		if strings.Contains(strings.ToLower(category), lo) {
			return "", ErrUnsupportedGame
		}
	}
	if !hole.Known() {
		return "", ErrUnknownCards
	}
	for _, c := range board {
		if c.IsUnknown() {
			return "", ErrUnknownCards
		}
	}

	h, err := convert(hole)
	if err != nil {
		return "", err
	}
	b, err := convert(board)
	if err != nil {
		return "", err
	}

	var best [5]poker.Card
	var ok bool
	switch {
	case base == hand.BaseHold && strings.HasPrefix(strings.ToLower(category), "omaha"):
		best, ok = bestOmaha(h, b)
	case base == hand.BaseHold:
		best, ok = bestFive(append(h, b...))
	default:
		best, ok = bestFive(h)
	}
	if !ok {
		return "", ErrNotEnoughCards
	}
	return poker.Describe(best[:])
}

// toPoker converts a card to the evaluator's representation, whose ranks run
// 1..13 with the ace as 1.
func toPoker(c cards.Card) (poker.Card, error) {
	var s poker.Suit
	switch c.Suit {
	case cards.Clubs:
		s = poker.Club
	case cards.Diamonds:
		s = poker.Diamond
	case cards.Hearts:
		s = poker.Heart
	case cards.Spades:
		s = poker.Spade
	default:
		var zero poker.Card
		return zero, fmt.Errorf("unknown suit %q", c.Suit)
	}
	r := c.Value.Rank()
	if r == 14 {
		r = 1
	}
	return poker.MakeCard(s, poker.Rank(r))
}

func convert(stack cards.Stack) ([]poker.Card, error) {
	out := make([]poker.Card, len(stack))
	for i, c := range stack {
		pc, err := toPoker(c)
		if err != nil {
			return nil, err
		}
		out[i] = pc
	}
	return out, nil
}

// bestFive picks the highest scoring five cards out of pcs.
func bestFive(pcs []poker.Card) ([5]poker.Card, bool) {
	var best, five [5]poker.Card
	if len(pcs) < 5 {
		return best, false
	}
	bestScore := int16(-1)
	combinations(len(pcs), 5, func(idx []int) {
		for i, j := range idx {
			five[i] = pcs[j]
		}
		if score := poker.Eval5(&five); score > bestScore {
			bestScore = score
			best = five
		}
	})
	return best, true
}

// bestOmaha uses exactly two hole cards and three board cards.
func bestOmaha(hole, board []poker.Card) ([5]poker.Card, bool) {
	var best, five [5]poker.Card
	if len(hole) < 2 || len(board) < 3 {
		return best, false
	}
	bestScore := int16(-1)
	combinations(len(hole), 2, func(hi []int) {
		combinations(len(board), 3, func(bi []int) {
			five[0], five[1] = hole[hi[0]], hole[hi[1]]
			five[2], five[3], five[4] = board[bi[0]], board[bi[1]], board[bi[2]]
			if score := poker.Eval5(&five); score > bestScore {
				bestScore = score
				best = five
			}
		})
	})
	return best, true
}

// combinations calls fn with every k-subset of 0..n-1 in lexical order.
func combinations(n, k int, fn func([]int)) {
	idx := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			fn(idx)
			return
		}
		for i := start; i <= n-(k-depth); i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}
