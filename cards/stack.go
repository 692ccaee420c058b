package cards

import (
	"fmt"
	"strings"
)

// Stack represents multiple cards
type Stack []Card

// ParseStack parses space or comma separated card tokens, e.g. "As Kd" or "As,Kd".
func ParseStack(s string) (Stack, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ','
	})
	stack := make(Stack, 0, len(fields))
	for _, f := range fields {
		c, err := CardFromString(f)
		if err != nil {
			return nil, fmt.Errorf("parse stack %q: %w", s, err)
		}
		stack = append(stack, c)
	}
	return stack, nil
}

// MustParseStack is ParseStack for fixtures; it panics on bad input.
func MustParseStack(s string) Stack {
	stack, err := ParseStack(s)
	if err != nil {
		panic(err)
	}
	return stack
}

// String returns the short tokens joined by spaces
func (s Stack) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.Short()
	}
	return strings.Join(parts, " ")
}

// Clone returns an independent copy; a nil stack stays nil.
func (s Stack) Clone() Stack {
	if s == nil {
		return nil
	}
	return append(Stack(nil), s...)
}

// Known reports whether every card face in the stack is known.
func (s Stack) Known() bool {
	for _, c := range s {
		if c.IsUnknown() {
			return false
		}
	}
	return len(s) > 0
}

// Equals checks if two stacks hold the same cards in the same order
func (s Stack) Equals(other Stack) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equals(other[i]) {
			return false
		}
	}
	return true
}
