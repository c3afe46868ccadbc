package reconciler

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/propstore/winspskb/pkg/sources"
)

// StrategyType names a conflict resolution strategy.
type StrategyType string

// String returns the string representation of a strategy type.
func (s StrategyType) String() string {
	return string(s)
}

const (
	// StrategyTypeSourceOrder resolves conflicts by source precedence,
	// breaking ties within a precedence tier by value.
	StrategyTypeSourceOrder StrategyType = "source-order"
)

// Claim is one source's offered value for one field.
type Claim struct {
	Source sources.ID
	Value  string
}

// Strategy decides which claim wins a field. Implementations must be
// deterministic: the same set of claims resolves the same way no
// matter what order they arrive in.
type Strategy interface {
	// Type returns the strategy type.
	Type() StrategyType

	// Description returns a human-readable description.
	Description() string

	// Resolve picks the winning claim for a field and explains the
	// choice. Claims with empty values are never passed in.
	Resolve(field string, claims []Claim) (Claim, string)
}

// sourceOrderStrategy resolves conflicts using a source rank map.
type sourceOrderStrategy struct {
	ranks sources.Ranks
}

// Compile-time check that sourceOrderStrategy implements Strategy.
var _ Strategy = (*sourceOrderStrategy)(nil)

// NewSourceOrderStrategy creates a strategy that prefers the claim from
// the best-ranked source. Within a rank tier the longer value wins, and
// equal-length values fall back to the lexicographically smaller one,
// so tier ties never depend on arrival order.
func NewSourceOrderStrategy(ranks sources.Ranks) Strategy {
	return &sourceOrderStrategy{ranks: ranks}
}

// Type returns the strategy type.
func (s *sourceOrderStrategy) Type() StrategyType {
	return StrategyTypeSourceOrder
}

// Description returns a human-readable description.
func (s *sourceOrderStrategy) Description() string {
	return fmt.Sprintf("Resolves conflicts by source precedence (tiers: %v)", s.ranks.Tiers())
}

// Resolve picks the winning claim for a field.
func (s *sourceOrderStrategy) Resolve(_ string, claims []Claim) (Claim, string) {
	if len(claims) == 0 {
		return Claim{}, ""
	}
	if len(claims) == 1 {
		return claims[0], fmt.Sprintf("only claim (%s)", claims[0].Source)
	}

	sorted := slices.Clone(claims)
	slices.SortStableFunc(sorted, func(a, b Claim) int {
		if c := cmp.Compare(s.ranks.Rank(a.Source), s.ranks.Rank(b.Source)); c != 0 {
			return c
		}
		// Same tier: prefer the longer value, then the smaller one.
		if c := cmp.Compare(len(b.Value), len(a.Value)); c != 0 {
			return c
		}
		if c := strings.Compare(a.Value, b.Value); c != 0 {
			return c
		}
		return strings.Compare(string(a.Source), string(b.Source))
	})

	winner, runnerUp := sorted[0], sorted[1]
	switch {
	case s.ranks.Rank(winner.Source) < s.ranks.Rank(runnerUp.Source):
		return winner, fmt.Sprintf("source %s outranks %s", winner.Source, runnerUp.Source)
	case len(winner.Value) > len(runnerUp.Value):
		return winner, fmt.Sprintf("longer value wins the tie with %s", runnerUp.Source)
	case winner.Value != runnerUp.Value:
		return winner, fmt.Sprintf("lexicographic tiebreak against %s", runnerUp.Source)
	default:
		return winner, fmt.Sprintf("identical value also claimed by %s", runnerUp.Source)
	}
}
