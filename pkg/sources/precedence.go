package sources

import (
	"maps"
	"slices"
	"strings"

	"github.com/propstore/winspskb/pkg/errors"
)

// Precedence is an ordered precedence policy: source IDs listed from
// highest to lowest precedence. When several sources claim the same
// field, the earliest listed source wins.
type Precedence []ID

// Default returns the standard precedence order. Baseline outranks
// everything so re-running a merge over its own output is stable;
// observed properties rank last because they are unvetted.
func Default() Precedence {
	return Precedence{Baseline, Headers, Docs, System, Observed}
}

// String returns the policy as a comma-separated list.
func (p Precedence) String() string {
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}

// Validate checks the policy against a set of recognized IDs, which
// defaults to IDs() when empty. An unknown or repeated tag is a fatal
// configuration error.
func (p Precedence) Validate(available []ID) error {
	if len(available) == 0 {
		available = IDs()
	}
	seen := make(map[ID]bool, len(p))
	for _, id := range p {
		if !slices.Contains(available, id) {
			return &errors.PrecedenceError{
				Source:  string(id),
				Message: "unknown source tag",
			}
		}
		if seen[id] {
			return &errors.PrecedenceError{
				Source:  string(id),
				Message: "listed more than once",
			}
		}
		seen[id] = true
	}
	return nil
}

// Rank returns the position of id in the policy, or -1 when absent.
func (p Precedence) Rank(id ID) int {
	return slices.Index(p, id)
}

// Ranks returns the policy as an explicit rank map.
func (p Precedence) Ranks() Ranks {
	ranks := make(Ranks, len(p))
	for i, id := range p {
		ranks[id] = i
	}
	return ranks
}

// ParsePrecedence parses a comma-separated precedence list such as
// "baseline,headers,docs" and validates it.
func ParsePrecedence(text string) (Precedence, error) {
	var p Precedence
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p = append(p, ID(part))
	}
	if len(p) == 0 {
		return nil, &errors.PrecedenceError{Message: "empty precedence list"}
	}
	if err := p.Validate(nil); err != nil {
		return nil, err
	}
	return p, nil
}

// Ranks maps source IDs to precedence ranks. Lower ranks win. Unlike
// Precedence, a rank map can assign the same rank to several sources,
// which puts them in one tier and leaves their conflicts to the merge
// strategy's tie-breaking rules.
type Ranks map[ID]int

// RanksFrom builds a validated rank map from explicit assignments.
func RanksFrom(assignments map[ID]int) (Ranks, error) {
	ranks := make(Ranks, len(assignments))
	for id, rank := range assignments {
		if !id.IsValid() {
			return nil, &errors.PrecedenceError{
				Source:  string(id),
				Message: "unknown source tag",
			}
		}
		if rank < 0 {
			return nil, &errors.PrecedenceError{
				Source:  string(id),
				Message: "negative rank",
			}
		}
		ranks[id] = rank
	}
	return ranks, nil
}

// Rank returns the rank assigned to id. Sources absent from the map
// share a single tier below every listed source, so an incomplete
// policy degrades predictably instead of failing mid-merge.
func (r Ranks) Rank(id ID) int {
	if rank, ok := r[id]; ok {
		return rank
	}
	overflow := 0
	for _, rank := range r {
		if rank >= overflow {
			overflow = rank + 1
		}
	}
	return overflow
}

// Tiers returns the rank groups from highest to lowest precedence.
// IDs within a tier are sorted so the result never depends on map
// iteration order.
func (r Ranks) Tiers() [][]ID {
	byRank := make(map[int][]ID, len(r))
	for id, rank := range r {
		byRank[rank] = append(byRank[rank], id)
	}

	tiers := make([][]ID, 0, len(byRank))
	for _, rank := range slices.Sorted(maps.Keys(byRank)) {
		tier := byRank[rank]
		slices.Sort(tier)
		tiers = append(tiers, tier)
	}
	return tiers
}
