package allocator

import (
	"fmt"

	"github.com/mesh-intelligence/themes/pkg/types"
)

// Decision describes one greedy placement: the abstract, the theme it went
// to, and the member count of every candidate just before the placement.
type Decision struct {
	AbstractID int
	ThemeID    int
	Counts     map[int]int
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithOrder sets the processing order of abstracts with more than one
// candidate theme. See types.OrderReverse and types.OrderInput.
func WithOrder(order string) Option {
	return func(a *Allocator) {
		a.order = order
	}
}

// WithDecisionHook registers fn to observe every greedy placement.
func WithDecisionHook(fn func(Decision)) Option {
	return func(a *Allocator) {
		a.onDecision = fn
	}
}

// Allocator assigns every abstract to exactly one theme.
type Allocator struct {
	order      string
	onDecision func(Decision)
}

// New creates an Allocator. Without options it processes multi-candidate
// abstracts in reverse discovery order.
func New(opts ...Option) *Allocator {
	a := &Allocator{order: types.OrderReverse}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate assigns each abstract to one of its candidate themes and returns
// the themes in dictionary order with their members.
//
// All abstracts are checked before anything is assigned. An abstract with no
// candidates, or with a candidate missing from themes, fails the whole call
// with a *types.InvalidInputError naming it. A repeated abstract ID fails
// with a *types.DataConsistencyError.
func (a *Allocator) Allocate(abstracts []types.Abstract, themes []types.ThemeEntry) (types.Assignment, error) {
	if a.order != types.OrderReverse && a.order != types.OrderInput {
		return types.Assignment{}, fmt.Errorf("%w: %q", types.ErrOrderUnknown, a.order)
	}
	if len(themes) == 0 {
		return types.Assignment{}, types.ErrCatalogEmpty
	}
	if len(abstracts) == 0 {
		return types.Assignment{}, &types.InvalidInputError{Reason: "no abstracts to allocate"}
	}

	position := make(map[int]int, len(themes))
	for i, t := range themes {
		position[t.ID] = i
	}
	if err := check(abstracts, position); err != nil {
		return types.Assignment{}, err
	}

	result := make([]types.Theme, len(themes))
	for i, t := range themes {
		result[i] = types.Theme{ID: t.ID, Label: t.Label, Members: []int{}}
	}

	var pending []types.Abstract
	for _, abs := range abstracts {
		if len(abs.Candidates) > 1 {
			pending = append(pending, abs)
			continue
		}
		p := position[abs.Candidates[0]]
		result[p].Members = append(result[p].Members, abs.ID)
	}

	for i := range pending {
		abs := pending[i]
		if a.order == types.OrderReverse {
			abs = pending[len(pending)-1-i]
		}
		p := a.poorest(abs, result, position)
		result[p].Members = append(result[p].Members, abs.ID)
	}

	return types.Assignment{Themes: result}, nil
}

// poorest returns the position of the candidate theme with the fewest
// members, preferring the earliest position on ties, and reports the
// decision to the hook.
func (a *Allocator) poorest(abs types.Abstract, result []types.Theme, position map[int]int) int {
	best := -1
	for _, c := range abs.Candidates {
		p := position[c]
		if best < 0 {
			best = p
			continue
		}
		n, bestN := len(result[p].Members), len(result[best].Members)
		if n < bestN || (n == bestN && p < best) {
			best = p
		}
	}

	if a.onDecision != nil {
		counts := make(map[int]int, len(abs.Candidates))
		for _, c := range abs.Candidates {
			counts[c] = len(result[position[c]].Members)
		}
		a.onDecision(Decision{AbstractID: abs.ID, ThemeID: result[best].ID, Counts: counts})
	}

	return best
}

func check(abstracts []types.Abstract, position map[int]int) error {
	seen := make(map[int]bool, len(abstracts))
	for _, abs := range abstracts {
		if seen[abs.ID] {
			return &types.DataConsistencyError{AbstractID: abs.ID, Reason: "abstract listed more than once"}
		}
		seen[abs.ID] = true

		if len(abs.Candidates) == 0 {
			return &types.InvalidInputError{AbstractID: abs.ID, Reason: "no candidate themes"}
		}
		for _, c := range abs.Candidates {
			if _, ok := position[c]; !ok {
				return &types.InvalidInputError{
					AbstractID: abs.ID,
					Reason:     fmt.Sprintf("candidate theme %d is not in the catalog", c),
				}
			}
		}
	}
	return nil
}
