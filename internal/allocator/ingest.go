package allocator

import (
	"fmt"

	"github.com/mesh-intelligence/themes/pkg/types"
)

// Group folds query rows into abstracts. Abstracts keep the order in which
// their first row appeared, and candidate themes keep row order with
// duplicates dropped.
//
// Rows sharing an abstract ID must agree on title and submission type;
// otherwise Group returns a *types.DataConsistencyError naming the abstract.
func Group(rows []types.Row) ([]types.Abstract, error) {
	index := make(map[int]int, len(rows))
	var abstracts []types.Abstract

	for _, r := range rows {
		i, ok := index[r.AbstractID]
		if !ok {
			index[r.AbstractID] = len(abstracts)
			abstracts = append(abstracts, types.Abstract{
				ID:         r.AbstractID,
				Title:      r.Title,
				TypeID:     r.TypeID,
				Candidates: []int{r.ThemeID},
			})
			continue
		}

		a := &abstracts[i]
		if a.Title != r.Title {
			return nil, &types.DataConsistencyError{
				AbstractID: r.AbstractID,
				Reason:     fmt.Sprintf("conflicting titles %q and %q", a.Title, r.Title),
			}
		}
		if a.TypeID != r.TypeID {
			return nil, &types.DataConsistencyError{
				AbstractID: r.AbstractID,
				Reason:     fmt.Sprintf("conflicting submission types %d and %d", a.TypeID, r.TypeID),
			}
		}
		if !a.HasCandidate(r.ThemeID) {
			a.Candidates = append(a.Candidates, r.ThemeID)
		}
	}

	return abstracts, nil
}
