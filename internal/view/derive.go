// Package view derives the displayed rows from the dataset and filter state.
package view

import (
	"strings"

	"github.com/yamaru/pokesearch/internal/types"
)

// NoLimit disables truncation
const NoLimit = -1

// DerivedView is the truncated and filtered sequence of creatures on display
type DerivedView struct {
	Records []*types.Creature

	// Types are the distinct type tags of Records in first-seen order
	Types []string
}

// Len returns the number of displayed records
func (v *DerivedView) Len() int {
	return len(v.Records)
}

// IndexOf returns the row index of c, or -1
func (v *DerivedView) IndexOf(c *types.Creature) int {
	if c == nil {
		return -1
	}
	for i, r := range v.Records {
		if r == c {
			return i
		}
	}
	return -1
}

// Derive truncates dataset to maxCount entries and then keeps the records
// whose name contains searchText, case-insensitively. Truncation happens
// before filtering and input order is preserved.
func Derive(dataset []*types.Creature, maxCount int, searchText string) *DerivedView {
	effective := maxCount
	if maxCount <= NoLimit || maxCount > len(dataset) {
		effective = len(dataset)
	}

	needle := strings.ToLower(searchText)
	view := &DerivedView{Records: make([]*types.Creature, 0, effective)}
	seen := make(map[string]struct{})

	for _, c := range dataset[:effective] {
		if !strings.Contains(strings.ToLower(c.DisplayName()), needle) {
			continue
		}
		view.Records = append(view.Records, c)

		for _, t := range c.Types {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				view.Types = append(view.Types, t)
			}
		}
	}

	return view
}
