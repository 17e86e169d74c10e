package state

import "github.com/yamaru/pokesearch/internal/types"

// Change identifies which field of FilterState was replaced
type Change uint8

const (
	ChangeSearchText Change = iota + 1
	ChangeSelection
)

// String returns the string representation of Change
func (c Change) String() string {
	switch c {
	case ChangeSearchText:
		return "search"
	case ChangeSelection:
		return "selection"
	default:
		return "unknown"
	}
}

// FilterState holds the search text and the selected creature. It is owned
// by the UI event loop; setters are the only mutation path and notify
// listeners synchronously.
type FilterState struct {
	searchText string
	selected   *types.Creature
	listeners  []func(Change)
}

// NewFilterState creates an empty FilterState
func NewFilterState() *FilterState {
	return &FilterState{}
}

// SearchText returns the current search text
func (s *FilterState) SearchText() string {
	return s.searchText
}

// Selected returns the selected creature, or nil
func (s *FilterState) Selected() *types.Creature {
	return s.selected
}

// SetSearchText replaces the search text. The selection is left untouched.
func (s *FilterState) SetSearchText(text string) {
	s.searchText = text
	s.notify(ChangeSearchText)
}

// SetSelected replaces the selection; nil clears it
func (s *FilterState) SetSelected(c *types.Creature) {
	s.selected = c
	s.notify(ChangeSelection)
}

// OnChange registers a listener called after every setter
func (s *FilterState) OnChange(fn func(Change)) {
	s.listeners = append(s.listeners, fn)
}

func (s *FilterState) notify(c Change) {
	for _, fn := range s.listeners {
		fn(c)
	}
}
