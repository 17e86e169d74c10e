package analyzer

import (
	"github.com/yamaru/pokesearch/internal/types"
)

// DatasetAnalyzer defines the interface for summarizing creature records
type DatasetAnalyzer interface {
	// Summarize computes counts and stat maxima for a collection of records
	Summarize(records []*types.Creature) *Summary
}

// Summary contains aggregate information about a set of records
type Summary struct {
	TotalRecords  int
	RecordsByType map[string]int
	Types         []string // first-seen order
	StatMax       []StatMax
}

// StatMax is the highest value of one stat and the record holding it
type StatMax struct {
	Key   types.StatKey
	Value int
	Name  string
}
