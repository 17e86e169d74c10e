package analyzer

import (
	"fmt"
	"io"

	"github.com/yamaru/pokesearch/internal/types"
)

// datasetAnalyzer implements DatasetAnalyzer interface
type datasetAnalyzer struct{}

// NewDatasetAnalyzer creates a new DatasetAnalyzer instance
func NewDatasetAnalyzer() DatasetAnalyzer {
	return &datasetAnalyzer{}
}

// Summarize computes counts and stat maxima for a collection of records.
// Ties keep the earliest record.
func (a *datasetAnalyzer) Summarize(records []*types.Creature) *Summary {
	summary := &Summary{
		TotalRecords:  len(records),
		RecordsByType: make(map[string]int),
	}

	for _, c := range records {
		for _, t := range c.Types {
			if _, ok := summary.RecordsByType[t]; !ok {
				summary.Types = append(summary.Types, t)
			}
			summary.RecordsByType[t]++
		}
	}

	if len(records) == 0 {
		return summary
	}

	for _, k := range types.StatKeys() {
		best := StatMax{Key: k, Value: -1}
		for _, c := range records {
			if v := c.Base.Value(k); v > best.Value {
				best.Value = v
				best.Name = c.DisplayName()
			}
		}
		summary.StatMax = append(summary.StatMax, best)
	}

	return summary
}

// WriteText prints the summary in the headless text format
func (s *Summary) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Total Records: %d\n", s.TotalRecords); err != nil {
		return err
	}
	for _, t := range s.Types {
		if _, err := fmt.Fprintf(w, "  %-10s %d\n", t, s.RecordsByType[t]); err != nil {
			return err
		}
	}
	for _, m := range s.StatMax {
		if _, err := fmt.Fprintf(w, "Max %-12s %3d (%s)\n", m.Key, m.Value, m.Name); err != nil {
			return err
		}
	}
	return nil
}
