package view

import (
	"fmt"
	"strings"

	"github.com/yamaru/pokesearch/internal/types"
)

// StatRow is one Base/Stat row of the detail panel
type StatRow struct {
	Key   types.StatKey
	Value int
}

// DetailRows returns the six stat rows of c in canonical order, or nil
// when nothing is selected.
func DetailRows(c *types.Creature) []StatRow {
	if c == nil {
		return nil
	}
	keys := types.StatKeys()
	rows := make([]StatRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, StatRow{Key: k, Value: c.Base.Value(k)})
	}
	return rows
}

// DetailText renders the detail panel as plain text, used by the narrow
// layout dialog.
func DetailText(c *types.Creature) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(c.DisplayName())
	b.WriteString("\n\n")
	for _, row := range DetailRows(c) {
		fmt.Fprintf(&b, "%-12s %3d\n", row.Key, row.Value)
	}
	return b.String()
}
