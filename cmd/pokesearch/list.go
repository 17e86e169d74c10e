package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yamaru/pokesearch/internal/analyzer"
	"github.com/yamaru/pokesearch/internal/reader"
	"github.com/yamaru/pokesearch/internal/types"
	"github.com/yamaru/pokesearch/internal/view"
)

type listOptions struct {
	search  string
	format  string
	analyze bool
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered table without the interactive interface",
		Long: `Loads the dataset once, applies --max and then --search, and prints the
matching entries in dataset order.

Example:
  pokesearch list --source http://localhost:8080/ --search saur --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), cmd.OutOrStdout(), root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "case-insensitive name filter")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, json, csv")
	cmd.Flags().BoolVar(&opts.analyze, "analyze", false, "append a summary of the matches (text format only)")

	return cmd
}

func runList(ctx context.Context, out io.Writer, root *rootOptions, opts *listOptions) error {
	if opts.analyze && opts.format != "text" {
		return fmt.Errorf("--analyze requires --format text, got %q", opts.format)
	}
	switch opts.format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if timeout, _ := root.cfg.TimeoutDuration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	r, err := reader.NewReader(root.cfg.Source, root.logger)
	if err != nil {
		return err
	}

	dataset, err := r.Load(ctx)
	if err != nil {
		root.logger.Error("failed to load dataset", zap.String("location", r.Location()), zap.Error(err))
		return fmt.Errorf("failed to load dataset from %s: %w", r.Location(), err)
	}

	derived := view.Derive(dataset, root.cfg.MaxEntries, opts.search)

	switch opts.format {
	case "json":
		return writeJSON(out, derived.Records)
	case "csv":
		return writeCSV(out, derived.Records)
	}

	if err := writeText(out, derived.Records); err != nil {
		return err
	}
	if opts.analyze {
		fmt.Fprintln(out)
		return analyzer.NewDatasetAnalyzer().Summarize(derived.Records).WriteText(out)
	}
	return nil
}

func writeText(out io.Writer, records []*types.Creature) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Pokemon\tType")
	for _, c := range records {
		fmt.Fprintf(tw, "%s\t%s\n", c.DisplayName(), c.TypeLabel())
	}
	return tw.Flush()
}

// jsonRecord is the pokemon.json element shape
type jsonRecord struct {
	ID   int            `json:"id"`
	Name types.Name     `json:"name"`
	Type []string       `json:"type"`
	Base map[string]int `json:"base"`
}

func writeJSON(out io.Writer, records []*types.Creature) error {
	elements := make([]jsonRecord, 0, len(records))
	for _, c := range records {
		base := make(map[string]int)
		for _, row := range view.DetailRows(c) {
			base[row.Key.String()] = row.Value
		}
		elements = append(elements, jsonRecord{ID: c.ID, Name: c.Name, Type: c.Types, Base: base})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(elements)
}

func writeCSV(out io.Writer, records []*types.Creature) error {
	w := csv.NewWriter(out)

	header := []string{"id", "name", "type"}
	for _, k := range types.StatKeys() {
		header = append(header, k.String())
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, c := range records {
		row := []string{strconv.Itoa(c.ID), c.DisplayName(), c.TypeLabel()}
		for _, stat := range view.DetailRows(c) {
			row = append(row, strconv.Itoa(stat.Value))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
