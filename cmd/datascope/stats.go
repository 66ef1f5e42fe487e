// Stats command recomputes dataset schema statistics.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/datascope/internal/service"
	"github.com/mesh-intelligence/datascope/internal/sqlite"
	"github.com/mesh-intelligence/datascope/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats [dataset-name]",
	Short: "Recompute schema statistics",
	Long: `Stats recomputes row counts and per-field statistics (null fraction,
distinct count, example value, inferred type) from a full scan of the
records. With no argument every dataset is recomputed; with a dataset name
only that dataset is.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	svc := service.NewStatsService(backend)

	var datasets []types.Dataset
	if len(args) == 1 {
		ds, err := backend.Datasets().GetByName(args[0])
		if err != nil {
			return fmt.Errorf("dataset %q: %w", args[0], err)
		}
		if err := svc.Recompute(ds.ID); err != nil {
			return fmt.Errorf("recompute %q: %w", ds.Name, err)
		}
		datasets = []types.Dataset{*ds}
	} else {
		if err := svc.RecomputeAll(); err != nil {
			return fmt.Errorf("recompute all: %w", err)
		}
		datasets, err = backend.Datasets().All()
		if err != nil {
			return fmt.Errorf("list datasets: %w", err)
		}
	}

	for _, ds := range datasets {
		if err := printDatasetStats(backend, ds); err != nil {
			return err
		}
	}
	return nil
}

func printDatasetStats(backend *sqlite.Backend, ds types.Dataset) error {
	// Row count is stale in the loop variable after recompute; re-read it.
	fresh, err := backend.Datasets().Get(ds.ID)
	if err != nil {
		return fmt.Errorf("reload dataset %q: %w", ds.Name, err)
	}
	fields, err := backend.Datasets().Fields(ds.ID)
	if err != nil {
		return fmt.Errorf("load fields of %q: %w", ds.Name, err)
	}

	color.Cyan("%s (%d records)", fresh.Name, fresh.RowCount)
	for _, f := range fields {
		fmt.Printf("  %-24s %-8s null=%.2f distinct=%d\n",
			f.Name, f.Type, f.NullFrac, f.DistinctCount)
	}
	return nil
}
