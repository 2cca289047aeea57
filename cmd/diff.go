// File: cmd/diff.go
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/paramctl/internal/compare"
	"github.com/xkilldash9x/paramctl/internal/config"
	"github.com/xkilldash9x/paramctl/internal/observability"
)

// newDiffCmd creates and configures the `diff` command.
func newDiffCmd(provider hostProvider) *cobra.Command {
	var table string
	var tolerance float64

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare a parameter table against the controller's current values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("table") {
				cfg.SetApplyTable(table)
			}
			applySimFlags(cmd, cfg)

			_, err = runDiff(ctx, observability.GetLogger(), cfg, compare.Options{Tolerance: tolerance}, provider, cmd.OutOrStdout())
			return err
		},
	}

	diffCmd.Flags().StringVarP(&table, "table", "t", "", "expected YAML parameter table (default is the built-in TX2-40 HB table)")
	diffCmd.Flags().Float64Var(&tolerance, "tolerance", compare.DefaultTolerance, "absolute tolerance for value equality")
	addSimFlags(diffCmd)
	return diffCmd
}

// runDiff contains the core, testable logic of the diff command.
func runDiff(ctx context.Context, logger *zap.Logger, cfg config.Interface, opts compare.Options, provider hostProvider, out io.Writer) (compare.Result, error) {
	expected, err := loadTable(cfg.Apply().Table)
	if err != nil {
		return compare.Result{}, fmt.Errorf("failed to load parameter table: %w", err)
	}
	_, actual, err := readSnapshot(ctx, logger, cfg, provider)
	if err != nil {
		return compare.Result{}, err
	}

	res := compare.TablesWithOptions(expected, actual, opts)
	logger.Debug("Compared table against controller",
		zap.Int("missing", len(res.Missing)),
		zap.Int("extra", len(res.Extra)),
		zap.Int("changed", len(res.Changed)),
	)
	return res, renderDiff(out, res)
}
