// File: cmd/apply.go
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/paramctl/internal/applier"
	"github.com/xkilldash9x/paramctl/internal/config"
	"github.com/xkilldash9x/paramctl/internal/observability"
)

// newApplyCmd creates and configures the `apply` command.
func newApplyCmd(provider hostProvider) *cobra.Command {
	var table string

	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Write every parameter of a table to the controller and read it back",
		Long: `Writes each entry of the parameter table to the controller, reads it back and
reports one line per parameter. A rejected parameter is reported and the
remaining parameters are still applied; the command succeeds either way.`,
		Args: cobra.NoArgs,
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

			return runApply(ctx, observability.GetLogger(), cfg, provider)
		},
	}

	applyCmd.Flags().StringVarP(&table, "table", "t", "", "YAML parameter table (default is the built-in TX2-40 HB table)")
	addSimFlags(applyCmd)
	return applyCmd
}

// runApply contains the core, testable logic of the apply command.
func runApply(ctx context.Context, logger *zap.Logger, cfg config.Interface, provider hostProvider) error {
	tpl, err := resolveTemplate(cfg.Controller())
	if err != nil {
		return err
	}
	table, err := loadTable(cfg.Apply().Table)
	if err != nil {
		return fmt.Errorf("failed to load parameter table: %w", err)
	}

	h, cleanup, err := provider.Create(ctx, cfg, tpl, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize host: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	logger.Info("Applying parameters",
		zap.String("controller", tpl.Controller()),
		zap.Int("entries", table.Len()),
		zap.String("table", tableSource(cfg.Apply().Table)),
	)
	applier.New(h,
		applier.WithTemplate(tpl),
		applier.WithMessageFlag(cfg.Apply().MessageFlag),
		applier.WithLogger(logger),
	).Apply(table)
	return nil
}

func tableSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

// addSimFlags registers the flags that configure the simulated host.
func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().String("state", "", "SQLite file persisting simulated parameter values")
	cmd.Flags().Bool("open", false, "let writes create parameters the simulated controller does not declare")
}

// applySimFlags copies explicitly set simulator flags over the configuration.
func applySimFlags(cmd *cobra.Command, cfg config.Interface) {
	if cmd.Flags().Changed("state") {
		state, _ := cmd.Flags().GetString("state")
		cfg.SetSimState(state)
	}
	if cmd.Flags().Changed("open") {
		open, _ := cmd.Flags().GetBool("open")
		cfg.SetSimOpen(open)
	}
}
