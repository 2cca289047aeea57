// File: cmd/dump.go
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/paramctl/internal/config"
	"github.com/xkilldash9x/paramctl/internal/observability"
	"github.com/xkilldash9x/paramctl/internal/paramset"
	"github.com/xkilldash9x/paramctl/internal/readback"
)

// newDumpCmd creates and configures the `dump` command.
func newDumpCmd(provider hostProvider) *cobra.Command {
	var outputPath string

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Read the controller's current parameters back into a table",
		Long: `Reads KinID, the transformation parameters par_0..par_31 and every Axis_n/Ext_n
field the controller exposes. The result is rendered to stdout, or written as
YAML that 'apply --table' accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			applySimFlags(cmd, cfg)

			return runDump(ctx, observability.GetLogger(), cfg, outputPath, provider, cmd.OutOrStdout())
		},
	}

	dumpCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the snapshot to this YAML file instead of stdout")
	addSimFlags(dumpCmd)
	return dumpCmd
}

// runDump contains the core, testable logic of the dump command.
func runDump(ctx context.Context, logger *zap.Logger, cfg config.Interface, outputPath string, provider hostProvider, out io.Writer) error {
	tpl, snapshot, err := readSnapshot(ctx, logger, cfg, provider)
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := paramset.SaveTableFile(outputPath, snapshot); err != nil {
			return err
		}
		logger.Info("Snapshot written to file", zap.String("path", outputPath), zap.Int("entries", snapshot.Len()))
		return nil
	}
	return renderTable(out, "Controller snapshot", tpl, snapshot, false)
}

// readSnapshot creates the host and reads every parameter it reports.
func readSnapshot(ctx context.Context, logger *zap.Logger, cfg config.Interface, provider hostProvider) (paramset.Template, paramset.Table, error) {
	tpl, err := resolveTemplate(cfg.Controller())
	if err != nil {
		return paramset.Template{}, paramset.Table{}, err
	}

	h, cleanup, err := provider.Create(ctx, cfg, tpl, logger)
	if err != nil {
		return paramset.Template{}, paramset.Table{}, fmt.Errorf("failed to initialize host: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	snapshot, err := readback.Dump(h, tpl, logger)
	if err != nil {
		return paramset.Template{}, paramset.Table{}, err
	}
	return tpl, snapshot, nil
}
