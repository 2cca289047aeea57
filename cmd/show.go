// File: cmd/show.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newShowCmd creates and configures the `show` command.
func newShowCmd() *cobra.Command {
	var table string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show a parameter table and the controller paths it will be written to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("table") {
				cfg.SetApplyTable(table)
			}

			tpl, err := resolveTemplate(cfg.Controller())
			if err != nil {
				return err
			}
			t, err := loadTable(cfg.Apply().Table)
			if err != nil {
				return fmt.Errorf("failed to load parameter table: %w", err)
			}
			return renderTable(cmd.OutOrStdout(), "Parameter table ("+tableSource(cfg.Apply().Table)+")", tpl, t, true)
		},
	}

	showCmd.Flags().StringVarP(&table, "table", "t", "", "YAML parameter table (default is the built-in TX2-40 HB table)")
	return showCmd
}
