// File: cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/paramctl/internal/config"
	"github.com/xkilldash9x/paramctl/internal/observability"
)

type contextKey string

const configKey contextKey = "config"

const (
	defaultConfigFile = "config.yaml"
	homeConfigFile    = "~/.paramctl.yaml"
)

// Execute builds the root command and runs it with the provided context.
// Errors are logged here; the caller only decides the exit code.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			observability.GetLogger().Warn("Command aborted by user signal")
		} else {
			observability.GetLogger().Error("Command execution failed", zap.Error(err))
		}
		observability.Sync()
		return err
	}
	observability.Sync()
	return nil
}

// NewRootCommand creates a fresh root command with all subcommands attached.
// Every call returns an independent tree so flags never leak between runs.
func NewRootCommand() *cobra.Command {
	var cfgFile string
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "paramctl",
		Short:         "paramctl applies controller parameter tables to a robot model.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env goes first so its variables are visible to viper's env binding.
			if err := config.LoadEnvFile(envFile); err != nil {
				return err
			}

			v := viper.New()
			config.SetDefaults(v)
			if err := initializeConfig(v, cfgFile); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.NewDefaultConfig().Logger())
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Debug("Starting paramctl",
				zap.String("version", Version),
				zap.String("config", v.ConfigFileUsed()),
			)

			cmd.SetContext(context.WithValue(cmd.Context(), configKey, config.Interface(cfg)))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml, then ~/.paramctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file loaded before the configuration (default is ./.env)")
	rootCmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)

	provider := NewHostProvider()
	rootCmd.AddCommand(
		newApplyCmd(provider),
		newDumpCmd(provider),
		newDiffCmd(provider),
		newShowCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// initializeConfig points v at the config file to read. An explicit file must
// exist; otherwise ./config.yaml and ~/.paramctl.yaml are tried in order and
// running without either is fine.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	v.SetConfigType("yaml")

	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to expand config path: %w", err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		return nil
	}

	for _, candidate := range []string{defaultConfigFile, homeConfigFile} {
		path, err := homedir.Expand(candidate)
		if err != nil {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file %s: %w", path, err)
		}
		return nil
	}
	return nil
}

// getConfigFromContext returns the configuration stored by PersistentPreRunE.
func getConfigFromContext(ctx context.Context) (config.Interface, error) {
	cfg, ok := ctx.Value(configKey).(config.Interface)
	if !ok || cfg == nil {
		return nil, errors.New("configuration not found in command context")
	}
	return cfg, nil
}
