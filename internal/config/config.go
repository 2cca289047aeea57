// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. PARAMCTL_LOGGER_LEVEL=debug.
const EnvPrefix = "PARAMCTL"

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Controller() ControllerConfig
	Apply() ApplyConfig
	Sim() SimConfig

	// Apply Setters
	SetApplyTable(path string)

	// Sim Setters
	SetSimState(path string)
	SetSimOpen(bool)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg     LoggerConfig     `mapstructure:"logger" yaml:"logger"`
	ControllerCfg ControllerConfig `mapstructure:"controller" yaml:"controller"`
	ApplyCfg      ApplyConfig      `mapstructure:"apply" yaml:"apply"`
	SimCfg        SimConfig        `mapstructure:"sim" yaml:"sim"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig         { return c.LoggerCfg }
func (c *Config) Controller() ControllerConfig { return c.ControllerCfg }
func (c *Config) Apply() ApplyConfig           { return c.ApplyCfg }
func (c *Config) Sim() SimConfig               { return c.SimCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetApplyTable(path string) { c.ApplyCfg.Table = path }
func (c *Config) SetSimState(path string)   { c.SimCfg.State = path }
func (c *Config) SetSimOpen(b bool)         { c.SimCfg.Open = b }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// ControllerConfig selects the controller node whose parameters are addressed.
// Either Path is given directly, or Block is resolved through the model
// block map exported from the simulation project.
type ControllerConfig struct {
	Path     string `mapstructure:"path" yaml:"path"`
	Block    string `mapstructure:"block" yaml:"block"`
	BlockMap string `mapstructure:"block_map" yaml:"block_map"`
}

// ApplyConfig controls the parameter applier.
type ApplyConfig struct {
	// MessageFlag is passed unchanged as the second argument of both host
	// message sinks.
	MessageFlag bool `mapstructure:"message_flag" yaml:"message_flag"`
	// Table is an optional YAML parameter table replacing the built-in one.
	Table string `mapstructure:"table" yaml:"table"`
}

// SimConfig configures the simulated controller host.
type SimConfig struct {
	// State is an optional SQLite file that persists parameter values.
	State string `mapstructure:"state" yaml:"state"`
	// Open lets writes declare parameters the model does not know yet.
	Open bool `mapstructure:"open" yaml:"open"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "paramctl")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Controller --
	// An empty path selects the built-in TX2-40 HB controller.
	v.SetDefault("controller.path", "")
	v.SetDefault("controller.block", "")
	v.SetDefault("controller.block_map", "")

	// -- Apply --
	v.SetDefault("apply.message_flag", false)
	v.SetDefault("apply.table", "")

	// -- Sim --
	v.SetDefault("sim.state", "")
	v.SetDefault("sim.open", false)
}

// BindEnv makes every configuration key overridable through PARAMCTL_* variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	BindEnv(v)

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.LoggerCfg.Validate(); err != nil {
		return fmt.Errorf("logger configuration invalid: %w", err)
	}
	if err := c.ControllerCfg.Validate(); err != nil {
		return fmt.Errorf("controller configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the logger settings.
func (l *LoggerConfig) Validate() error {
	switch l.Format {
	case "console", "json":
	default:
		return fmt.Errorf("format must be 'console' or 'json', got %q", l.Format)
	}
	if l.LogFile != "" && l.MaxSize <= 0 {
		return fmt.Errorf("max_size must be a positive integer when log_file is set")
	}
	return nil
}

// Validate checks the controller selection.
func (cc *ControllerConfig) Validate() error {
	if cc.Path != "" && cc.Block != "" {
		return fmt.Errorf("path and block are mutually exclusive")
	}
	if cc.Block != "" && cc.BlockMap == "" {
		return fmt.Errorf("block_map is required when block is set")
	}
	return nil
}
