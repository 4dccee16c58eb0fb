package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/morler/texwatch/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file
type Config struct {
	Version      string        `mapstructure:"version"`
	Compiler     string        `mapstructure:"compiler"`
	Bibliography string        `mapstructure:"bibliography"`
	OutputExt    string        `mapstructure:"output_ext"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	HistoryDir   string        `mapstructure:"history_dir"`
	Notify       bool          `mapstructure:"notify"`
	Color        string        `mapstructure:"color"`
	Theme        string        `mapstructure:"theme"`
	Verbose      bool          `mapstructure:"verbose"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:      "0.3.0",
	Compiler:     "pdflatex",
	Bibliography: "bibtex",
	OutputExt:    "pdf",
	PollInterval: time.Second,
	HistoryDir:   "history",
	Notify:       true,
	Color:        "auto",
	Theme:        "dracula",
	Verbose:      false,
}

// ConfigName is the config file name searched for next to the source file,
// without extension (yaml, yml, json and toml are accepted).
const ConfigName = "texwatch-config"

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs builds the final configuration from defaults, the config file,
// environment variables and CLI flags, in increasing priority. searchDir is
// where texwatch-config.* is looked up when --config is not given.
func LoadConfigs(cmd *cobra.Command, searchDir string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	bindEnv(v)

	if cfgFile != "" {
		if GetConfigFileType(cfgFile) == "" {
			return nil, fmt.Errorf("unsupported config file %q (expected .yaml, .yml, .json or .toml)", cfgFile)
		}
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(searchDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			logger.Debugf("no configuration file found in %s, using defaults", searchDir)
		}
	}
	if used := v.ConfigFileUsed(); used != "" {
		logger.WithField("file", used).Debugf("using configuration file")
	}

	if cmd != nil {
		bindFlags(v, cmd)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks values that would otherwise fail deep inside the watch loop.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Compiler) == "" {
		return errors.New("compiler must not be empty")
	}
	if strings.TrimSpace(c.Bibliography) == "" {
		return errors.New("bibliography must not be empty")
	}
	c.OutputExt = strings.TrimPrefix(strings.TrimSpace(c.OutputExt), ".")
	if c.OutputExt == "" {
		return errors.New("output_ext must not be empty")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if strings.TrimSpace(c.HistoryDir) == "" {
		return errors.New("history_dir must not be empty")
	}
	switch strings.ToLower(c.Color) {
	case "auto", "on", "off":
		c.Color = strings.ToLower(c.Color)
	default:
		return fmt.Errorf("invalid color value %q (expected auto|on|off)", c.Color)
	}
	return nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("compiler", DefaultConfig.Compiler)
	v.SetDefault("bibliography", DefaultConfig.Bibliography)
	v.SetDefault("output_ext", DefaultConfig.OutputExt)
	v.SetDefault("poll_interval", DefaultConfig.PollInterval)
	v.SetDefault("history_dir", DefaultConfig.HistoryDir)
	v.SetDefault("notify", DefaultConfig.Notify)
	v.SetDefault("color", DefaultConfig.Color)
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("verbose", DefaultConfig.Verbose)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("compiler", "TEXWATCH_COMPILER")
	_ = v.BindEnv("bibliography", "TEXWATCH_BIBLIOGRAPHY")
	_ = v.BindEnv("output_ext", "TEXWATCH_OUTPUT_EXT")
	_ = v.BindEnv("poll_interval", "TEXWATCH_POLL_INTERVAL")
	_ = v.BindEnv("history_dir", "TEXWATCH_HISTORY_DIR")
	_ = v.BindEnv("notify", "TEXWATCH_NOTIFY")
	_ = v.BindEnv("color", "TEXWATCH_COLOR")
	_ = v.BindEnv("theme", "TEXWATCH_THEME")
	_ = v.BindEnv("verbose", "TEXWATCH_VERBOSE")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	flags := cmd.Root().PersistentFlags()
	_ = v.BindPFlag("compiler", flags.Lookup("compiler"))
	_ = v.BindPFlag("bibliography", flags.Lookup("bibliography"))
	_ = v.BindPFlag("output_ext", flags.Lookup("output_ext"))
	_ = v.BindPFlag("poll_interval", flags.Lookup("poll_interval"))
	_ = v.BindPFlag("history_dir", flags.Lookup("history_dir"))
	_ = v.BindPFlag("notify", flags.Lookup("notify"))
	_ = v.BindPFlag("color", flags.Lookup("color"))
	_ = v.BindPFlag("theme", flags.Lookup("theme"))
	_ = v.BindPFlag("verbose", flags.Lookup("verbose"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to a configuration file (YAML, JSON or TOML). Defaults to texwatch-config.* next to the source file.")

	// Toolchain
	rootCmd.PersistentFlags().String("compiler", DefaultConfig.Compiler, "Compiler command line, run with -interaction=nonstopmode -output-directory <dir> <source> appended (e.g. 'pdflatex -synctex=1').")
	rootCmd.PersistentFlags().String("bibliography", DefaultConfig.Bibliography, "Bibliography processor command line, run with the source base name in the output directory (e.g. 'bibtex', 'biber').")
	rootCmd.PersistentFlags().String("output_ext", DefaultConfig.OutputExt, "Extension of the derived output file produced by the compiler.")

	// Watching
	rootCmd.PersistentFlags().Duration("poll_interval", DefaultConfig.PollInterval, "How long each poll waits for input before checking the source for changes.")
	rootCmd.PersistentFlags().Bool("notify", DefaultConfig.Notify, "Use filesystem notifications to react to saves before the next poll.")
	rootCmd.PersistentFlags().String("history_dir", DefaultConfig.HistoryDir, "Name of the snapshot directory created next to the source file.")

	// Terminal
	rootCmd.PersistentFlags().String("color", DefaultConfig.Color, "Colorize output (auto|on|off).")
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Chroma theme used to highlight source excerpts (e.g. 'dracula', 'monokai').")
	rootCmd.PersistentFlags().BoolP("verbose", "V", DefaultConfig.Verbose, "Log toolchain invocations and watcher events to stderr.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".json"):
		return "json"
	case strings.HasSuffix(filename, ".yaml"), strings.HasSuffix(filename, ".yml"):
		return "yaml"
	case strings.HasSuffix(filename, ".toml"):
		return "toml"
	}
	return ""
}
