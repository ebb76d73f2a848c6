package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcus/markview/internal/config"
)

var (
	version   string
	configDir string
	cfg       *config.Config
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "markview [target]",
	Short: "Terminal hypertext viewer",
	Long: `markview - browse HTML, Markdown and plain text documents in the terminal.

A target is a URL, a path to a local file, or a bare host name such as go.dev.
Move between links with the arrow keys or hjkl and follow them with enter.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setup,
	RunE:              runBrowser,
	SilenceUsage:      true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetGlobalNormalizationFunc(normalizeFlag)
	rootCmd.PersistentFlags().String("config", "", "config directory (default: user config dir)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Int("max-width", 0, "maximum document width")
}

// normalizeFlag accepts underscores in flag names, matching the config keys.
func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// setup loads the configuration, applies flag overrides and attaches a
// stderr logger to the command context.
func setup(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("config")
	if dir == "" {
		var err error
		if dir, err = config.Dir(); err != nil {
			return err
		}
	}

	c, err := config.Load(dir)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		c.LogLevel = lvl
	}
	if w, _ := cmd.Flags().GetInt("max-width"); w > 0 {
		c.MaxWidth = w
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	configDir, cfg = dir, c
	level, _ := cfg.Level()
	cmd.SetContext(log.WithContext(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
	return nil
}
