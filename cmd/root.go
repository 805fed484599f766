// Package cmd implements the merchant-console command line.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/spf13/cobra"
	"github.com/yi-nology/merchant_console/pkg/config"
)

// Version is the console release.
const Version = "0.3.0"

var (
	cfgFile  string
	backend  string
	operator string
	debug    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "merchant-console",
	Short: "Operator console for payment merchant configurations",
	Long: `merchant-console drives the merchant configuration backend: it lists,
saves and deletes system configs, binds WeChat official accounts, and
keeps a journal of every command it sends.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		applyFlags(cmd, loaded)
		level, err := parseLevel(loaded.Log.Level)
		if err != nil {
			return err
		}
		hlog.SetLevel(level)
		cfg = loaded
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "backend base url (overrides backend.base_url)")
	rootCmd.PersistentFlags().StringVar(&operator, "operator", "", "operator recorded in the journal")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// GetRootCmd returns the root command for tests.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("backend") {
		c.Backend.BaseURL = config.NormalizeBaseURL(backend)
	}
	if flags.Changed("operator") {
		c.Console.Operator = strings.TrimSpace(operator)
	}
	if debug {
		c.Log.Level = "debug"
	}
	if c.Console.Operator == "" {
		c.Console.Operator = os.Getenv("USER")
	}
}

func parseLevel(name string) (hlog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return hlog.LevelTrace, nil
	case "debug":
		return hlog.LevelDebug, nil
	case "", "info":
		return hlog.LevelInfo, nil
	case "notice":
		return hlog.LevelNotice, nil
	case "warn", "warning":
		return hlog.LevelWarn, nil
	case "error":
		return hlog.LevelError, nil
	case "fatal":
		return hlog.LevelFatal, nil
	}
	return hlog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}
