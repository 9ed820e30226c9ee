package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	verbose    bool
	configPath string
)

// settings holds the merged flag, env and carte.yaml configuration.
// Set by PersistentPreRunE so all subcommands can use it.
var settings *viper.Viper

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "carte",
	Short: "A file-backed record store for a restaurant menu",
	Long: `Carte keeps dishes and categories as ordered records in plain files
(JSON, YAML, XML or CSV). Adding a dish creates its category, and renaming
or removing a category can carry over to its dishes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		cfg, err := loadConfig(configPath, cmd.Root().PersistentFlags())
		if err != nil {
			return err
		}
		settings = cfg
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: carte.yaml in the nearest data directory)")
	addConfigFlags(rootCmd.PersistentFlags())
}
