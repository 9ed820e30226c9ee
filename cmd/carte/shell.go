package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/carte/internal/console"
	"github.com/aretw0/carte/internal/platform"
	"github.com/aretw0/carte/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Browse and edit the menu interactively",
	Long: `Start the interactive menu over stdin and stdout. Category cascades are
asked in the session unless --cascade says yes or no.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		menu := console.NewMenu(os.Stdin, os.Stdout)
		decider, err := deciderFor(settings.GetString(cfgKeyCascade), menu)
		if err != nil {
			fatal("Invalid configuration", err)
		}

		catalog, err := platform.New(dataDir(), append(catalogOptions(), platform.WithDecider(decider))...)
		if err != nil {
			fatal("Failed to open catalog", err)
		}

		if err := shell.New(catalog, menu, slog.Default()).Run(context.Background()); err != nil {
			fatal("Session ended", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
