package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/carte/internal/platform"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create the data files and a default carte.yaml",
	Long: `Create the category and dish files in dir (default: the configured data
directory) and write a carte.yaml there so later commands find it.
Existing files are left untouched.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := dataDir()
		if len(args) == 1 {
			dir = args[0]
		}

		p, err := platform.Init(dir, catalogOptions()...)
		if err != nil {
			fatal("Failed to initialize catalog", err)
		}
		wrote, err := ensureDefaultConfigFile(p.Dir, settings.GetString(cfgKeyFormat))
		if err != nil {
			fatal("Failed to write "+platform.ConfigFileName, err)
		}

		fmt.Println("Initialized carte catalog in", p.Dir)
		if wrote {
			fmt.Println("Wrote", platform.ConfigFileName)
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
