package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aj-tap/supersqlhunt/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sqlhunt",
	Short: "Build, browse and contribute to a catalog of SQL threat-hunting rules",
	Long: `sqlhunt compiles a directory of YAML hunting rules into a single
rules.json document, renders a searchable catalog site from it, and
prepares new rule contributions as pre-filled files on the hosting service.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
