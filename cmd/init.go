package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aj-tap/supersqlhunt/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize sqlhunt configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the rules catalog and writes a .sqlhunt.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
