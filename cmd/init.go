package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ziadkadry99/slideai/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize slideai configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the completion endpoint and models, and writes a .slideai.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
