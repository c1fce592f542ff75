package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/slideai/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "slideai",
	Short: "AI-generated slide presentations with a narrated script",
	Long: `slideai asks a chat-completion model for an HTML slide deck on a topic,
optionally enriched with uploaded text files, then for a spoken script
covering each slide. Presentations can be built from the browser, the
command line, or by AI agents over MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
