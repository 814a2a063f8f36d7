package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tinybuf",
	Short: "tinybuf - compact schema-driven binary serialization",
	Long: `tinybuf encodes and decodes binary payloads through plain-text
schema files (.buf). Schemas are resolved at load time; there is no
code generation step.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
