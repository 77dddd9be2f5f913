// Package cli provides the command-line interface for mocksmith.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "mocksmith",
	Short: "Mocksmith - declarative HTTP mock servers",
	Long: `Mocksmith stands up HTTP mock servers from declarative YAML files.

Each route answers with a canned JSON value (or a generated one), optionally
behind a shared-secret auth gate, under a route prefix, and with artificial
response delays for timeout testing.

Examples:
  mocksmith serve -f mocks.yaml          # Start the mock server
  mocksmith serve -f mocks.yaml -p 4005  # Override the port
  mocksmith routes -f mocks.yaml         # Show the effective route table
  mocksmith config init                  # Create a default config file`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/mocksmith/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mocksmith version 0.1.0")
	},
}

// exitError prints an error message and exits.
func exitError(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
