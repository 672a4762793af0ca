package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mudra",
	Short: "mudra turns hand gestures seen by a webcam into desktop actions",
	Long: `mudra watches a webcam, classifies hand gestures frame by frame and fires
one OS action per stable gesture, with a two second cooldown between actions.
Running mudra without a subcommand is the same as "mudra run".`,
	SilenceUsage: true,
	RunE:         runMudra,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML config file (default $MUDRA_CONFIG)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}
