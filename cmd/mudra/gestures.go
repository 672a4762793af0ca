package main

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/logging"
)

var gesturesCmd = &cobra.Command{
	Use:   "gestures",
	Short: "List gestures and the actions they fire",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log := logging.NewNop()
		table := action.DefaultTable(action.NewRunner(0, log, nil), log, actionDefaults(cfg, runtime.GOOS))

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "GESTURE\tACTION\tDESCRIPTION")
		for _, e := range table.Entries() {
			name := e.Binding.Name
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Label, name, e.Binding.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(gesturesCmd)
}
