package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"go-chi-calculator/internal/machine"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "calc",
		Short:         "Desk calculator in the terminal",
		Long:          `Evaluate flat arithmetic expressions or drive the calculator key by key.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().Int("max-history", 100, "History entries kept (0 = unbounded)")
	rootCmd.PersistentFlags().Int("max-memory", 50, "Memory entries kept (0 = unbounded)")

	rootCmd.AddCommand(
		NewEvalCmd(),
		NewKeysCmd(),
		NewReplCmd(),
	)
	return rootCmd
}

// reducerFromFlags builds a reducer honoring the persistent limit flags.
func reducerFromFlags(cmd *cobra.Command) *machine.Reducer {
	maxHistory, _ := cmd.Flags().GetInt("max-history")
	maxMemory, _ := cmd.Flags().GetInt("max-memory")
	return &machine.Reducer{MaxHistory: maxHistory, MaxMemory: maxMemory}
}

// printView writes the two-line readout: expression above, display below.
func printView(w io.Writer, v machine.DisplayView) {
	if v.Expression != "" {
		fmt.Fprintln(w, v.Expression)
	}
	fmt.Fprintln(w, v.Display)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
