package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-chi-calculator/internal/keymap"
	"go-chi-calculator/internal/machine"
)

func NewKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <key...>",
		Short: "Replay a key sequence",
		Long: `Replay keys through the calculator and print the readout. Keys are keyboard
keys (0-9 . + - * / = % s x n r), glyphs (× ÷ −), named buttons
(sqrt sqr neg recip MS MR M+ M- MC CE C) or ctrl+<key>.`,
		Example: `  calc keys 0 . 1 + 0 . 2 =
  calc keys --trace 9 sqr sqr`,
		Args: cobra.MinimumNArgs(1),
		RunE: runKeys,
	}

	cmd.Flags().Bool("trace", false, "Print the readout after every action")
	cmd.Flags().Bool("json", false, "Print the final view as JSON")
	return cmd
}

func runKeys(cmd *cobra.Command, args []string) error {
	actions, err := keymap.Parse(args)
	if err != nil {
		return err
	}

	trace, _ := cmd.Flags().GetBool("trace")
	asJSON, _ := cmd.Flags().GetBool("json")
	reducer := reducerFromFlags(cmd)
	out := cmd.OutOrStdout()

	s := machine.InitialState()
	for _, a := range actions {
		s = reducer.Reduce(s, a)
		if trace {
			v := machine.View(s)
			fmt.Fprintf(out, "%-18s %-24s %s\n", a.Type, v.Expression, v.Display)
		}
	}

	if asJSON {
		return printJSON(out, machine.View(s))
	}
	if !trace {
		printView(out, machine.View(s))
	}
	return nil
}
