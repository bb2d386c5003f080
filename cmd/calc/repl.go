package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-chi-calculator/internal/decimal"
	"go-chi-calculator/internal/keymap"
	"go-chi-calculator/internal/machine"
)

func NewReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive calculator",
		Long: `Read whitespace-separated keys line by line and print the readout after each
line. "history" and "memory" list the side panels; "quit" exits.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	reducer := reducerFromFlags(cmd)
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	s := machine.InitialState()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "history":
			for _, h := range machine.SortHistory(s.History, machine.Newest) {
				fmt.Fprintf(out, "%s = %s\n", h.Expression, decimal.FormatValue(h.Result))
			}
			continue
		case "memory":
			for i, m := range s.Memory {
				fmt.Fprintf(out, "M%d %s\n", i, decimal.FormatValue(m.Value))
			}
			continue
		}

		actions, err := keymap.Parse(strings.Fields(line))
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}
		for _, a := range actions {
			s = reducer.Reduce(s, a)
		}
		printView(out, machine.View(s))
	}
	return scanner.Err()
}
