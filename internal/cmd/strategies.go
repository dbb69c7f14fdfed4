package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/runger/bistro/internal/config"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List available scoring strategies",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		reg, err := buildRegistry(cfg)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, name := range reg.Names() {
			strat, err := reg.Get(name)
			if err != nil {
				return err
			}

			marker := " "
			if name == cfg.Engine.DefaultStrategy {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %s\n", marker, name)

			signals := make([]string, 0, len(strat.Weights))
			for sig := range strat.Weights {
				signals = append(signals, sig)
			}
			sort.Strings(signals)
			for _, sig := range signals {
				fmt.Fprintf(w, "    %-8s %.2f\n", sig, strat.Weights[sig])
			}
		}
		fmt.Fprintln(w, "\n* default strategy")
		return nil
	},
}
