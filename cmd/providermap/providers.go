package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"healthdata/internal/catalog"
)

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List configured providers and the metrics each one is authoritative for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := catalog.NewResolver()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, provider := range res.Providers() {
				fmt.Fprintln(out, provider.ID())
				for _, metricID := range provider.ProvidesMetrics() {
					fmt.Fprintf(out, "  %s\n", metricID)
				}
			}
			return nil
		},
	}
}
