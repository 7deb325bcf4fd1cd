package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"healthdata/internal/model"
	"healthdata/internal/resolver"
)

func newResolveCmd(opts *globalOptions) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "resolve METRIC [METRIC...]",
		Short: "Print the providers required for the given metrics",
		Long: `Resolve looks up the authoritative provider of each metric, deduplicates
them and prints the providers the caller must consult. Metrics may be given as
separate arguments or comma-separated.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			plan, err := a.service.Resolve(cmd.Context(), parseMetricArgs(args))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if explain {
				fmt.Fprintf(out, "metrics:    %s\n", joinMetricIDs(plan.Metrics))
				fmt.Fprintf(out, "candidates: %s\n", joinProviderIDs(resolver.ProviderIDs(plan.Candidates)))
				fmt.Fprintf(out, "single:     %t\n", plan.SingleProvider)
			}
			for _, id := range resolver.ProviderIDs(plan.Providers) {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "also print candidate providers and whether one provider handles the whole query")
	return cmd
}

func parseMetricArgs(args []string) []model.MetricID {
	var values []string
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				values = append(values, part)
			}
		}
	}
	return model.ParseMetricIDs(values)
}

func joinMetricIDs(ids []model.MetricID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, string(id))
	}
	return strings.Join(parts, ",")
}

func joinProviderIDs(ids []model.ProviderID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, string(id))
	}
	return strings.Join(parts, ",")
}
