package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print recent resolutions from the audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			resolutions, err := a.service.History(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(resolutions) == 0 {
				fmt.Fprintln(out, "no resolutions recorded (is storage.sqlite_path set?)")
				return nil
			}
			for _, resolution := range resolutions {
				fmt.Fprintf(out, "%s %-16s metrics=%s providers=%s",
					resolution.ResolvedAt.Local().Format(time.RFC3339),
					resolution.Outcome,
					joinMetricIDs(resolution.Metrics),
					joinProviderIDs(resolution.Providers),
				)
				if resolution.Error != "" {
					fmt.Fprintf(out, " error=%q", resolution.Error)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of resolutions to print (0 = all)")
	return cmd
}
