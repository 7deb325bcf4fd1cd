package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"healthdata/internal/model"
)

type exportFile struct {
	GeneratedAt string        `json:"generated_at"`
	Resolutions []exportEntry `json:"resolutions"`
}

type exportEntry struct {
	ID         string             `json:"id"`
	Metrics    []model.MetricID   `json:"metrics"`
	Candidates []model.ProviderID `json:"candidates"`
	Providers  []model.ProviderID `json:"providers"`
	Outcome    model.Outcome      `json:"outcome"`
	Error      string             `json:"error,omitempty"`
	ResolvedAt string             `json:"resolved_at"`
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the resolution audit log as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			resolutions, err := a.service.History(cmd.Context(), 0)
			if err != nil {
				return err
			}

			if dir := filepath.Dir(outPath); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}
			if err := writeJSON(outPath, buildExport(resolutions, time.Now())); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "export complete (out=%s resolutions=%d)\n", outPath, len(resolutions))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "resolutions.json", "output file")
	return cmd
}

func buildExport(resolutions []model.Resolution, now time.Time) exportFile {
	entries := make([]exportEntry, 0, len(resolutions))
	for _, resolution := range resolutions {
		entries = append(entries, exportEntry{
			ID:         resolution.ID,
			Metrics:    resolution.Metrics,
			Candidates: resolution.Candidates,
			Providers:  resolution.Providers,
			Outcome:    resolution.Outcome,
			Error:      resolution.Error,
			ResolvedAt: resolution.ResolvedAt.UTC().Format(time.RFC3339),
		})
	}
	return exportFile{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Resolutions: entries,
	}
}

func writeJSON(path string, value any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
