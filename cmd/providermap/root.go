package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"healthdata/internal/catalog"
	"healthdata/internal/config"
	"healthdata/internal/dispatch"
	"healthdata/internal/logging"
	"healthdata/internal/metrics"
	"healthdata/internal/store"
	"healthdata/internal/store/sqlite"
)

type globalOptions struct {
	configPath string
	logLevel   string
	dbPath     string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "providermap",
		Short: "Resolve health metrics to the data providers that serve them",
		Long: `providermap maps requested health metrics (population, COVID, BRFSS
survey measures) to the data provider modules that must be invoked to compute
them, collapsing to a single provider when one can answer the whole query.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "sqlite audit database path (overrides config)")

	rootCmd.AddCommand(newResolveCmd(opts))
	rootCmd.AddCommand(newProvidersCmd())
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))

	return rootCmd
}

// app bundles what a command needs after configuration is loaded.
type app struct {
	cfg     *config.Config
	store   store.Store
	prom    *metrics.Prom
	service *dispatch.Service
}

func (a *app) Close() error {
	return a.store.Close()
}

func loadApp(opts *globalOptions) (*app, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.dbPath != "" {
		cfg.Storage.SQLitePath = opts.dbPath
	}
	logging.Init(cfg.LogLevel)

	res, err := catalog.NewResolver()
	if err != nil {
		return nil, err
	}

	st, err := openStore(cfg.Storage.SQLitePath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, store: st}
	var recorder metrics.Recorder = metrics.Noop{}
	if cfg.Metrics.Enabled {
		a.prom = metrics.NewProm()
		recorder = a.prom
	}
	a.service = dispatch.New(res, st, recorder)

	log.WithFields(log.Fields{
		"providers": len(res.Providers()),
		"metrics":   len(res.Metrics()),
		"audit":     cfg.Storage.SQLitePath != "",
	}).Debug("provider map ready")
	return a, nil
}

func openStore(path string) (store.Store, error) {
	if path == "" {
		return &store.NopStore{}, nil
	}
	return sqlite.New(path)
}
