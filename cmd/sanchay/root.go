package main

import (
	"context"
	"fmt"
	"io"

	"github.com/sanchay/planner/internal/calculation"
	"github.com/sanchay/planner/internal/catalog"
	"github.com/sanchay/planner/internal/config"
	"github.com/sanchay/planner/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	configFile string
	logLevel   string

	cfg     *config.AppConfig
	logger  *zap.Logger
	engine  *calculation.CalculationEngine
	catalog *catalog.Catalog

	closers []func() error
}

// run executes the command line in args and releases resources afterwards
func run(args []string, stdout, stderr io.Writer) error {
	a := &app{}
	defer a.close()
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sanchay",
		Short: "Savings and investment planner for Bangladeshi savers",
		Long: `Sanchay projects how savings certificates, DPS, fixed deposits, mutual funds
and stocks grow over time, estimates the tax withheld on their profit and
tracks a personal portfolio and savings goals.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "path to configuration file (YAML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newProjectCmd(a),
		newTaxCmd(a),
		newPayoutCmd(a),
		newScenariosCmd(a),
		newSimulateCmd(a),
		newSuggestCmd(a),
		newCatalogCmd(a),
		newPortfolioCmd(a),
		newProfileCmd(a),
		newGoalCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads configuration, logging, the engine and the product catalog
func (a *app) setup() error {
	cfg, err := config.NewInputParser().LoadFromFile(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := initializeLogger(cfg.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.closers = append(a.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	a.engine = calculation.NewCalculationEngineWithConfig(cfg.Tax.TaxRules(), cfg.Projection.MaxHorizonYears)
	a.engine.Debug = cfg.Projection.Debug
	a.engine.SetLogger(logger.Sugar())

	if cfg.CatalogFile != "" {
		a.catalog, err = catalog.LoadFile(cfg.CatalogFile)
	} else {
		a.catalog, err = catalog.Default()
	}
	if err != nil {
		return fmt.Errorf("failed to load product catalog: %w", err)
	}
	logger.Debug("configuration loaded",
		zap.String("op", "setup"),
		zap.String("config", a.configFile),
		zap.String("store_backend", cfg.Store.Backend),
	)
	return nil
}

// openStore opens the state container on the configured backend
func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	var p store.Persister
	switch a.cfg.Store.Backend {
	case config.BackendMemory:
		p = store.NewMemoryPersister()
	case config.BackendFile:
		p = store.NewFilePersister(a.cfg.Store.Path)
	case config.BackendRedis:
		rp := store.NewRedisPersister(a.cfg.Store.RedisAddr, a.cfg.Store.RedisKey)
		a.closers = append(a.closers, rp.Close)
		if err := rp.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to reach redis at %s: %w", a.cfg.Store.RedisAddr, err)
		}
		p = rp
	default:
		return nil, fmt.Errorf("unknown store backend %q", a.cfg.Store.Backend)
	}
	return store.Open(ctx, p, store.WithLogger(a.logger))
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.logger != nil {
			a.logger.Warn("cleanup failed", zap.String("op", "close"), zap.Error(err))
		}
	}
	a.closers = nil
}
