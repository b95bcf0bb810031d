package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cim-mapping/internal/cgmes/infrastructure/sqlstore"
	"cim-mapping/internal/config"
	"cim-mapping/internal/observability/metrics"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "cim-mapping",
	Short:         "Map CIM/CGMES models to IEC 61850 SCL",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $CIM_MAPPING_CONFIG)")
}

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Printf("cim-mapping: %v", err)
		stop()
		os.Exit(1)
	}
}

// openStore loads configuration and opens the triple store with its
// schema in place and metrics registered.
func openStore(ctx context.Context, logger *log.Logger) (config.Config, *sqlstore.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	store, err := sqlstore.Open(ctx, cfg.Database.DSN, sqlstore.WithTable(cfg.Database.Table))
	if err != nil {
		return cfg, nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return cfg, nil, err
	}
	metrics.Init(store.DB(), store.Table(), logger)
	return cfg, store, nil
}

func writeMetrics(cfg config.Config, logger *log.Logger) {
	if cfg.Output.MetricsTextfile == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.Output.MetricsTextfile); err != nil {
		logger.Printf("metrics textfile error: %v", err)
	}
}
