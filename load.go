package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	cgmes "cim-mapping/internal/cgmes/domain"
	"cim-mapping/internal/cgmes/infrastructure/rdfxml"
	"cim-mapping/internal/observability/metrics"
)

var loadCmd = &cobra.Command{
	Use:   "load FILE...",
	Short: "Load CGMES RDF/XML files or zip archives into the triple store",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, store, err := openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	var triples []cgmes.Triple
	for _, path := range args {
		read, err := rdfxml.ReadFile(path)
		if err != nil {
			return err
		}
		logger.Printf("read %s: triples=%d", path, len(read))
		triples = append(triples, read...)
	}

	loaded, err := store.Load(ctx, triples)
	if err != nil {
		return err
	}
	metrics.AddLoadedTriples(loaded)
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	logger.Printf("load done: table=%s loaded=%d stored=%d", store.Table(), loaded, total)
	writeMetrics(cfg, logger)
	return nil
}
