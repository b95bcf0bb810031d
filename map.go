package main

import (
	"bytes"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	mapping "cim-mapping/internal/mapping/application"
	"cim-mapping/internal/mapping/interfaces/report"
	"cim-mapping/internal/observability/metrics"
	scl "cim-mapping/internal/scl/domain"
)

var (
	mapOut  string
	mapXLSX string
	mapPDF  string
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Map the stored model to an SCL substation section",
	Args:  cobra.NoArgs,
	RunE:  runMap,
}

func init() {
	mapCmd.Flags().StringVar(&mapOut, "out", "", "SCL output file (default stdout)")
	mapCmd.Flags().StringVar(&mapXLSX, "xlsx", "", "inventory workbook output file")
	mapCmd.Flags().StringVar(&mapPDF, "pdf", "", "summary PDF output file")
	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, store, err := openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	var contextOpts []mapping.ContextOption
	if cfg.LogQuery {
		contextOpts = append(contextOpts, mapping.WithContextLogger(logger))
	}
	mc, err := mapping.NewContext(store, store.Catalog(), contextOpts...)
	if err != nil {
		return err
	}
	mapper := mapping.NewMapper(
		mapping.WithLogger(logger),
		mapping.WithHeader(mapping.HeaderConfig{
			Version:  cfg.SCL.Version,
			Revision: cfg.SCL.Revision,
			Release:  cfg.SCL.Release,
			ToolID:   cfg.SCL.ToolID,
		}),
	)
	doc, err := mapper.Map(ctx, mc)
	if err != nil {
		return err
	}

	out := firstNonEmpty(mapOut, cfg.Output.SCLPath)
	if err := writeSCL(out, doc); err != nil {
		return err
	}
	if path := firstNonEmpty(mapXLSX, cfg.Output.InventoryXLSX); path != "" {
		if err := export(path, "xlsx", func() ([]byte, error) { return report.BuildInventoryXLSX(doc) }); err != nil {
			return err
		}
	}
	if path := firstNonEmpty(mapPDF, cfg.Output.SummaryPDF); path != "" {
		if err := export(path, "pdf", func() ([]byte, error) { return report.BuildSummaryPDF(doc) }); err != nil {
			return err
		}
	}
	writeMetrics(cfg, logger)
	return nil
}

func writeSCL(path string, doc *scl.Document) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	var buf bytes.Buffer
	if err := scl.Write(&buf, doc); err != nil {
		metrics.IncExport("scl", metrics.ResultError)
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		metrics.IncExport("scl", metrics.ResultError)
		return err
	}
	metrics.IncExport("scl", metrics.ResultSuccess)
	return nil
}

func export(path, format string, build func() ([]byte, error)) error {
	data, err := build()
	if err == nil {
		err = os.WriteFile(path, data, 0o644)
	}
	if err != nil {
		metrics.IncExport(format, metrics.ResultError)
		return err
	}
	metrics.IncExport(format, metrics.ResultSuccess)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
