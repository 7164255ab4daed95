// Command report computes the dashboard summary tables from the orders
// CSV and writes them to the reports directory as CSV files plus one
// Excel workbook, without starting the web server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"orderpulse/internal/analytics"
	"orderpulse/internal/config"
	"orderpulse/internal/dataset"
	"orderpulse/internal/exporter"
	"orderpulse/internal/format"
	"orderpulse/internal/infrastructure"
)

func main() {
	in := flag.String("in", "", "orders csv path (defaults to data/main_data.csv relative to executable)")
	out := flag.String("out", "", "output directory (defaults to reports/)")
	start := flag.String("start", "", "range start, YYYY-MM-DD (defaults to dataset minimum)")
	end := flag.String("end", "", "range end, YYYY-MM-DD (defaults to dataset maximum)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	if *in == "" {
		*in = cfg.GetDataFile()
	}
	if *out == "" {
		*out = cfg.GetReportsDir()
	}

	if err := run(logger, *in, *out, *start, *end); err != nil {
		logger.Error("Report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, in, out, start, end string) error {
	ctx := context.Background()

	store := dataset.NewStore(dataset.NewLoader(in, logger), logger)
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	rng, ok := store.Bounds()
	if !ok {
		return fmt.Errorf("dataset %s has no usable delivery dates", in)
	}
	if start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return fmt.Errorf("invalid -start: %w", err)
		}
		rng.Start = t
	}
	if end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return fmt.Errorf("invalid -end: %w", err)
		}
		rng.End = t
	}
	rng = dataset.NewDateRange(rng.Start, rng.End)

	rows := dataset.FilterByDateRange(store.Rows(), rng)
	bundle, err := analytics.Aggregate(ctx, rows, rng)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	logger.Info("Summary tables computed",
		slog.String("start", rng.Start.Format("2006-01-02")),
		slog.String("end", rng.End.Format("2006-01-02")),
		slog.Int("rows", len(rows)),
		slog.String("revenue", format.BRL(analytics.TotalRevenue(bundle.DailyOrders))))

	csvWriter := exporter.NewCSVWriter(out, logger)
	for _, table := range exporter.BuildTables(bundle) {
		if err := csvWriter.WriteSimpleCSV(table.Name+".csv", table.Headers, table.Records); err != nil {
			return fmt.Errorf("write %s: %w", table.Name, err)
		}
	}

	workbook := fmt.Sprintf("orderpulse_%s.xlsx", time.Now().Format("20060102"))
	path, err := exporter.NewExcelWriter(logger).SaveWorkbook(bundle, out, workbook)
	if err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	logger.Info("Reports written",
		slog.String("dir", out),
		slog.String("workbook", path))
	return nil
}
