// Package pipeline wires the run end to end: load, validate, flatten,
// sort, write files, and optionally bulk-load the table into a database
// sink. The whole run is a single synchronous pass over in-memory data.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"orderetl/internal/config"
	"orderetl/internal/flatten"
	"orderetl/internal/loader"
	"orderetl/internal/metrics"
	"orderetl/internal/report"
	"orderetl/internal/schema"
	"orderetl/internal/skiplog"
	"orderetl/internal/storage"
	"orderetl/internal/validate"
)

// Run executes one full pipeline pass. Load failures are fatal and
// produce no partial output; everything after a successful load completes
// or returns the first file/sink error.
func Run(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	vip, err := loader.VIPIDs(cfg.VIPFile)
	metrics.RecordStep(cfg.JobName, "load_vip", start, err)
	if err != nil {
		return fmt.Errorf("load vip ids: %w", err)
	}

	loadStart := time.Now()
	raw, err := loader.Customers(cfg.CustomersFile)
	metrics.RecordStep(cfg.JobName, "load_customers", loadStart, err)
	if err != nil {
		return fmt.Errorf("load customer records: %w", err)
	}

	sl := skiplog.New()

	validateStart := time.Now()
	kept := validate.Customers(raw, sl)
	metrics.RecordStep(cfg.JobName, "validate", validateStart, nil)
	metrics.CountRecords(cfg.JobName, "validate", "processed", len(kept))
	metrics.CountRecords(cfg.JobName, "validate", "skipped", sl.Count(skiplog.LevelCustomer))

	flattenStart := time.Now()
	res := flatten.Rows(kept, vip, sl)
	schema.Sort(res.Rows)
	metrics.RecordStep(cfg.JobName, "flatten", flattenStart, nil)
	metrics.CountRecords(cfg.JobName, "flatten", "processed", len(res.Rows))

	if err := writeTable(cfg.OutputCSV, res.Rows); err != nil {
		return err
	}
	if err := sl.WriteFiles(cfg.SkippedDir); err != nil {
		return fmt.Errorf("write skip logs: %w", err)
	}

	rep := report.Build(kept, res.Rows, sl, res.ZeroItemOrders)
	if err := os.WriteFile(cfg.ReportFile, []byte(rep.Render()), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", cfg.ReportFile, err)
	}

	if cfg.DBDriver != "" {
		sinkStart := time.Now()
		err := loadSink(ctx, cfg, res.Rows)
		metrics.RecordStep(cfg.JobName, "db_sink", sinkStart, err)
		if err != nil {
			return err
		}
	}

	log.Printf("flatten run: %s, duration=%s", rep.Summary(), time.Since(start).Round(time.Millisecond))
	if err := metrics.Flush(); err != nil {
		log.Printf("metrics flush: %v", err)
	}
	return nil
}

func writeTable(path string, rows []schema.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %s: %w", path, err)
	}
	if err := schema.WriteCSV(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", path, err)
	}
	return nil
}

func loadSink(ctx context.Context, cfg *config.Config, rows []schema.Row) error {
	repo, err := storage.Open(ctx, storage.Config{
		Kind:  cfg.DBDriver,
		DSN:   cfg.DSN,
		Table: cfg.DBTable,
	})
	if err != nil {
		return fmt.Errorf("open %s sink: %w", cfg.DBDriver, err)
	}
	defer repo.Close(ctx)

	if err := repo.EnsureTable(ctx); err != nil {
		return fmt.Errorf("ensure sink table: %w", err)
	}
	n, err := repo.CopyRows(ctx, rows)
	if err != nil {
		return fmt.Errorf("load sink: %w", err)
	}
	log.Printf("%s sink: inserted=%d table=%s", cfg.DBDriver, n, cfg.DBTable)
	return nil
}
