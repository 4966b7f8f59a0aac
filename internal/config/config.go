// Package config centralizes process configuration. All tunables are
// command-line flags seeded from environment-variable fallbacks, and every
// flag has a working default, so the binary runs with no arguments against
// the fixed filenames in the current directory.
//
// For tests, prefer LoadFromArgs to keep them hermetic:
//
//	fs := flag.NewFlagSet("test", flag.ContinueOnError)
//	getenv := func(k string) string { return testEnv[k] }
//	cfg, err := config.LoadFromArgs(fs, getenv, []string{"-customers=x.json"})
package config

import (
	"flag"
	"fmt"
	"os"
)

// Config holds all process configuration. Plain values only, so the struct
// can be copied freely after construction.
type Config struct {
	// Inputs.
	CustomersFile string // Serialized customer records (JSON).
	VIPFile       string // VIP customer ids, one per line.

	// Outputs.
	OutputCSV  string // Final flattened table.
	SkippedDir string // Directory for the per-level skipped-row CSVs.
	ReportFile string // Human-readable quality report.

	// Optional database sink. Empty driver disables the sink.
	DBDriver string // "", "sqlite", "postgres", "mysql" or "mssql".
	DSN      string // Driver-specific connection string.
	DBTable  string // Destination table name.

	// Optional metrics push.
	MetricsGateway string // Prometheus Pushgateway base URL; empty = off.
	JobName        string // Metrics job label.
}

// LoadFromArgs builds a Config by defining flags on fs, wiring each flag
// to an environment-variable fallback via getenv, then parsing args.
// Environment values seed the defaults; explicit flags override them.
func LoadFromArgs(fs *flag.FlagSet, getenv func(string) string, args []string) (*Config, error) {
	cfg := &Config{}

	envOr := func(k, d string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return d
	}

	fs.StringVar(&cfg.CustomersFile, "customers", envOr("CUSTOMERS_FILE", "customer_orders.json"), "Path to customer records JSON")
	fs.StringVar(&cfg.VIPFile, "vip", envOr("VIP_FILE", "vip_customers.txt"), "Path to VIP id list")

	fs.StringVar(&cfg.OutputCSV, "out", envOr("OUTPUT_CSV", "customer_orders_flattened.csv"), "Path for the flattened output CSV")
	fs.StringVar(&cfg.SkippedDir, "skipped_dir", envOr("SKIPPED_DIR", "./skipped"), "Directory for skipped-row CSV logs")
	fs.StringVar(&cfg.ReportFile, "report", envOr("REPORT_FILE", "quality_report.txt"), "Path for the quality report text file")

	fs.StringVar(&cfg.DBDriver, "db_driver", envOr("DB_DRIVER", ""), "Optional DB sink driver: sqlite, postgres, mysql or mssql")
	fs.StringVar(&cfg.DSN, "dsn", getenv("DB_DSN"), "DSN for the DB sink")
	fs.StringVar(&cfg.DBTable, "db_table", envOr("DB_TABLE", "customer_orders_flat"), "Destination table for the DB sink")

	fs.StringVar(&cfg.MetricsGateway, "metrics_gateway", getenv("METRICS_GATEWAY"), "Prometheus Pushgateway URL; empty disables metrics")
	fs.StringVar(&cfg.JobName, "job", envOr("JOB_NAME", "orderetl"), "Job name used in metrics labels")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	return cfg, nil
}

// Load is the production entry point: process flag set, real environment,
// real arguments. flag.CommandLine exits the process on a parse failure,
// so the error return only matters for injected flag sets.
func Load() (*Config, error) {
	return LoadFromArgs(flag.CommandLine, os.Getenv, os.Args[1:])
}
