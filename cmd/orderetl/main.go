// Command orderetl flattens nested customer/order/item records into one
// strictly-typed CSV table plus a data-quality report. It runs with no
// arguments against the fixed filenames in the working directory; see
// -help for the available overrides.
//
// QUICK START:
//
//	go build -o orderetl ./cmd/orderetl
//	./orderetl
//
// With a SQLite sink:
//
//	./orderetl --db_driver=sqlite --dsn=orders.db
package main

import (
	"context"
	"log"

	_ "orderetl/internal/storage/all" // enable all built-in sink backends

	"orderetl/internal/config"
	"orderetl/internal/metrics"
	"orderetl/internal/metrics/prompush"
	"orderetl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("orderetl: %v", err)
	}

	if cfg.MetricsGateway != "" {
		backend, err := prompush.NewBackend(cfg.JobName, cfg.MetricsGateway)
		if err != nil {
			log.Fatalf("metrics backend: %v", err)
		}
		metrics.SetBackend(backend)
	}

	if err := pipeline.Run(context.Background(), cfg); err != nil {
		log.Fatalf("orderetl: %v", err)
	}
}
