package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/voxology/assistant-backend/internal/adapters/search"
	"github.com/voxology/assistant-backend/internal/application/services"
	"github.com/voxology/assistant-backend/internal/infrastructure/clients/openai"
	"github.com/voxology/assistant-backend/internal/infrastructure/clients/typesense"
	"github.com/voxology/assistant-backend/internal/infrastructure/observability"
	"github.com/voxology/assistant-backend/pkg/config"
)

func main() {
	var file string
	var reset bool
	var intervalFlag string
	flag.StringVar(&file, "file", "", "path to a JSON array of provider records")
	flag.BoolVar(&reset, "reset", false, "delete the existing collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	_ = godotenv.Load()

	if file == "" {
		file = strings.TrimSpace(os.Getenv("PROVIDER_FILE"))
	}
	if file == "" {
		log.Fatal("Provider file is required: pass -file or set PROVIDER_FILE")
	}

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	observability.InitLogger("voxology-indexer", os.Getenv("APP_ENV"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, file, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Indexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, file string, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	openaiClient, err := openai.NewClient(&cfg.OpenAI)
	if err != nil {
		return err
	}

	indexAdapter := search.NewTypesenseAdapter(tsClient)

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Reset requested, deleting provider collection")
		if err := indexAdapter.Reset(ctx); err != nil {
			log.Printf("Warning: failed to delete collection: %v", err)
		}
	}

	if err := indexAdapter.InitSchema(ctx); err != nil {
		return err
	}

	ingestionService := services.NewIngestionService(openaiClient, indexAdapter, 0)

	summary, err := ingestionService.IngestFile(ctx, file)
	if err != nil {
		return err
	}

	log.Printf(
		"Indexed %d of %d provider(s) in %d batch(es), %d skipped",
		summary.RecordsIndexed,
		summary.RecordsRead,
		summary.BatchesUpserted,
		summary.RecordsSkipped,
	)
	return nil
}
