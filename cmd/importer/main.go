package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"iotshop/internal/config"
	"iotshop/internal/db"
	"iotshop/internal/importer"
	categoryrepo "iotshop/internal/repository/category"
	productrepo "iotshop/internal/repository/product"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a JSON catalog export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	if cfg.DBConnString == "" {
		log.Fatal("DB_DSN is required")
	}
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC)
	imp := importer.NewJSONImporter(f,
		productrepo.NewPostgres(pool, logger),
		categoryrepo.NewPostgres(pool, logger))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d records in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
