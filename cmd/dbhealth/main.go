// dbhealth checks that the configured database is reachable and the
// schema bootstraps cleanly. Exit code 0 means healthy.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/D4rk1d3/study/internal/common"
	"github.com/D4rk1d3/study/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "dbhealth: bad config:", err)
		os.Exit(1)
	}
	logger := common.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repository.Open(ctx, cfg.Database, cfg.Storage, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dbhealth: open:", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "dbhealth: ping:", err)
		os.Exit(1)
	}

	fmt.Printf("ok (%s)\n", cfg.Database.Driver)
}
