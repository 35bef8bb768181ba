package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/futureatoms/summitwire/internal/app"
	"github.com/futureatoms/summitwire/internal/config"
)

func main() {
	once := flag.Bool("once", false, "run a single collection cycle and exit")
	flag.Parse()

	// Missing .env is fine in production, variables come from the host.
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, app.Options{Once: *once}); err != nil {
		log.Fatalf("summitwire: %v", err)
	}
}
