package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/geocoder89/todohub/internal/config"
	"github.com/geocoder89/todohub/internal/db"
)

// usage: migrate [up|down|status]
func main() {
	dsn, err := config.LoadDSN()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	command := db.MigrateUp
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	defer stop()

	if err := db.Migrate(ctx, dsn, command); err != nil {
		log.Fatalf("migrate %s failed: %v", command, err)
	}

	log.Printf("migrate %s complete", command)
}
